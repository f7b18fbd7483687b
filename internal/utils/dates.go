package utils

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/idilsaglam/todolist/internal/model"
)

// absoluteLayouts are tried in order. The first is what an HTML
// datetime-local field produces.
var absoluteLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// relativePattern matches relative date formats like +7d, -3d, +2w, +1m, +4h
var relativePattern = regexp.MustCompile(`^([+-])(\d+)([hdwm])$`)

// maxRelative bounds N in +/-N{d,w,m}; maxHours keeps +/-Nh inside a
// time.Duration.
const (
	maxRelative = 10000 * 366
	maxHours    = math.MaxInt64 / int64(time.Hour)
)

// parseRelativeDate handles today, tomorrow, yesterday and +/-N{h,d,w,m}.
// Returns nil, nil when dateStr is not relative.
func parseRelativeDate(dateStr string, now time.Time, loc *time.Location) (*time.Time, error) {
	now = now.In(loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	lower := strings.ToLower(dateStr)
	switch lower {
	case "today":
		return &today, nil
	case "tomorrow":
		t := today.AddDate(0, 0, 1)
		return &t, nil
	case "yesterday":
		t := today.AddDate(0, 0, -1)
		return &t, nil
	}

	matches := relativePattern.FindStringSubmatch(lower)
	if matches == nil {
		return nil, nil
	}
	num, err := strconv.Atoi(matches[2])
	if err != nil || num > maxRelative {
		return nil, ErrInvalidDate(dateStr)
	}
	if matches[1] == "-" {
		num = -num
	}

	var result time.Time
	switch matches[3] {
	case "h":
		if int64(num) > maxHours || int64(-num) > maxHours {
			return nil, ErrInvalidDate(dateStr)
		}
		result = now.Add(time.Duration(num) * time.Hour)
	case "d":
		result = today.AddDate(0, 0, num)
	case "w":
		result = today.AddDate(0, 0, num*7)
	case "m":
		result = today.AddDate(0, num, 0)
	}
	return &result, nil
}

// ParseDue parses a due date given relative to now in loc.
// Returns nil, nil for an empty string.
func ParseDue(dateStr string, now time.Time, loc *time.Location) (*time.Time, error) {
	dateStr = strings.TrimSpace(dateStr)
	if dateStr == "" {
		return nil, nil
	}
	if loc == nil {
		loc = time.Local
	}

	t, err := parseRelativeDate(dateStr, now, loc)
	if err != nil {
		return nil, err
	}
	if t == nil {
		t = parseAbsoluteDate(dateStr, loc)
	}
	if t == nil || !model.DueInRange(*t) {
		return nil, ErrInvalidDate(dateStr)
	}
	return t, nil
}

func parseAbsoluteDate(dateStr string, loc *time.Location) *time.Time {
	for _, layout := range absoluteLayouts {
		if parsed, err := time.ParseInLocation(layout, dateStr, loc); err == nil {
			return &parsed
		}
	}
	if parsed, err := time.Parse(time.RFC3339, dateStr); err == nil {
		return &parsed
	}
	return nil
}
