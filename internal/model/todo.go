// Package model holds the todo record and its wire form.
package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrEmptyText is returned when a todo would be created without text.
	ErrEmptyText = errors.New("todo text is empty")
	// ErrDueOutOfRange is returned for a due date the wire form cannot hold.
	ErrDueOutOfRange = errors.New("due date out of range")
)

// lineBreaks folds multi-line text onto one line.
var lineBreaks = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

// WireTimeLayout is how due dates are written: UTC, millisecond precision.
const WireTimeLayout = "2006-01-02T15:04:05.000Z07:00"

// Todo is the domain model for a single task.
// ID is the creation time in Unix milliseconds and never changes.
type Todo struct {
	ID        int64
	Text      string
	Completed bool
	DueDate   *time.Time
}

// CleanText puts text on a single trimmed line.
func CleanText(text string) string {
	return strings.TrimSpace(lineBreaks.Replace(text))
}

// DueInRange reports whether t fits the wire form: a four-digit UTC year.
func DueInRange(t time.Time) bool {
	y := t.UTC().Year()
	return y >= 0 && y <= 9999
}

// New builds a pending todo. The text is put on one trimmed line and must
// not be empty. The due date is truncated to milliseconds so the wire form
// is lossless.
func New(id int64, text string, due *time.Time) (Todo, error) {
	text = CleanText(text)
	if text == "" {
		return Todo{}, ErrEmptyText
	}
	t := Todo{ID: id, Text: text}
	if due != nil {
		if !DueInRange(*due) {
			return Todo{}, fmt.Errorf("%w: %s", ErrDueOutOfRange, due.Format(time.RFC3339))
		}
		d := due.Truncate(time.Millisecond)
		t.DueDate = &d
	}
	return t, nil
}

// HasDue reports whether the todo carries a due date.
func (t Todo) HasDue() bool { return t.DueDate != nil }

// Equal compares two todos field by field, due dates as points in time.
func (t Todo) Equal(o Todo) bool {
	if t.ID != o.ID || t.Text != o.Text || t.Completed != o.Completed {
		return false
	}
	if t.DueDate == nil || o.DueDate == nil {
		return t.DueDate == nil && o.DueDate == nil
	}
	return t.DueDate.Equal(*o.DueDate)
}

// wireTodo fixes the field order of the JSON form.
type wireTodo struct {
	ID        int64   `json:"id"`
	Text      string  `json:"text"`
	Completed bool    `json:"completed"`
	DueDate   *string `json:"dueDate,omitempty"`
}

// MarshalJSON writes id, text, completed, dueDate in that order.
func (t Todo) MarshalJSON() ([]byte, error) {
	w := wireTodo{ID: t.ID, Text: t.Text, Completed: t.Completed}
	if t.DueDate != nil {
		s := t.DueDate.UTC().Format(WireTimeLayout)
		w.DueDate = &s
	}
	return json.Marshal(w)
}

// UnmarshalJSON accepts any RFC 3339 due date. Line breaks in the text are
// folded to spaces.
func (t *Todo) UnmarshalJSON(b []byte) error {
	var w wireTodo
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	*t = Todo{ID: w.ID, Text: CleanText(w.Text), Completed: w.Completed}
	if w.DueDate != nil && *w.DueDate != "" {
		d, err := time.Parse(time.RFC3339Nano, *w.DueDate)
		if err != nil {
			return fmt.Errorf("todo %d: due date: %w", w.ID, err)
		}
		t.DueDate = &d
	}
	return nil
}
