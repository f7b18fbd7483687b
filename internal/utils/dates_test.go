package utils

import (
	"testing"
	"time"
)

func TestParseDue(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*3600)
	now := time.Date(2026, 10, 19, 22, 30, 0, 0, time.UTC) // already the 20th in loc

	tests := []struct {
		in   string
		want time.Time
	}{
		{"2026-10-21T17:30", time.Date(2026, 10, 21, 17, 30, 0, 0, loc)},
		{"2026-10-21 17:30", time.Date(2026, 10, 21, 17, 30, 0, 0, loc)},
		{"2026-10-21T17:30:15", time.Date(2026, 10, 21, 17, 30, 15, 0, loc)},
		{"2026-10-21", time.Date(2026, 10, 21, 0, 0, 0, 0, loc)},
		{"2026-10-21T17:30:00Z", time.Date(2026, 10, 21, 17, 30, 0, 0, time.UTC)},
		{"today", time.Date(2026, 10, 20, 0, 0, 0, 0, loc)},
		{"Tomorrow", time.Date(2026, 10, 21, 0, 0, 0, 0, loc)},
		{"yesterday", time.Date(2026, 10, 19, 0, 0, 0, 0, loc)},
		{"+2d", time.Date(2026, 10, 22, 0, 0, 0, 0, loc)},
		{"-1w", time.Date(2026, 10, 13, 0, 0, 0, 0, loc)},
		{"+1m", time.Date(2026, 11, 20, 0, 0, 0, 0, loc)},
		{"+3h", now.Add(3 * time.Hour)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDue(tt.in, now, loc)
			if err != nil {
				t.Fatalf("ParseDue(%q) error: %v", tt.in, err)
			}
			if got == nil || !got.Equal(tt.want) {
				t.Errorf("ParseDue(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseDueEmpty(t *testing.T) {
	got, err := ParseDue("   ", time.Now(), nil)
	if got != nil || err != nil {
		t.Errorf("ParseDue(blank) = %v, %v; want nil, nil", got, err)
	}
}

func TestParseDueInvalid(t *testing.T) {
	for _, in := range []string{"soon", "2026-13-01", "+5y", "19/10/2026"} {
		_, err := ParseDue(in, time.Now(), time.UTC)
		if err == nil {
			t.Errorf("ParseDue(%q) expected error", in)
			continue
		}
		if Suggestion(err) == "" {
			t.Errorf("ParseDue(%q) error has no suggestion", in)
		}
	}
}

func TestParseDueOutOfRange(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	for _, in := range []string{
		"+3000000d", "-3000000d", "+600000w", "+200000m",
		"+3000000h", "-3000000h", "+99999999999999999999d",
	} {
		got, err := ParseDue(in, now, time.UTC)
		if err == nil {
			t.Errorf("ParseDue(%q) = %v, want error", in, got)
			continue
		}
		if Suggestion(err) == "" {
			t.Errorf("ParseDue(%q) error has no suggestion", in)
		}
	}
	if _, err := ParseDue("+2000000h", now, time.UTC); err != nil {
		t.Errorf("ParseDue(+2000000h) error: %v", err)
	}
}
