package model

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestNewTrimsText(t *testing.T) {
	td, err := New(1, "  Buy milk \n", nil)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if td.Text != "Buy milk" {
		t.Errorf("Text = %q, want %q", td.Text, "Buy milk")
	}
	if td.Completed {
		t.Error("new todo should be pending")
	}
	if td.HasDue() {
		t.Error("new todo without due should have no due date")
	}
}

func TestNewRejectsBlankText(t *testing.T) {
	for _, text := range []string{"", "   ", "\t\n"} {
		if _, err := New(1, text, nil); !errors.Is(err, ErrEmptyText) {
			t.Errorf("New(%q) error = %v, want ErrEmptyText", text, err)
		}
	}
}

func TestNewTruncatesDueToMillis(t *testing.T) {
	due := time.Date(2026, 10, 19, 9, 30, 0, 123456789, time.UTC)
	td, err := New(1, "x", &due)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if got := td.DueDate.Nanosecond(); got != 123000000 {
		t.Errorf("due nanos = %d, want 123000000", got)
	}
	// caller's value is untouched
	if due.Nanosecond() != 123456789 {
		t.Error("New modified the caller's due date")
	}
}

func TestMarshalFieldOrder(t *testing.T) {
	due := time.Date(2026, 10, 19, 11, 30, 0, 0, time.FixedZone("CEST", 2*3600))
	td := Todo{ID: 42, Text: "A", Completed: true, DueDate: &due}
	b, err := json.Marshal(td)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	want := `{"id":42,"text":"A","completed":true,"dueDate":"2026-10-19T09:30:00.000Z"}`
	if string(b) != want {
		t.Errorf("Marshal = %s, want %s", b, want)
	}

	b, _ = json.Marshal(Todo{ID: 7, Text: "B"})
	if string(b) != `{"id":7,"text":"B","completed":false}` {
		t.Errorf("Marshal without due = %s", b)
	}
}

func TestUnmarshal(t *testing.T) {
	var td Todo
	in := `{"id":42,"text":"A","completed":false,"dueDate":"2026-10-19T11:30:00+02:00"}`
	if err := json.Unmarshal([]byte(in), &td); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	want := time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)
	if td.DueDate == nil || !td.DueDate.Equal(want) {
		t.Errorf("DueDate = %v, want %v", td.DueDate, want)
	}

	if err := json.Unmarshal([]byte(`{"id":1,"text":"x","dueDate":"yesterday"}`), &td); err == nil {
		t.Error("expected error for malformed due date")
	}
}

func TestEqual(t *testing.T) {
	a := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	b := a.In(time.FixedZone("X", 3600))
	tests := []struct {
		name string
		x, y Todo
		want bool
	}{
		{"same no due", Todo{ID: 1, Text: "a"}, Todo{ID: 1, Text: "a"}, true},
		{"due in other zone", Todo{ID: 1, Text: "a", DueDate: &a}, Todo{ID: 1, Text: "a", DueDate: &b}, true},
		{"one missing due", Todo{ID: 1, Text: "a", DueDate: &a}, Todo{ID: 1, Text: "a"}, false},
		{"completed differs", Todo{ID: 1, Text: "a"}, Todo{ID: 1, Text: "a", Completed: true}, false},
		{"id differs", Todo{ID: 1, Text: "a"}, Todo{ID: 2, Text: "a"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.x.Equal(tt.y); got != tt.want {
				t.Errorf("Equal = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewFoldsLineBreaks(t *testing.T) {
	td, err := New(1, "line1\nline2\r\nline3\rend", nil)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if td.Text != "line1 line2 line3 end" {
		t.Errorf("Text = %q", td.Text)
	}
}

func TestNewRejectsDueOutsideWireRange(t *testing.T) {
	for _, due := range []time.Time{
		time.Date(10240, 7, 9, 0, 0, 0, 0, time.UTC),
		time.Date(-1, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(9999, 12, 31, 23, 30, 0, 0, time.FixedZone("UTC-5", -5*3600)),
	} {
		if _, err := New(1, "x", &due); !errors.Is(err, ErrDueOutOfRange) {
			t.Errorf("New(due %v) error = %v, want ErrDueOutOfRange", due, err)
		}
	}
	edge := time.Date(9999, 12, 31, 23, 59, 59, 0, time.UTC)
	if _, err := New(1, "x", &edge); err != nil {
		t.Errorf("New(due %v) error: %v", edge, err)
	}
}

func TestUnmarshalFoldsLineBreaks(t *testing.T) {
	var td Todo
	if err := json.Unmarshal([]byte(`{"id":1,"text":"a\nb","completed":false}`), &td); err != nil {
		t.Fatal(err)
	}
	if td.Text != "a b" {
		t.Errorf("Text = %q", td.Text)
	}
}
