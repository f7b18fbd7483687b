// Package partition splits todos into active and overdue groups.
package partition

import (
	"time"

	"github.com/idilsaglam/todolist/internal/model"
)

// IsOverdue reports whether t is pending and its due date is before now.
func IsOverdue(t model.Todo, now time.Time) bool {
	return t.DueDate != nil && !t.Completed && t.DueDate.Before(now)
}

// Split partitions todos relative to now. Every input lands in exactly one
// group and relative order is preserved in both.
func Split(todos []model.Todo, now time.Time) (active, overdue []model.Todo) {
	active = make([]model.Todo, 0, len(todos))
	for _, t := range todos {
		if IsOverdue(t, now) {
			overdue = append(overdue, t)
		} else {
			active = append(active, t)
		}
	}
	return active, overdue
}

// Summary is the header line of a list view.
type Summary struct {
	Done    int
	Pending int
	Overdue int
}

// Total is Done + Pending; overdue todos are also pending.
func (s Summary) Total() int { return s.Done + s.Pending }

// Counts tallies todos relative to now.
func Counts(todos []model.Todo, now time.Time) Summary {
	var s Summary
	for _, t := range todos {
		if t.Completed {
			s.Done++
			continue
		}
		s.Pending++
		if IsOverdue(t, now) {
			s.Overdue++
		}
	}
	return s
}
