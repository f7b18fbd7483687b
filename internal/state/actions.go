package state

import (
	"fmt"
	"time"

	"github.com/idilsaglam/todolist/internal/model"
)

// Action is one state transition. apply receives a private copy of the
// collection and returns the next one.
type Action interface {
	apply(todos []model.Todo, c clock) ([]model.Todo, error)
}

// clock is what Add needs to mint an id: the time, and the largest id the
// store has ever published, removed todos included.
type clock struct {
	now   time.Time
	maxID int64
}

// Add appends a new pending todo.
type Add struct {
	Text string
	Due  *time.Time
}

func (a Add) apply(todos []model.Todo, c clock) ([]model.Todo, error) {
	t, err := model.New(nextID(todos, c), a.Text, a.Due)
	if err != nil {
		return nil, err
	}
	return append(todos, t), nil
}

// Toggle flips the completed flag of the todo with ID.
type Toggle struct {
	ID int64
}

func (a Toggle) apply(todos []model.Todo, _ clock) ([]model.Todo, error) {
	i := indexOf(todos, a.ID)
	if i < 0 {
		return nil, fmt.Errorf("toggle %d: %w", a.ID, ErrNotFound)
	}
	todos[i].Completed = !todos[i].Completed
	return todos, nil
}

// Remove drops the todo with ID.
type Remove struct {
	ID int64
}

func (a Remove) apply(todos []model.Todo, _ clock) ([]model.Todo, error) {
	i := indexOf(todos, a.ID)
	if i < 0 {
		return nil, fmt.Errorf("remove %d: %w", a.ID, ErrNotFound)
	}
	return append(todos[:i], todos[i+1:]...), nil
}

// Restore puts a removed todo back at Index (clamped to the collection).
type Restore struct {
	Todo  model.Todo
	Index int
}

func (a Restore) apply(todos []model.Todo, _ clock) ([]model.Todo, error) {
	if indexOf(todos, a.Todo.ID) >= 0 {
		return nil, fmt.Errorf("restore %d: %w", a.Todo.ID, ErrDuplicateID)
	}
	idx := a.Index
	if idx < 0 {
		idx = 0
	}
	if idx > len(todos) {
		idx = len(todos)
	}
	todos = append(todos, model.Todo{})
	copy(todos[idx+1:], todos[idx:])
	todos[idx] = a.Todo
	return todos, nil
}

// Replace swaps in a whole collection, e.g. from a backup.
type Replace struct {
	Todos []model.Todo
}

func (a Replace) apply(_ []model.Todo, _ clock) ([]model.Todo, error) {
	seen := make(map[int64]bool, len(a.Todos))
	for _, t := range a.Todos {
		if seen[t.ID] {
			return nil, fmt.Errorf("replace: id %d: %w", t.ID, ErrDuplicateID)
		}
		seen[t.ID] = true
	}
	return clone(a.Todos), nil
}

// nextID is the creation time in milliseconds, bumped past the largest
// id seen so far so rapid adds stay unique and ascending, and a removed
// todo's id is never handed out again.
func nextID(todos []model.Todo, c clock) int64 {
	id := c.now.UnixMilli()
	if c.maxID >= id {
		id = c.maxID + 1
	}
	for _, t := range todos {
		if t.ID >= id {
			id = t.ID + 1
		}
	}
	return id
}

func indexOf(todos []model.Todo, id int64) int {
	for i, t := range todos {
		if t.ID == id {
			return i
		}
	}
	return -1
}
