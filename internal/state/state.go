// Package state owns the todo collection. Every change goes through
// Store.Dispatch, which persists the next collection before publishing it.
package state

import (
	"context"
	"errors"
	"time"

	"github.com/idilsaglam/todolist/internal/model"
)

var (
	// ErrNotFound is returned when an action names an unknown id.
	ErrNotFound = errors.New("todo not found")
	// ErrDuplicateID is returned when an action would repeat an id.
	ErrDuplicateID = errors.New("duplicate todo id")
)

// SaveFunc persists a collection. It runs after every transition.
type SaveFunc func(ctx context.Context, todos []model.Todo) error

// Store holds the current collection snapshot. It is not safe for
// concurrent use; both UIs drive it from a single goroutine.
type Store struct {
	todos []model.Todo
	save  SaveFunc
	now   func() time.Time
	maxID int64 // largest id ever published
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides time.Now, used for ids.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New seeds a Store with initial todos. save may be nil.
func New(initial []model.Todo, save SaveFunc, opts ...Option) *Store {
	s := &Store{todos: clone(initial), save: save, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	s.track(s.todos)
	return s
}

func (s *Store) track(todos []model.Todo) {
	for _, t := range todos {
		if t.ID > s.maxID {
			s.maxID = t.ID
		}
	}
}

// Todos returns a copy of the current collection.
func (s *Store) Todos() []model.Todo {
	return clone(s.todos)
}

// Len is the number of todos.
func (s *Store) Len() int { return len(s.todos) }

// At returns the todo at 0-based position i.
func (s *Store) At(i int) (model.Todo, bool) {
	if i < 0 || i >= len(s.todos) {
		return model.Todo{}, false
	}
	return cloneTodo(s.todos[i]), true
}

// Dispatch applies a, saves the result and then publishes it. On any error
// the current collection is left unchanged.
func (s *Store) Dispatch(ctx context.Context, a Action) error {
	next, err := a.apply(clone(s.todos), clock{now: s.now(), maxID: s.maxID})
	if err != nil {
		return err
	}
	if s.save != nil {
		if err := s.save(ctx, clone(next)); err != nil {
			return err
		}
	}
	s.todos = next
	s.track(next)
	return nil
}

// Add dispatches an Add and returns the created todo.
func (s *Store) Add(ctx context.Context, text string, due *time.Time) (model.Todo, error) {
	if err := s.Dispatch(ctx, Add{Text: text, Due: due}); err != nil {
		return model.Todo{}, err
	}
	return cloneTodo(s.todos[len(s.todos)-1]), nil
}

// clone copies todos along with their due dates, so no two snapshots share
// a *time.Time.
func clone(todos []model.Todo) []model.Todo {
	out := make([]model.Todo, len(todos))
	for i, t := range todos {
		out[i] = cloneTodo(t)
	}
	return out
}

func cloneTodo(t model.Todo) model.Todo {
	if t.DueDate != nil {
		due := *t.DueDate
		t.DueDate = &due
	}
	return t
}
