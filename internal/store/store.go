// Package store persists the todo collection in a single named key-value slot.
package store

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/todolist/internal/model"
	"github.com/idilsaglam/todolist/internal/store/jsonstore"
	"github.com/idilsaglam/todolist/internal/store/sqlitestore"
	"github.com/idilsaglam/todolist/internal/utils"
)

// Key is the slot holding the whole collection.
const Key = "todos-data"

// Backend names accepted by Open.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Slot is a key-value persistence slot holding serialized text.
type Slot interface {
	// Get returns the value under key; ok is false when nothing is stored.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// Store loads and saves todos through a Slot.
type Store struct {
	slot   Slot
	key    string
	logger *log.Logger
}

// New wraps slot. A nil logger discards warnings.
func New(slot Slot, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Store{slot: slot, key: Key, logger: logger}
}

// Open builds the slot for backend under dir and wraps it.
func Open(backend, dir string, logger *log.Logger) (*Store, error) {
	var (
		slot Slot
		err  error
	)
	switch backend {
	case "", BackendJSON:
		slot, err = jsonstore.New(dir)
	case BackendSQLite:
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir: %w", err)
		}
		slot, err = sqlitestore.New(filepath.Join(dir, "todolist.db"))
	default:
		return nil, utils.ErrInvalidBackend(backend)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", backend, err)
	}
	return New(slot, logger), nil
}

// Load returns the stored collection. A missing slot is an empty collection;
// so is a malformed payload, which is logged and discarded.
func (s *Store) Load(ctx context.Context) ([]model.Todo, error) {
	raw, ok, err := s.slot.Get(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", s.key, err)
	}
	if !ok {
		return []model.Todo{}, nil
	}
	todos, err := model.Decode([]byte(raw))
	if err != nil {
		s.logger.Warn("discarding malformed stored todos", "key", s.key, "err", err)
		return []model.Todo{}, nil
	}
	s.logger.Debug("loaded todos", "key", s.key, "count", len(todos))
	return todos, nil
}

// Save replaces the stored collection.
func (s *Store) Save(ctx context.Context, todos []model.Todo) error {
	b, err := model.Encode(todos)
	if err != nil {
		return err
	}
	if err := s.slot.Set(ctx, s.key, string(b)); err != nil {
		return fmt.Errorf("save %s: %w", s.key, err)
	}
	s.logger.Debug("saved todos", "key", s.key, "count", len(todos))
	return nil
}

// Close releases the slot.
func (s *Store) Close() error {
	return s.slot.Close()
}
