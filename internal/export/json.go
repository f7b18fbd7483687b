package export

import (
	"fmt"
	"io"

	"github.com/idilsaglam/todolist/internal/model"
)

// WriteJSON writes the full collection as a pretty-printed backup.
func WriteJSON(w io.Writer, todos []model.Todo) error {
	b, err := model.Encode(todos)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

// ReadJSON reads a backup produced by WriteJSON. The payload is checked
// against the todos schema before it is decoded.
func ReadJSON(r io.Reader) ([]model.Todo, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read backup: %w", err)
	}
	todos, err := model.Decode(b)
	if err != nil {
		return nil, fmt.Errorf("decode backup: %w", err)
	}
	return todos, nil
}
