// Package utils holds small helpers shared by the command surfaces.
package utils

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorWithSuggestion wraps an error with a hint for the user.
type ErrorWithSuggestion struct {
	Err        error
	Suggestion string
}

// Error implements the error interface.
func (e *ErrorWithSuggestion) Error() string {
	return fmt.Sprintf("%s\n\nSuggestion: %s", e.Err.Error(), e.Suggestion)
}

// Unwrap returns the underlying error for error chain support.
func (e *ErrorWithSuggestion) Unwrap() error {
	return e.Err
}

// WrapWithSuggestion wraps an existing error with a suggestion.
func WrapWithSuggestion(err error, suggestion string) error {
	return &ErrorWithSuggestion{Err: err, Suggestion: suggestion}
}

// Suggestion returns the hint carried anywhere in err's chain, or "".
func Suggestion(err error) string {
	var ews *ErrorWithSuggestion
	if errors.As(err, &ews) {
		return ews.Suggestion
	}
	return ""
}

// ErrInvalidDate is returned for a due date that cannot be parsed.
func ErrInvalidDate(dateStr string) error {
	return &ErrorWithSuggestion{
		Err:        fmt.Errorf("invalid date: %s", dateStr),
		Suggestion: "Use 2006-01-02, 2006-01-02 15:04 or 2006-01-02T15:04 (e.g., 2026-10-19T17:30)",
	}
}

// ErrIndexOutOfRange is returned when a 1-based item index does not exist.
func ErrIndexOutOfRange(have, got int) error {
	return &ErrorWithSuggestion{
		Err:        fmt.Errorf("index out of range: have %d, got %d", have, got),
		Suggestion: "Run 'todolist ls' to see valid indexes",
	}
}

// ErrInvalidFormat is returned for an unknown export format.
func ErrInvalidFormat(format string, valid []string) error {
	return &ErrorWithSuggestion{
		Err:        fmt.Errorf("invalid format: %s", format),
		Suggestion: fmt.Sprintf("Valid options: %s", strings.Join(valid, ", ")),
	}
}

// ErrInvalidBackend is returned for an unknown storage backend in config.
func ErrInvalidBackend(name string) error {
	return &ErrorWithSuggestion{
		Err:        fmt.Errorf("unknown storage backend: %s", name),
		Suggestion: "Set storage.backend to json or sqlite in your config file",
	}
}
