// Package logging builds the leveled logger shared by the CLI and the TUI.
package logging

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// DefaultLevel is used when the configured level is empty or unknown.
const DefaultLevel = log.WarnLevel

// New returns a logger writing to w. level is one of debug, info, warn,
// error; verbose forces debug.
func New(w io.Writer, level string, verbose bool) *log.Logger {
	lvl := ParseLevel(level)
	if verbose {
		lvl = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Prefix:          "todolist",
		ReportTimestamp: verbose,
	})
}

// ParseLevel maps a config string to a level, falling back to DefaultLevel.
func ParseLevel(s string) log.Level {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultLevel
	}
	lvl, err := log.ParseLevel(strings.ToLower(s))
	if err != nil {
		return DefaultLevel
	}
	return lvl
}

// Discard is a logger that drops everything. Handy in tests.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}
