package export

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/idilsaglam/todolist/internal/model"
)

// Sink receives a finished artifact. It is the download step, kept apart
// from serialization.
type Sink interface {
	Deliver(name string, content []byte) (string, error)
}

// DirSink writes artifacts into a directory.
type DirSink struct {
	Dir string
}

// Deliver writes content to Dir/name and returns the written path.
func (s DirSink) Deliver(name string, content []byte) (string, error) {
	dir := s.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir: %w", err)
	}
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, content, 0o644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return p, nil
}

const fileDateLayout = "2006-01-02"

// CSVFileName is the download name of a CSV export made at t.
func CSVFileName(t time.Time) string {
	return "todo-list-" + t.Format(fileDateLayout) + ".csv"
}

// JSONFileName is the download name of a JSON backup made at t.
func JSONFileName(t time.Time) string {
	return "todos-backup-" + t.Format(fileDateLayout) + ".json"
}

// Exporter ties serialization to a sink, a clock and a display location.
type Exporter struct {
	Sink     Sink
	Location *time.Location
	Now      func() time.Time
}

func (e Exporter) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

func (e Exporter) loc() *time.Location {
	if e.Location != nil {
		return e.Location
	}
	return time.Local
}

// CSV exports todos in ExportOrder and returns where the file went.
func (e Exporter) CSV(todos []model.Todo) (string, error) {
	now := e.now()
	var buf bytes.Buffer
	if err := WriteCSV(&buf, ExportOrder(todos, now), now, e.loc()); err != nil {
		return "", fmt.Errorf("csv: %w", err)
	}
	return e.Sink.Deliver(CSVFileName(now.In(e.loc())), buf.Bytes())
}

// JSON exports the full collection as a backup and returns where it went.
func (e Exporter) JSON(todos []model.Todo) (string, error) {
	now := e.now()
	var buf bytes.Buffer
	if err := WriteJSON(&buf, todos); err != nil {
		return "", fmt.Errorf("json: %w", err)
	}
	return e.Sink.Deliver(JSONFileName(now.In(e.loc())), buf.Bytes())
}
