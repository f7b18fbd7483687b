package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/idilsaglam/todolist/internal/model"
)

var now = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

func at(d time.Duration) *time.Time {
	t := now.Add(d)
	return &t
}

func TestCSVEmpty(t *testing.T) {
	got := CSV(nil, now, time.UTC)
	if got != "Task,Status,Due Date,Is Overdue" {
		t.Errorf("CSV(nil) = %q", got)
	}
}

func TestCSVRows(t *testing.T) {
	todos := []model.Todo{
		{ID: 1, Text: "A", DueDate: at(-24 * time.Hour)},
		{ID: 2, Text: "B"},
		{ID: 3, Text: "C", Completed: true, DueDate: at(-time.Hour)},
		{ID: 4, Text: `say "hi"`, DueDate: at(3 * time.Hour)},
	}
	got := CSV(todos, now, time.UTC)
	want := strings.Join([]string{
		"Task,Status,Due Date,Is Overdue",
		`"A","Pending","10/18/2026, 12:00:00 PM","Yes"`,
		`"B","Pending","No due date","No"`,
		`"C","Completed","10/19/2026, 11:00:00 AM","No"`,
		`"say ""hi""","Pending","10/19/2026, 3:00:00 PM","No"`,
	}, "\n")
	if got != want {
		t.Errorf("CSV =\n%s\nwant\n%s", got, want)
	}
}

func TestCSVLineCount(t *testing.T) {
	for _, n := range []int{0, 1, 5, 40} {
		todos := make([]model.Todo, n)
		for i := range todos {
			todos[i] = model.Todo{ID: int64(i), Text: "line"}
		}
		lines := strings.Split(CSV(todos, now, time.UTC), "\n")
		if len(lines) != n+1 {
			t.Errorf("n=%d: %d lines, want %d", n, len(lines), n+1)
		}
	}
}

func TestCSVLineCountWithMultilineText(t *testing.T) {
	td, err := model.New(1, "line1\nline2", nil)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(CSV([]model.Todo{td}, now, time.UTC), "\n")
	if len(lines) != 2 {
		t.Errorf("1 todo gave %d lines, want 2: %q", len(lines), lines)
	}
}

func TestCSVUsesLocation(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	got := CSV([]model.Todo{{ID: 1, Text: "A", DueDate: at(time.Hour)}}, now, ny)
	if !strings.Contains(got, `"10/19/2026, 9:00:00 AM"`) {
		t.Errorf("CSV in New York = %q", got)
	}
}

func TestExportOrder(t *testing.T) {
	todos := []model.Todo{
		{ID: 1, Text: "late", DueDate: at(-time.Hour)},
		{ID: 2, Text: "open"},
		{ID: 3, Text: "later", DueDate: at(time.Hour)},
	}
	got := ExportOrder(todos, now)
	want := []int64{2, 3, 1}
	for i, td := range got {
		if td.ID != want[i] {
			t.Fatalf("ExportOrder ids = %v, want %v", got, want)
		}
	}
}

func TestJSONRoundTrip(t *testing.T) {
	todos := []model.Todo{
		{ID: 1760860800000, Text: "A", DueDate: at(-24 * time.Hour)},
		{ID: 1760860800500, Text: "B", Completed: true},
	}
	var buf bytes.Buffer
	if err := WriteJSON(&buf, todos); err != nil {
		t.Fatalf("WriteJSON error: %v", err)
	}
	first := buf.String()
	back, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON error: %v", err)
	}
	if len(back) != len(todos) {
		t.Fatalf("len = %d, want %d", len(back), len(todos))
	}
	for i := range todos {
		if !todos[i].Equal(back[i]) {
			t.Errorf("todo %d = %+v, want %+v", i, back[i], todos[i])
		}
	}
	buf.Reset()
	if err := WriteJSON(&buf, back); err != nil {
		t.Fatalf("WriteJSON error: %v", err)
	}
	if buf.String() != first {
		t.Errorf("reserialized JSON differs:\n%s\n%s", buf.String(), first)
	}
}

func TestReadJSONRejectsGarbage(t *testing.T) {
	if _, err := ReadJSON(strings.NewReader(`[{"id":"x"}]`)); err == nil {
		t.Error("expected error for invalid backup")
	}
}

func TestFileNames(t *testing.T) {
	if got := CSVFileName(now); got != "todo-list-2026-10-19.csv" {
		t.Errorf("CSVFileName = %q", got)
	}
	if got := JSONFileName(now); got != "todos-backup-2026-10-19.json" {
		t.Errorf("JSONFileName = %q", got)
	}
}

// memSink records deliveries.
type memSink struct {
	names    []string
	contents [][]byte
}

func (m *memSink) Deliver(name string, content []byte) (string, error) {
	m.names = append(m.names, name)
	m.contents = append(m.contents, content)
	return name, nil
}

func TestExporter(t *testing.T) {
	sink := &memSink{}
	e := Exporter{Sink: sink, Location: time.UTC, Now: func() time.Time { return now }}
	todos := []model.Todo{{ID: 1, Text: "late", DueDate: at(-time.Hour)}, {ID: 2, Text: "open"}}

	if _, err := e.CSV(todos); err != nil {
		t.Fatalf("CSV error: %v", err)
	}
	if _, err := e.JSON(todos); err != nil {
		t.Fatalf("JSON error: %v", err)
	}
	if len(sink.names) != 2 || sink.names[0] != "todo-list-2026-10-19.csv" || sink.names[1] != "todos-backup-2026-10-19.json" {
		t.Fatalf("names = %v", sink.names)
	}
	lines := strings.Split(string(sink.contents[0]), "\n")
	if len(lines) != 3 || !strings.HasPrefix(lines[1], `"open"`) || !strings.HasPrefix(lines[2], `"late"`) {
		t.Errorf("csv lines = %q", lines)
	}
	// JSON keeps stored order
	if !strings.Contains(string(sink.contents[1]), "\"late\"") ||
		strings.Index(string(sink.contents[1]), "late") > strings.Index(string(sink.contents[1]), "open") {
		t.Errorf("json = %s", sink.contents[1])
	}
}

func TestDirSink(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	p, err := DirSink{Dir: dir}.Deliver("a.csv", []byte("x"))
	if err != nil {
		t.Fatalf("Deliver error: %v", err)
	}
	if p != filepath.Join(dir, "a.csv") {
		t.Errorf("path = %q", p)
	}
	b, err := os.ReadFile(p)
	if err != nil || string(b) != "x" {
		t.Errorf("ReadFile = %q, %v", b, err)
	}
}
