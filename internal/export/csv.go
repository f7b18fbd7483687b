// Package export renders todos as CSV or JSON backups and delivers them
// through a Sink.
package export

import (
	"bufio"
	"io"
	"strings"
	"time"

	"github.com/idilsaglam/todolist/internal/model"
	"github.com/idilsaglam/todolist/internal/partition"
)

// CSVHeader is the first line of every CSV export.
var CSVHeader = []string{"Task", "Status", "Due Date", "Is Overdue"}

// DueLayout is the en-US locale rendering of a due date.
const DueLayout = "1/2/2006, 3:04:05 PM"

const noDueDate = "No due date"

// ExportOrder lists active todos first, then overdue ones.
func ExportOrder(todos []model.Todo, now time.Time) []model.Todo {
	active, overdue := partition.Split(todos, now)
	return append(active, overdue...)
}

// Row builds the CSV fields of one todo.
func Row(t model.Todo, now time.Time, loc *time.Location) []string {
	status := "Pending"
	if t.Completed {
		status = "Completed"
	}
	due := noDueDate
	if t.DueDate != nil {
		due = t.DueDate.In(loc).Format(DueLayout)
	}
	overdue := "No"
	if partition.IsOverdue(t, now) {
		overdue = "Yes"
	}
	return []string{t.Text, status, due, overdue}
}

// WriteCSV writes the header and one row per todo in the given order.
// Lines are separated by \n with no trailing newline; every data field is
// double-quoted.
func WriteCSV(w io.Writer, todos []model.Todo, now time.Time, loc *time.Location) error {
	if loc == nil {
		loc = time.Local
	}
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(strings.Join(CSVHeader, ",")); err != nil {
		return err
	}
	for _, t := range todos {
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
		for i, field := range Row(t, now, loc) {
			if i > 0 {
				if err := bw.WriteByte(','); err != nil {
					return err
				}
			}
			if _, err := bw.WriteString(quote(field)); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

// CSV is WriteCSV into a string.
func CSV(todos []model.Todo, now time.Time, loc *time.Location) string {
	var sb strings.Builder
	_ = WriteCSV(&sb, todos, now, loc)
	return sb.String()
}

// quote wraps s in double quotes, doubling embedded ones.
func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
