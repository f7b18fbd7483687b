package ui

import (
	"fmt"
	"time"

	"github.com/idilsaglam/todolist/internal/model"
	"github.com/idilsaglam/todolist/internal/partition"
)

// DueLayout shows a due date the short way: "Oct 19, 05:30 PM".
const DueLayout = "Jan 2, 03:04 PM"

const maxTitle = 80

// View is what the list renderers need besides the todos.
type View struct {
	Now      time.Time
	Location *time.Location
}

func (v View) loc() *time.Location {
	if v.Location == nil {
		return time.Local
	}
	return v.Location
}

// FormatDue renders a due date for display.
func (v View) FormatDue(t time.Time) string {
	return t.In(v.loc()).Format(DueLayout)
}

// Header is the counts line above a list.
func Header(s partition.Summary) string {
	return fmt.Sprintf("%s  %s %d  %s %d  %s %d  %s %d",
		current.Title.Render("Todos"),
		current.Success.Render(current.SymDone), s.Done,
		current.Pending.Render(current.SymPending), s.Pending,
		current.Error.Render(current.SymOverdue), s.Overdue,
		current.Accent.Render("Total"), s.Total(),
	)
}

// ItemLine renders one todo; index is its 1-based position in the collection.
func (v View) ItemLine(index int, t model.Todo) string {
	idx := fmt.Sprintf("%2d.", index)
	box, boxStyle := current.BoxUnchecked, current.Muted
	text := truncate(t.Text)
	if t.Completed {
		box, boxStyle = current.BoxChecked, current.Success
		text = current.Done.Render(text)
	}
	line := fmt.Sprintf("%s %s %s", current.Muted.Render(idx), boxStyle.Render(box), text)
	if t.DueDate != nil {
		due := "due " + v.FormatDue(*t.DueDate)
		if partition.IsOverdue(t, v.Now) {
			line += "  " + current.Error.Render(due)
		} else {
			line += "  " + current.Muted.Render(due)
		}
	}
	return line
}

// FlatLines lists todos in stored order.
func (v View) FlatLines(todos []model.Todo) []string {
	if len(todos) == 0 {
		return []string{current.Muted.Render("no items")}
	}
	out := make([]string, 0, len(todos))
	for i, t := range todos {
		out = append(out, v.ItemLine(i+1, t))
	}
	return out
}

// GroupLines lists the Active group, then the Overdue group when it is not
// empty. Indexes still refer to stored order.
func (v View) GroupLines(todos []model.Todo) []string {
	pos := make(map[int64]int, len(todos))
	for i, t := range todos {
		pos[t.ID] = i + 1
	}
	active, overdue := partition.Split(todos, v.Now)

	var lines []string
	lines = append(lines, current.Accent.Render("Active"))
	if len(active) == 0 {
		lines = append(lines, current.Muted.Render("(none)"))
	}
	for _, t := range active {
		lines = append(lines, v.ItemLine(pos[t.ID], t))
	}
	if len(overdue) > 0 {
		lines = append(lines, "", current.Error.Render("Overdue"))
		for _, t := range overdue {
			lines = append(lines, v.ItemLine(pos[t.ID], t))
		}
	}
	return lines
}

func truncate(s string) string {
	r := []rune(s)
	if len(r) > maxTitle {
		return string(r[:maxTitle-3]) + "..."
	}
	return s
}
