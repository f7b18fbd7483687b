// Package tui is the interactive todo list.
package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/idilsaglam/todolist/internal/export"
	"github.com/idilsaglam/todolist/internal/model"
	"github.com/idilsaglam/todolist/internal/partition"
	"github.com/idilsaglam/todolist/internal/state"
	"github.com/idilsaglam/todolist/internal/ui"
	"github.com/idilsaglam/todolist/internal/utils"
)

// listItem adapts a todo to bubbles/list.Item
type listItem struct {
	todo    model.Todo
	pos     int // 0-based position in the collection
	overdue bool
	due     string
}

func (i listItem) Title() string       { return i.todo.Text }
func (i listItem) Description() string { return i.due }
func (i listItem) FilterValue() string { return i.todo.Text }

type mode int

const (
	browsing mode = iota
	addingTitle
	addingDue
)

// undoEntry is the last deleted todo (single level).
type undoEntry struct {
	todo  model.Todo
	index int
}

// Model is the Bubble Tea model of the list screen.
type Model struct {
	ctx      context.Context
	store    *state.Store
	exporter export.Exporter
	now      func() time.Time
	loc      *time.Location

	list list.Model

	mode         mode
	ti           textinput.Model
	pendingTitle string
	inputErr     string

	status    string
	statusErr bool

	undo *undoEntry

	width, height int
}

// Option configures a Model.
type Option func(*Model)

// WithClock overrides time.Now for overdue checks.
func WithClock(now func() time.Time) Option {
	return func(m *Model) { m.now = now }
}

// WithLocation sets the zone due dates are shown and entered in.
func WithLocation(loc *time.Location) Option {
	return func(m *Model) { m.loc = loc }
}

// WithContext sets the context used for dispatches.
func WithContext(ctx context.Context) Option {
	return func(m *Model) { m.ctx = ctx }
}

var (
	toggleBind = key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle"))
	addBind    = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	deleteBind = key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete"))
	undoBind   = key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo"))
	csvBind    = key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "export csv"))
	backupBind = key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "json backup"))
)

// New builds the list screen over store.
func New(store *state.Store, exporter export.Exporter, opts ...Option) Model {
	m := Model{
		ctx:      context.Background(),
		store:    store,
		exporter: exporter,
		now:      time.Now,
		loc:      time.Local,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.width, m.height = termSize()

	l := list.New(nil, itemDelegate{}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = ui.Current().Title
	l.Styles.HelpStyle = ui.Current().Muted
	l.Styles.PaginationStyle = ui.Current().Muted
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("todo", "todos")
	extra := func() []key.Binding {
		return []key.Binding{toggleBind, addBind, deleteBind, undoBind, csvBind, backupBind}
	}
	// d, u and b are ours; keep paging on arrows, h/l and pgup/pgdown
	l.KeyMap.PrevPage.SetKeys("left", "h", "pgup")
	l.KeyMap.NextPage.SetKeys("right", "l", "pgdown", "f")
	l.AdditionalShortHelpKeys = extra
	l.AdditionalFullHelpKeys = extra
	m.list = l

	m.ti = textinput.New()
	m.ti.Prompt = "> "
	m.ti.CharLimit = 200

	m.refresh()
	m.resize()
	return m
}

// Run starts the program on the alternate screen.
func Run(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

// refresh rebuilds the list from the store: active todos first, then
// overdue ones.
func (m *Model) refresh() {
	now := m.now()
	todos := m.store.Todos()
	pos := make(map[int64]int, len(todos))
	for i, t := range todos {
		pos[t.ID] = i
	}
	active, overdue := partition.Split(todos, now)
	view := ui.View{Now: now, Location: m.loc}

	items := make([]list.Item, 0, len(todos))
	for _, t := range append(active, overdue...) {
		it := listItem{todo: t, pos: pos[t.ID], overdue: partition.IsOverdue(t, now)}
		if t.DueDate != nil {
			it.due = "due " + view.FormatDue(*t.DueDate)
		}
		items = append(items, it)
	}
	m.list.SetItems(items)
	m.list.Title = ui.Header(partition.Counts(todos, now))
}

func (m *Model) resize() {
	listHeight := m.height - 4
	if m.mode != browsing {
		listHeight -= 4
	}
	if listHeight < 3 {
		listHeight = 3
	}
	m.list.SetSize(m.width-4, listHeight)
}

func (m *Model) setStatus(msg string, isErr bool) {
	m.status, m.statusErr = msg, isErr
}

func (m *Model) selected() (listItem, bool) {
	it, ok := m.list.SelectedItem().(listItem)
	return it, ok
}

func (m *Model) dispatch(a state.Action) bool {
	if err := m.store.Dispatch(m.ctx, a); err != nil {
		m.setStatus(err.Error(), true)
		return false
	}
	m.refresh()
	return true
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = ws.Width, ws.Height
		m.resize()
		return m, nil
	}

	if m.mode != browsing {
		return m.updateInput(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	switch keyMsg.String() {
	case "q":
		return m, tea.Quit
	case "esc":
		if m.list.FilterState() == list.FilterApplied {
			m.list.ResetFilter()
			return m, nil
		}
		return m, tea.Quit
	case " ":
		if it, ok := m.selected(); ok {
			m.dispatch(state.Toggle{ID: it.todo.ID})
		}
		return m, nil
	case "d":
		if it, ok := m.selected(); ok {
			if m.dispatch(state.Remove{ID: it.todo.ID}) {
				m.undo = &undoEntry{todo: it.todo, index: it.pos}
				m.setStatus("deleted "+it.todo.Text+" (u to undo)", false)
			}
		}
		return m, nil
	case "u":
		if m.undo != nil {
			if m.dispatch(state.Restore{Todo: m.undo.todo, Index: m.undo.index}) {
				m.setStatus("restored "+m.undo.todo.Text, false)
				m.undo = nil
			}
		}
		return m, nil
	case "a":
		m.mode = addingTitle
		m.pendingTitle = ""
		m.inputErr = ""
		m.ti.SetValue("")
		m.ti.Placeholder = "New todo..."
		m.resize()
		return m, m.ti.Focus()
	case "c":
		m.exportWith(m.exporter.CSV)
		return m, nil
	case "b":
		m.exportWith(m.exporter.JSON)
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *Model) exportWith(fn func([]model.Todo) (string, error)) {
	p, err := fn(m.store.Todos())
	if err != nil {
		m.setStatus("export: "+err.Error(), true)
		return
	}
	m.setStatus("exported to "+p, false)
}

// updateInput drives the two-step add form: title, then optional due date.
func (m Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if x, ok := msg.(tea.KeyMsg); ok {
		switch x.String() {
		case "esc":
			m.closeInput()
			return m, nil
		case "enter":
			value := strings.TrimSpace(m.ti.Value())
			if m.mode == addingTitle {
				if value == "" {
					m.inputErr = "Title cannot be empty"
					return m, nil
				}
				m.pendingTitle = value
				m.mode = addingDue
				m.inputErr = ""
				m.ti.SetValue("")
				m.ti.Placeholder = "Due date (2026-10-19 17:30, tomorrow, +2d) or empty"
				return m, nil
			}
			due, err := utils.ParseDue(value, m.now(), m.loc)
			if err != nil {
				m.inputErr = "invalid date: " + value
				return m, nil
			}
			if _, err := m.store.Add(m.ctx, m.pendingTitle, due); err != nil {
				m.inputErr = err.Error()
				return m, nil
			}
			m.setStatus("added "+m.pendingTitle, false)
			m.closeInput()
			m.refresh()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

func (m *Model) closeInput() {
	m.mode = browsing
	m.pendingTitle = ""
	m.inputErr = ""
	m.ti.SetValue("")
	m.ti.Blur()
	m.resize()
}

// View implements tea.Model.
func (m Model) View() string {
	t := ui.Current()
	content := m.list.View()

	if m.mode != browsing {
		title := "Add todo"
		if m.mode == addingDue {
			title = "Due date for " + m.pendingTitle
		}
		if m.inputErr != "" {
			title += " - " + t.Error.Render(m.inputErr)
		}
		bar := lipgloss.NewStyle().Border(t.Border).BorderForeground(t.BorderColor).Padding(0, 1)
		content += "\n" + bar.Render(title+"\n"+m.ti.View())
	}
	if m.status != "" {
		style := t.Muted
		if m.statusErr {
			style = t.Error
		}
		content += "\n" + style.Render(m.status)
	}
	return ui.PanelString(content)
}

// Custom delegate to control how items render (single line)
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	t := ui.Current()

	box := t.Muted.Render(t.BoxUnchecked)
	text := it.todo.Text
	if it.todo.Completed {
		box = t.Success.Render(t.BoxChecked)
		text = t.Done.Render(text)
	}
	line := fmt.Sprintf("%s %s", box, text)
	if it.due != "" {
		if it.overdue {
			line += "  " + t.Error.Render(t.SymOverdue+" overdue, "+it.due)
		} else {
			line += "  " + t.Muted.Render(it.due)
		}
	}

	prefix := "  "
	if index == m.Index() {
		prefix = t.Selected.Render("> ")
	}
	fmt.Fprint(w, prefix+line)
}

// termSize falls back to 80x24 when stdout is not a terminal.
func termSize() (int, int) {
	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 || h <= 0 {
		return 80, 24
	}
	return w, h
}
