package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/todolist/internal/export"
	"github.com/idilsaglam/todolist/internal/partition"
	"github.com/idilsaglam/todolist/internal/state"
	"github.com/idilsaglam/todolist/internal/tui"
	"github.com/idilsaglam/todolist/internal/ui"
	"github.com/idilsaglam/todolist/internal/utils"
)

type opener func(cmd *cobra.Command) (*app, error)

var exportFormats = []string{"csv", "json"}

// exactArgs is cobra.ExactArgs reported as a usage error.
func exactArgs(n int, use string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return usage(fmt.Errorf("usage: todolist %s", use))
		}
		return nil
	}
}

func newAddCmd(open opener) *cobra.Command {
	var due string
	cmd := &cobra.Command{
		Use:   "add <text...>",
		Short: "Add a todo (text can be multiple words)",
		Example: `  todolist add "Buy milk"
  todolist add Pay rent --due 2026-11-01
  todolist add Call mom --due tomorrow`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return usage(errors.New("usage: todolist add <text...>"))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := open(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			dueAt, err := utils.ParseDue(due, a.now(), a.loc)
			if err != nil {
				return usage(err)
			}
			t, err := a.state.Add(a.ctx, strings.Join(args, " "), dueAt)
			if err != nil {
				return fmt.Errorf("add: %w", err)
			}
			a.logger.Debug("added todo", "id", t.ID, "due", t.DueDate)
			ui.OK(a.stdout, fmt.Sprintf("added #%d", a.state.Len()))
			return nil
		},
	}
	cmd.Flags().StringVarP(&due, "due", "d", "", "due date (2026-10-19, 2026-10-19 17:30, tomorrow, +2d)")
	return cmd
}

func newListCmd(open opener) *cobra.Command {
	var flat bool
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List todos, overdue ones last",
		Args:    exactArgs(0, "ls [--flat]"),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := open(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			todos := a.state.Todos()
			view := a.view()
			sum := partition.Counts(todos, view.Now)

			lines := []string{
				ui.Header(sum),
				ui.Current().Muted.Render(ui.ProgressBar(sum.Done, sum.Total(), 28)),
				"",
			}
			if flat {
				lines = append(lines, view.FlatLines(todos)...)
			} else {
				lines = append(lines, view.GroupLines(todos)...)
			}
			lines = append(lines, "", ui.Current().Muted.Render("Tip: add with `todolist add \"Buy milk\" --due tomorrow`"))
			ui.Panel(a.stdout, lines)
			return nil
		},
	}
	cmd.Flags().BoolVar(&flat, "flat", false, "list in stored order without groups")
	return cmd
}

// atIndex resolves a 1-based index argument against the collection.
func atIndex(a *app, arg string) (int64, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, usage(fmt.Errorf("not a number: %s", arg))
	}
	t, ok := a.state.At(n - 1)
	if !ok {
		return 0, usage(utils.ErrIndexOutOfRange(a.state.Len(), n))
	}
	return t.ID, nil
}

func newDoneCmd(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "done <index>",
		Short: "Toggle completion of the item at a 1-based index",
		Args:  exactArgs(1, "done <index>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := open(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			id, err := atIndex(a, args[0])
			if err != nil {
				return err
			}
			if err := a.state.Dispatch(a.ctx, state.Toggle{ID: id}); err != nil {
				return fmt.Errorf("done: %w", err)
			}
			ui.OK(a.stdout, "toggled")
			return nil
		},
	}
}

func newRemoveCmd(open opener) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <index>",
		Aliases: []string{"remove"},
		Short:   "Remove the item at a 1-based index",
		Args:    exactArgs(1, "rm <index>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := open(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			id, err := atIndex(a, args[0])
			if err != nil {
				return err
			}
			if err := a.state.Dispatch(a.ctx, state.Remove{ID: id}); err != nil {
				return fmt.Errorf("rm: %w", err)
			}
			ui.OK(a.stdout, "removed")
			return nil
		},
	}
}

func newExportCmd(open opener) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "export <csv|json>",
		Short: "Export todos to CSV or back them up to JSON",
		Example: `  todolist export csv
  todolist export json --dir ~/backups`,
		Args: exactArgs(1, "export <csv|json> [--dir D]"),
		RunE: func(cmd *cobra.Command, args []string) error {
			format := strings.ToLower(args[0])
			var run func(export.Exporter, *app) (string, error)
			switch format {
			case "csv":
				run = func(e export.Exporter, a *app) (string, error) { return e.CSV(a.state.Todos()) }
			case "json":
				run = func(e export.Exporter, a *app) (string, error) { return e.JSON(a.state.Todos()) }
			default:
				return usage(utils.ErrInvalidFormat(args[0], exportFormats))
			}

			a, err := open(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			path, err := run(a.exporter(dir), a)
			if err != nil {
				return fmt.Errorf("export %s: %w", format, err)
			}
			a.logger.Debug("exported", "format", format, "path", path)
			ui.OK(a.stdout, "exported to "+path)
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "output directory (default export.dir from config)")
	return cmd
}

func newImportCmd(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace all todos with a JSON backup",
		Args:  exactArgs(1, "import <file>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("import: %w", err)
			}
			defer f.Close()
			todos, err := export.ReadJSON(f)
			if err != nil {
				return utils.WrapWithSuggestion(fmt.Errorf("import: %w", err),
					"Use a file written by 'todolist export json'")
			}

			a, err := open(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.state.Dispatch(a.ctx, state.Replace{Todos: todos}); err != nil {
				return fmt.Errorf("import: %w", err)
			}
			ui.OK(a.stdout, fmt.Sprintf("imported %d todos", len(todos)))
			return nil
		},
	}
}

func newTUICmd(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Browse and edit todos interactively",
		Args:  exactArgs(0, "tui"),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := open(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			m := tui.New(a.state, a.exporter(""),
				tui.WithClock(a.now),
				tui.WithLocation(a.loc),
				tui.WithContext(a.ctx),
			)
			return tui.Run(m)
		},
	}
}
