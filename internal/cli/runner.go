package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/idilsaglam/todolist/internal/config"
	"github.com/idilsaglam/todolist/internal/export"
	"github.com/idilsaglam/todolist/internal/logging"
	"github.com/idilsaglam/todolist/internal/model"
	"github.com/idilsaglam/todolist/internal/state"
	"github.com/idilsaglam/todolist/internal/store"
	"github.com/idilsaglam/todolist/internal/ui"
	"github.com/idilsaglam/todolist/internal/utils"
)

// Version is set at build time
var Version = "dev"

// Exit codes.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// Options tune the runner; zero values mean production defaults.
type Options struct {
	Now func() time.Time // clock for ids, overdue checks and file names
}

// usageError marks mistakes in how the command was called.
type usageError struct{ error }

func (e usageError) Unwrap() error { return e.error }

func usage(err error) error { return usageError{err} }

// Run executes the command line and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, stdout, stderr io.Writer, opt Options) int {
	if opt.Now == nil {
		opt.Now = time.Now
	}
	root := newRoot(stdout, stderr, opt)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if len(args) == 0 {
		_ = root.Help()
		return ExitUsage
	}

	err := root.Execute()
	if err == nil {
		return ExitOK
	}
	report(stderr, err)
	if isUsage(err) {
		return ExitUsage
	}
	return ExitError
}

func isUsage(err error) bool {
	var ue usageError
	if errors.As(err, &ue) || errors.Is(err, model.ErrEmptyText) || errors.Is(err, model.ErrDueOutOfRange) {
		return true
	}
	return strings.HasPrefix(err.Error(), "unknown command") ||
		strings.HasPrefix(err.Error(), "unknown flag") ||
		strings.HasPrefix(err.Error(), "unknown shorthand flag")
}

// report prints err and, when it carries one, its suggestion as a hint.
func report(w io.Writer, err error) {
	msg := err.Error()
	hint := utils.Suggestion(err)
	if hint != "" {
		msg = strings.TrimSuffix(msg, "\n\nSuggestion: "+hint)
	}
	ui.Fail(w, msg)
	if hint != "" {
		fmt.Fprintln(w, ui.Current().Muted.Render("Hint: "+hint))
	}
}

func newRoot(stdout, stderr io.Writer, opt Options) *cobra.Command {
	var (
		configPath string
		verbose    bool
	)
	root := &cobra.Command{
		Use:   "todolist",
		Short: "A tiny todo list with due dates",
		Long: `todolist keeps a local list of todos with optional due dates.
Overdue todos (pending and past their due date) are listed apart.
Lists can be exported to CSV or backed up to JSON.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default "+config.DefaultPath()+")")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error { return usage(err) })

	open := func(cmd *cobra.Command) (*app, error) {
		return openApp(cmd.Context(), configPath, verbose, stdout, stderr, opt)
	}
	root.AddCommand(
		newAddCmd(open),
		newListCmd(open),
		newDoneCmd(open),
		newRemoveCmd(open),
		newExportCmd(open),
		newImportCmd(open),
		newTUICmd(open),
	)
	return root
}

// app is everything a subcommand needs, built once per invocation.
type app struct {
	ctx    context.Context
	cfg    *config.Config
	logger *log.Logger
	store  *store.Store
	state  *state.Store
	loc    *time.Location
	now    func() time.Time
	stdout io.Writer
	stderr io.Writer
}

func openApp(ctx context.Context, configPath string, verbose bool, stdout, stderr io.Writer, opt Options) (*app, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	logger := logging.New(stderr, cfg.Log.Level, verbose)
	ui.SetTheme(cfg.Theme)

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	st, err := store.Open(cfg.Storage.Backend, cfg.Storage.Dir, logger)
	if err != nil {
		return nil, err
	}
	todos, err := st.Load(ctx)
	if err != nil {
		_ = st.Close()
		return nil, err
	}
	logger.Debug("opened store", "backend", cfg.Storage.Backend, "dir", cfg.Storage.Dir, "todos", len(todos))

	return &app{
		ctx:    ctx,
		cfg:    cfg,
		logger: logger,
		store:  st,
		state:  state.New(todos, st.Save, state.WithClock(opt.Now)),
		loc:    loc,
		now:    opt.Now,
		stdout: stdout,
		stderr: stderr,
	}, nil
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.logger.Warn("close store", "err", err)
	}
}

func (a *app) exporter(dir string) export.Exporter {
	if dir == "" {
		dir = a.cfg.Export.Dir
	}
	return export.Exporter{
		Sink:     export.DirSink{Dir: dir},
		Location: a.loc,
		Now:      a.now,
	}
}

func (a *app) view() ui.View {
	return ui.View{Now: a.now(), Location: a.loc}
}
