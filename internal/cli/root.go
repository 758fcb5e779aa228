// Package cli is the tada command tree.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Makepad-fr/tada-lists/internal/config"
	"github.com/Makepad-fr/tada-lists/internal/logging"
	"github.com/Makepad-fr/tada-lists/internal/store/jsonstore"
	"github.com/Makepad-fr/tada-lists/internal/todo"
	"github.com/Makepad-fr/tada-lists/internal/ui"
)

// App carries state shared by every command.
type App struct {
	ConfigPath  string
	SessionFile string
	Theme       string
	LogLevel    string

	Out, Err io.Writer

	cfg    *config.Config
	logger *log.Logger
}

// usageError marks errors that exit with code 2.
type usageError struct{ msg string }

func (e usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return usageError{msg: fmt.Sprintf(format, args...)}
}

func exactArgs(n int, usage string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return usagef("usage: %s", usage)
		}
		return nil
	}
}

func minArgs(n int, usage string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < n {
			return usagef("usage: %s", usage)
		}
		return nil
	}
}

func parseID(arg, what string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, usagef("%s: not a number: %s", what, arg)
	}
	return n, nil
}

// NewRootCmd builds the command tree around app.
func NewRootCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "tada",
		Short:         "tada - todo lists in your browser or terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: strings.TrimSpace(`
  # Serve the web app
  tada serve --addr :4567

  # Browse the local session interactively
  tada

  # Scriptable commands
  tada lists new "Groceries"
  tada todos add 1 "Buy milk"
  tada todos done 1 1
  tada lists --sorted
`),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(app)
		},
	}
	cmd.SetOut(app.Out)
	cmd.SetErr(app.Err)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{msg: err.Error()}
	})

	pf := cmd.PersistentFlags()
	pf.StringVar(&app.ConfigPath, "config", "", "config file (default: ./tada.toml, ./tada.yaml or user config)")
	pf.StringVar(&app.SessionFile, "session-file", "", "local session file used by CLI and TUI")
	pf.StringVar(&app.Theme, "theme", "classic", "output theme: classic, neon or mono")
	pf.StringVar(&app.LogLevel, "log-level", "", "log level: debug, info, warn, error")

	cmd.AddCommand(
		newServeCmd(app),
		newTUICmd(app),
		newListsCmd(app),
		newTodosCmd(app),
		newExportCmd(app),
	)
	return cmd
}

// setup loads config then applies flags, which override everything.
func (a *App) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.ConfigPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("session-file") {
		cfg.SessionFile = a.SessionFile
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = a.LogLevel
	}
	a.cfg = cfg

	ui.SetTheme(a.Theme)

	logger, err := logging.New(a.Err, logging.Options{
		Level:      cfg.LogLevel,
		Format:     cfg.LogFormat,
		Timestamps: cfg.LogTimestamps,
		Prefix:     "tada",
	})
	if err != nil {
		return err
	}
	a.logger = logger
	if cfg.File != "" {
		logger.Debug("config loaded", "file", cfg.File)
	}
	return nil
}

func (a *App) sessionFile() string {
	if a.cfg != nil && a.cfg.SessionFile != "" {
		return a.cfg.SessionFile
	}
	return jsonstore.DefaultFile
}

// withStore loads the local session, runs fn and saves when fn changed it.
func (a *App) withStore(fn func(s *todo.Store) (changed bool, err error)) error {
	path := a.sessionFile()
	s, err := jsonstore.Load(path)
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}
	changed, err := fn(s)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}
	if err := jsonstore.Save(path, s); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	return nil
}

// Execute runs the command line and returns an exit code
// (0 ok, 1 error, 2 usage or validation).
func Execute(args []string, stdout, stderr io.Writer) int {
	app := &App{Out: stdout, Err: stderr}
	cmd := NewRootCmd(app)
	cmd.SetArgs(args)
	err := cmd.Execute()
	if err == nil {
		return 0
	}
	ui.Fail(stderr, err.Error())

	var ue usageError
	var te *todo.Error
	switch {
	case errors.As(err, &ue):
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, ui.Current().Muted.Render("Run `tada --help` for usage."))
		return 2
	case errors.As(err, &te):
		return 2
	case strings.HasPrefix(err.Error(), "unknown command"):
		return 2
	}
	return 1
}

// Main is the process entry point.
func Main() {
	os.Exit(Execute(os.Args[1:], os.Stdout, os.Stderr))
}
