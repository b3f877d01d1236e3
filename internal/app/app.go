// Package app wires the editor together and runs the event loop.
package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pyedit-io/pyedit/internal/config"
	"github.com/pyedit-io/pyedit/internal/engine"
	"github.com/pyedit-io/pyedit/internal/highlight"
	"github.com/pyedit-io/pyedit/internal/run"
	"github.com/pyedit-io/pyedit/internal/script"
	"github.com/pyedit-io/pyedit/internal/tui"
)

// Options configures the application.
type Options struct {
	// ConfigPath overrides the default config file location.
	ConfigPath string

	// File is the file to open on startup. It does not have to exist.
	File string

	// ReadOnly opens the buffer in read-only mode.
	ReadOnly bool

	// Theme overrides the configured color theme when non-empty.
	Theme string

	// Screen injects a screen, used by tests with tcell's simulation
	// screen. Nil allocates a real terminal.
	Screen tcell.Screen

	// LogOutput receives log lines. Nil discards them.
	LogOutput io.Writer

	// LogLevel sets logging verbosity ("debug", "info", "warn", "error").
	LogLevel string
}

// App is the central coordinator: engine, view, terminal, runner, and
// configuration.
type App struct {
	log      *Logger
	eng      *engine.Engine
	view     *tui.View
	term     *tui.Terminal
	runner   *run.Runner
	store    *config.Store
	settings config.Settings
	policy   *script.Policy

	path    string
	dirty   bool
	message string

	running atomic.Bool
}

// New builds an application from options and the on-disk config.
func New(opts Options) (*App, error) {
	a := &App{
		log:  NewLogger(ParseLogLevel(opts.LogLevel), opts.LogOutput),
		path: opts.File,
	}

	a.store = config.NewStore(opts.ConfigPath)
	settings, err := a.store.Load()
	if err != nil {
		a.log.Warnf("config: %v, using defaults", err)
	}
	a.settings = settings

	engOpts := []engine.Option{
		engine.WithMaxUndoEntries(settings.MaxUndoEntries),
	}
	if opts.ReadOnly {
		engOpts = append(engOpts, engine.WithReadOnly(true))
	}
	if opts.File != "" {
		content, err := os.ReadFile(opts.File)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("app: opening %s: %w", opts.File, err)
		}
		engOpts = append(engOpts, engine.WithContent(string(content)))
	}
	a.eng = engine.New(engOpts...)

	if settings.PolicyScript != "" {
		policy, err := script.NewFromFile(settings.PolicyScript)
		if err != nil {
			a.log.Warnf("policy script: %v, using built-in rule", err)
		} else {
			a.policy = policy
			a.eng.SetBlockOpener(policy.BlockOpener())
		}
	}
	if a.policy == nil {
		a.eng.SetBlockOpener(highlight.BlockOpener())
	}

	themeName := settings.Theme
	if opts.Theme != "" {
		themeName = opts.Theme
	}
	theme := highlight.ThemeByName(themeName)
	provider := highlight.NewProvider(theme, 0)
	a.view = tui.NewView(a.eng, provider,
		tui.WithTabWidth(settings.TabWidth),
		tui.WithLineNumbers(settings.ShowLineNumbers),
	)

	if opts.Screen != nil {
		a.term = tui.NewTerminalWithScreen(opts.Screen)
	} else {
		term, err := tui.NewTerminal()
		if err != nil {
			return nil, fmt.Errorf("app: terminal: %w", err)
		}
		a.term = term
	}

	a.runner = run.New(
		run.WithInterpreter(settings.Interpreter),
		run.WithTimeout(time.Duration(settings.RunTimeoutSecs)*time.Second),
	)

	a.log.Infof("editor initialized, file=%q theme=%s", opts.File, themeName)
	return a, nil
}

// Engine exposes the text engine, primarily for tests.
func (a *App) Engine() *engine.Engine {
	return a.eng
}

// View exposes the view, primarily for tests.
func (a *App) View() *tui.View {
	return a.view
}

// Path returns the file backing the buffer.
func (a *App) Path() string {
	return a.path
}

// Dirty reports whether the buffer has unsaved changes.
func (a *App) Dirty() bool {
	return a.dirty
}

// Close releases resources outside the event loop.
func (a *App) Close() {
	if a.policy != nil {
		a.policy.Close()
	}
}

// Save writes the buffer to its file.
func (a *App) Save() error {
	if a.path == "" {
		return ErrNoFile
	}
	if err := os.WriteFile(a.path, []byte(a.eng.Text()), 0o644); err != nil {
		return fmt.Errorf("app: saving %s: %w", a.path, err)
	}
	a.dirty = false
	a.log.Infof("saved %s", a.path)
	return nil
}

// statusLeft composes the left side of the status line.
func (a *App) statusLeft() string {
	name := a.path
	if name == "" {
		name = "[no file]"
	}
	s := name
	if a.dirty {
		s += " +"
	}
	if a.eng.IsReadOnly() {
		s += " [ro]"
	}
	if n := a.eng.UndoCount(); n > 0 {
		s += fmt.Sprintf(" (undo %d)", n)
	}
	if a.message != "" {
		s += "  " + a.message
	}
	return s
}
