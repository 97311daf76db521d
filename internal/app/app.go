// Package app wires configuration, plugins, history and the editor into a
// runnable blockmark session.
package app

import (
	"errors"
	"io"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/blockmark/internal/config"
	"github.com/dshills/blockmark/internal/editor"
	"github.com/dshills/blockmark/internal/engine/history"
	"github.com/dshills/blockmark/internal/event"
	"github.com/dshills/blockmark/internal/host"
	"github.com/dshills/blockmark/internal/input/key"
	"github.com/dshills/blockmark/internal/logging"
	"github.com/dshills/blockmark/internal/plugin"
)

// Options configures an App.
type Options struct {
	// Config defaults to config.Default().
	Config *config.Config

	// File overrides plugins.file.path.
	File string

	// Markup is the initial document when no plugin supplies one.
	Markup string

	// LogOutput receives log output when log.file is unset. Defaults to
	// discarding it.
	LogOutput io.Writer
}

// App is one editing session.
type App struct {
	cfg *config.Config
	log *logging.Logger

	editor  *editor.Editor
	store   history.Store
	undo    *plugin.UndoRedo
	guard   *plugin.ContentGuard
	file    *plugin.FileAdapter
	undoKey key.Event
	redoKey key.Event

	closers []func() error
}

// New builds the session described by opts. On failure every component
// already started is closed again.
func New(opts Options) (*App, error) {
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	a := &App{cfg: opts.Config}
	b := newBootstrapper(a, opts)
	if err := b.bootstrap(); err != nil {
		return nil, err
	}
	return a, nil
}

// Editor returns the session's editor.
func (a *App) Editor() *editor.Editor {
	return a.editor
}

// Config returns the configuration in use.
func (a *App) Config() *config.Config {
	return a.cfg
}

// Logger returns the session logger.
func (a *App) Logger() *logging.Logger {
	return a.log
}

// History returns the undo history store.
func (a *App) History() history.Store {
	return a.store
}

// UndoRedo returns the undo-redo plugin.
func (a *App) UndoRedo() *plugin.UndoRedo {
	return a.undo
}

// Guard returns the content guard, or nil when it is disabled or changes
// are persisted by a file or HTTP adapter.
func (a *App) Guard() *plugin.ContentGuard {
	return a.guard
}

// NewHost builds the interactive host for screen using the configured
// theme and undo chords.
func (a *App) NewHost(screen tcell.Screen) (*host.Host, error) {
	if a.editor == nil {
		return nil, ErrNoDocument
	}

	theme, err := host.ThemeFromConfig(a.cfg.Theme)
	if err != nil {
		return nil, err
	}
	opts := host.Options{
		Theme:   &theme,
		Logger:  a.log,
		History: a.undo,
		UndoKey: a.undoKey,
		RedoKey: a.redoKey,

		Dismisser: event.Default(),
	}
	if a.guard != nil {
		opts.Guard = a.guard
	}
	return host.New(screen, a.editor, opts), nil
}

// Run runs the interactive editor on screen until the user quits. When the
// file adapter is configured to watch, external changes reload the
// document.
func (a *App) Run(screen tcell.Screen) error {
	h, err := a.NewHost(screen)
	if err != nil {
		return err
	}
	return a.RunHost(h)
}

// RunHost runs a host built by NewHost.
func (a *App) RunHost(h *host.Host) error {
	if a.file != nil && a.cfg.Plugins.File.Watch {
		w, err := a.file.Watch(h.Reload)
		if err != nil {
			return err
		}
		defer w.Close()
	}
	return h.Run()
}

// Shutdown ends any open edit session and releases every component in
// reverse start order.
func (a *App) Shutdown() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
