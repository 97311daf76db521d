package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dshills/blockmark/internal/editor"
	"github.com/dshills/blockmark/internal/engine/history"
	"github.com/dshills/blockmark/internal/event"
	"github.com/dshills/blockmark/internal/logging"
	"github.com/dshills/blockmark/internal/plugin"
	"github.com/dshills/blockmark/internal/plugin/lua"
	"github.com/dshills/blockmark/internal/renderer"
)

// bootstrapper starts components in dependency order and closes them
// again if a later one fails.
type bootstrapper struct {
	app  *App
	opts Options

	renderer renderer.Renderer
	plugins  []any
	hotkeys  []editor.HotKey
}

func newBootstrapper(a *App, opts Options) *bootstrapper {
	return &bootstrapper{app: a, opts: opts}
}

func (b *bootstrapper) bootstrap() error {
	steps := []struct {
		component string
		init      func() error
	}{
		{"logger", b.initLogger},
		{"renderer", b.initRenderer},
		{"history", b.initHistory},
		{"plugins", b.initPlugins},
		{"lua", b.initLua},
		{"hotkeys", b.initHotKeys},
		{"editor", b.initEditor},
	}

	for _, step := range steps {
		if err := step.init(); err != nil {
			_ = b.app.Shutdown()
			return &InitError{Component: step.component, Err: err}
		}
	}
	b.app.log.Debug("started with %d plugins", len(b.plugins))
	return nil
}

func (b *bootstrapper) onClose(fn func() error) {
	b.app.closers = append(b.app.closers, fn)
}

func (b *bootstrapper) initLogger() error {
	cfg := b.app.cfg
	out := b.opts.LogOutput
	if out == nil {
		out = io.Discard
	}
	if cfg.Log.File != "" {
		f, err := logging.OpenFile(cfg.Log.File)
		if err != nil {
			return err
		}
		b.onClose(f.Close)
		out = f
	}
	b.app.log = logging.New(logging.Config{
		Level:  cfg.LogLevel(),
		Output: out,
		Prefix: "blockmark",
	})
	return nil
}

func (b *bootstrapper) initRenderer() error {
	r, err := b.app.cfg.NewRenderer()
	if err != nil {
		return err
	}
	b.renderer = r
	return nil
}

func (b *bootstrapper) initHistory() error {
	hc := b.app.cfg.History
	if hc.Backend != "bolt" {
		b.app.store = history.NewMemory(hc.MaxEntries)
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(hc.Path), 0o755); err != nil {
		return err
	}
	kv, err := history.OpenBolt(hc.Path)
	if err != nil {
		return err
	}
	b.onClose(kv.Close)

	b.app.store = history.NewDurable(kv,
		history.WithKey(b.historyKey()),
		history.WithMaxEntries(hc.MaxEntries),
		history.WithLogger(b.app.log),
	)
	return nil
}

// historyKey keeps one history per document: with the default key and a
// file adapter, the file's absolute path is used.
func (b *bootstrapper) historyKey() string {
	key := b.app.cfg.History.Key
	path := b.documentPath()
	if key != history.DefaultKey || path == "" {
		return key
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

func (b *bootstrapper) documentPath() string {
	if b.opts.File != "" {
		return b.opts.File
	}
	return b.app.cfg.Plugins.File.Path
}

// initPlugins registers the bundled plugins. Order matters: the first
// markup source wins, so the file adapter is asked before HTTP and Lua.
func (b *bootstrapper) initPlugins() error {
	pc := b.app.cfg.Plugins
	log := b.app.log

	if pc.LogEvents {
		b.plugins = append(b.plugins, plugin.NewEventLogger(log))
	}

	if path := b.documentPath(); path != "" {
		b.app.file = plugin.NewFileAdapter(path,
			plugin.WithHTMLOutput(pc.File.HTML),
			plugin.WithFileLogger(log),
		)
		b.plugins = append(b.plugins, b.app.file)
	}

	if pc.HTTP.GetURL != "" || pc.HTTP.PostURL != "" {
		h := plugin.NewHTTPAdapter(pc.HTTP.GetURL, pc.HTTP.PostURL)
		if d := b.app.cfg.HTTPTimeout(); d > 0 {
			h.Timeout = d
		}
		b.plugins = append(b.plugins, h)
	}

	if pc.Template.Path != "" {
		t, err := plugin.NewTemplateAdapter(pc.Template.Path, pc.Template.Selector, pc.Template.Output)
		if err != nil {
			return err
		}
		b.plugins = append(b.plugins, t)
	}

	b.app.undo = plugin.NewUndoRedo(b.app.store)
	b.plugins = append(b.plugins, b.app.undo)

	if pc.ContentGuard && !b.app.persisted() {
		b.app.guard = plugin.NewContentGuard()
		b.plugins = append(b.plugins, b.app.guard)
	}
	return nil
}

func (b *bootstrapper) initLua() error {
	lc := b.app.cfg.Plugins.Lua
	if len(lc.Scripts) == 0 {
		return nil
	}
	paths := lc.Paths
	if len(paths) == 0 {
		paths = plugin.DefaultPluginPaths()
	}

	for _, name := range lc.Scripts {
		script, err := plugin.Find(name, paths...)
		if err != nil {
			return err
		}
		p, err := lua.Load(script.Path, lua.WithLogger(b.app.log))
		if err != nil {
			return err
		}
		b.onClose(p.Close)
		b.plugins = append(b.plugins, p.Registration())
	}
	return nil
}

func (b *bootstrapper) initHotKeys() error {
	hotkeys, err := b.app.cfg.BuildHotKeys()
	if err != nil {
		return err
	}
	if undo, redo, ok := b.app.cfg.UndoRedoChords(); ok {
		b.app.undoKey, b.app.redoKey = undo, redo
		hotkeys = append(hotkeys, b.app.undo.HotKeys(undo, redo)...)
	}
	b.hotkeys = hotkeys
	return nil
}

func (b *bootstrapper) initEditor() error {
	container := "blockmark"
	if path := b.documentPath(); path != "" {
		container = path
	}

	e, err := editor.New(container, editor.Options{
		Markup:    b.opts.Markup,
		Renderer:  b.renderer,
		Plugins:   b.plugins,
		HotKeys:   b.hotkeys,
		Logger:    b.app.log,
		Dismisser: event.Default(),
	})
	if err != nil {
		return fmt.Errorf("create editor: %w", err)
	}
	b.app.editor = e
	b.onClose(e.Close)
	return nil
}
