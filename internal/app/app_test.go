package app

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/blockmark/internal/config"
)

func newApp(t *testing.T, opts Options) *App {
	t.Helper()
	a, err := New(opts)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(func() { _ = a.Shutdown() })
	return a
}

func TestNewDefault(t *testing.T) {
	a := newApp(t, Options{Markup: "# Title\n\nbody"})

	e := a.Editor()
	if e.Len() != 2 {
		t.Fatalf("Len = %d, want 2", e.Len())
	}
	if a.Guard() == nil {
		t.Error("unpersisted session should have a content guard")
	}
	if a.Config().Renderer.Name != "markdown" {
		t.Errorf("renderer = %q", a.Config().Renderer.Name)
	}

	b := e.Blocks()[1]
	if err := b.Edit(); err != nil {
		t.Fatalf("Edit failed: %v", err)
	}
	b.SetMarkup("changed")
	if err := e.HideEditor(); err != nil {
		t.Fatalf("HideEditor failed: %v", err)
	}
	if !a.Guard().Dirty() {
		t.Error("guard should be dirty after a change")
	}

	if err := a.UndoRedo().Undo(); err != nil {
		t.Fatalf("Undo failed: %v", err)
	}
	if got := e.FullMarkup(); got != "# Title\n\nbody" {
		t.Errorf("after undo markup = %q", got)
	}
}

func TestFileSessionPersistsHistory(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "doc.md")
	if err := os.WriteFile(doc, []byte("one"), 0o644); err != nil {
		t.Fatal(err)
	}

	newCfg := func() *config.Config {
		cfg := config.Default()
		cfg.History.Backend = config.BackendBolt
		cfg.History.Path = filepath.Join(dir, "state", "history.db")
		return cfg
	}

	first, err := New(Options{Config: newCfg(), File: doc})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if first.Guard() != nil {
		t.Error("file sessions should not install the content guard")
	}
	e := first.Editor()
	b := e.Blocks()[0]
	if err := b.Edit(); err != nil {
		t.Fatalf("Edit failed: %v", err)
	}
	b.SetMarkup("two")
	if err := first.Shutdown(); err != nil {
		t.Fatalf("Shutdown failed: %v", err)
	}

	data, err := os.ReadFile(doc)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "two" {
		t.Fatalf("file = %q, shutdown should commit the open session", data)
	}

	second := newApp(t, Options{Config: newCfg(), File: doc})
	if got := second.Editor().FullMarkup(); got != "two" {
		t.Fatalf("reopened markup = %q", got)
	}
	if err := second.UndoRedo().Undo(); err != nil {
		t.Fatalf("Undo failed: %v", err)
	}
	if got := second.Editor().FullMarkup(); got != "one" {
		t.Errorf("undo across sessions = %q, want one", got)
	}
}

func TestLuaPlugin(t *testing.T) {
	dir := t.TempDir()
	script := `function onGetMarkup() return "# From Lua\n\ntext" end`
	if err := os.WriteFile(filepath.Join(dir, "greet.lua"), []byte(script), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := config.Default()
	cfg.Plugins.Lua.Paths = []string{dir}
	cfg.Plugins.Lua.Scripts = []string{"greet"}

	a := newApp(t, Options{Config: cfg, Markup: "ignored"})
	if got := a.Editor().FullMarkup(); got != "# From Lua\n\ntext" {
		t.Errorf("markup = %q", got)
	}
}

func TestEventLogging(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.Default()
	cfg.Log.Level = "debug"
	cfg.Plugins.LogEvents = true

	newApp(t, Options{Config: cfg, Markup: "a", LogOutput: &buf})
	if !strings.Contains(buf.String(), "event=postInit") {
		t.Errorf("log output missing postInit event:\n%s", buf.String())
	}
}

func TestInitErrors(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*config.Config)
		component string
	}{
		{"missing lua script", func(c *config.Config) {
			c.Plugins.Lua.Paths = []string{t.TempDir()}
			c.Plugins.Lua.Scripts = []string{"nope"}
		}, "lua"},
		{"bad hotkey", func(c *config.Config) {
			c.HotKeys = map[string]string{"escape": "Hyper+x"}
		}, "hotkeys"},
		{"bad renderer", func(c *config.Config) {
			c.Renderer.Name = "rst"
		}, "renderer"},
		{"missing template", func(c *config.Config) {
			c.Plugins.Template.Path = filepath.Join(t.TempDir(), "none.html")
			c.Plugins.Template.Selector = "body"
			c.Plugins.Template.Output = filepath.Join(t.TempDir(), "out.html")
		}, "plugins"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(cfg)
			_, err := New(Options{Config: cfg})
			var ie *InitError
			if !errors.As(err, &ie) {
				t.Fatalf("err = %v, want *InitError", err)
			}
			if ie.Component != tt.component {
				t.Errorf("component = %q, want %q", ie.Component, tt.component)
			}
		})
	}
}

func TestInitErrorReleasesHistory(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.History.Backend = config.BackendBolt
	cfg.History.Path = filepath.Join(dir, "history.db")
	cfg.HotKeys = map[string]string{"escape": "Hyper+x"}

	if _, err := New(Options{Config: cfg}); err == nil {
		t.Fatal("expected an error")
	}

	// The database lock must have been released.
	cfg.HotKeys = nil
	done := make(chan error, 1)
	go func() {
		a, err := New(Options{Config: cfg})
		if err == nil {
			err = a.Shutdown()
		}
		done <- err
	}()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("reopen failed: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("history database still locked")
	}
}

func TestRun(t *testing.T) {
	a := newApp(t, Options{Markup: "a\n\nb"})

	screen := tcell.NewSimulationScreen("UTF-8")
	h, err := a.NewHost(screen)
	if err != nil {
		t.Fatalf("NewHost failed: %v", err)
	}
	if err := h.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	screen.InjectKey(tcell.KeyRune, 'j', tcell.ModNone)
	screen.InjectKey(tcell.KeyCtrlQ, 'q', tcell.ModCtrl)

	done := make(chan error, 1)
	go func() { done <- a.RunHost(h) }()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after quit")
	}
	if h.Selected() != 1 {
		t.Errorf("selected = %d, want 1", h.Selected())
	}
}

func TestRunWithoutEditor(t *testing.T) {
	var a App
	if err := a.Run(tcell.NewSimulationScreen("UTF-8")); !errors.Is(err, ErrNoDocument) {
		t.Errorf("Run = %v, want ErrNoDocument", err)
	}
}
