package lua

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/blockmark/internal/editor"
	"github.com/dshills/blockmark/internal/event"
	"github.com/dshills/blockmark/internal/renderer"
)

var tagRenderer = renderer.Func(func(markup string) (string, error) {
	return "<p>" + markup + "</p>", nil
})

func newEditor(t *testing.T, markup string, plugins ...any) *editor.Editor {
	t.Helper()
	e, err := editor.New("test", editor.Options{
		Markup:    markup,
		Renderer:  tagRenderer,
		Plugins:   plugins,
		Dismisser: event.NewDismisser(),
	})
	if err != nil {
		t.Fatalf("editor.New failed: %v", err)
	}
	t.Cleanup(func() { _ = e.Close() })
	return e
}

const recorderScript = `
events = {}
function onPostInit(markup, html)
	table.insert(events, "postInit:" .. markup .. ":" .. html)
end
function onPreStartEditing(b)
	table.insert(events, "start:" .. b.id .. ":" .. b.markup)
end
function onPostStopEditing(b)
	table.insert(events, "stop:" .. b.markup)
end
function onMarkupChange(markup, html)
	table.insert(events, "change:" .. markup)
	last_count = blockmark.block_count()
end
`

func scriptEvents(t *testing.T, p *Plugin) []string {
	t.Helper()
	tbl, ok := p.state.GetGlobal("events").(*lua.LTable)
	if !ok {
		t.Fatal("events table missing")
	}
	var out []string
	tbl.ForEach(func(_, v lua.LValue) {
		out = append(out, v.String())
	})
	return out
}

func TestPluginEvents(t *testing.T) {
	p, err := LoadString("recorder", recorderScript)
	if err != nil {
		t.Fatalf("LoadString failed: %v", err)
	}
	defer p.Close()

	e := newEditor(t, "a", p.Registration())
	b := e.Blocks()[0]
	_ = b.Edit()
	b.SetMarkup("x\n\ny")
	if err := e.HideEditor(); err != nil {
		t.Fatalf("HideEditor failed: %v", err)
	}

	want := []string{
		"postInit:a:<p>a</p>",
		"start:0:a",
		"change:x\n\ny",
		"stop:x",
	}
	got := scriptEvents(t, p)
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("events = %q, want %q", got, want)
	}
	if n := p.state.GetGlobal("last_count"); n != lua.LNumber(2) {
		t.Errorf("block_count during change = %v, want 2", n)
	}
	if p.Name() != "lua:recorder" {
		t.Errorf("Name() = %q", p.Name())
	}
}

func TestPluginGetMarkup(t *testing.T) {
	p, err := LoadString("source", `function onGetMarkup() return "from lua\n\nsecond" end`)
	if err != nil {
		t.Fatalf("LoadString failed: %v", err)
	}
	defer p.Close()

	if _, ok := p.Registration().(editor.MarkupGetter); !ok {
		t.Fatal("Registration should supply markup")
	}
	e := newEditor(t, "ignored", p.Registration())
	if got := e.FullMarkup(); got != "from lua\n\nsecond" {
		t.Errorf("FullMarkup = %q", got)
	}

	plain, _ := LoadString("plain", `x = 1`)
	defer plain.Close()
	if _, ok := plain.Registration().(editor.MarkupGetter); ok {
		t.Error("a script without onGetMarkup should not supply markup")
	}
}

func TestPluginPreInitReplacesMarkup(t *testing.T) {
	p, err := LoadString("pre", `
		function onPreInit(container, markup)
			return container .. ":" .. markup
		end
	`)
	if err != nil {
		t.Fatalf("LoadString failed: %v", err)
	}
	defer p.Close()

	e := newEditor(t, "m", p.Registration())
	if got := e.FullMarkup(); got != "test:m" {
		t.Errorf("FullMarkup = %q, want test:m", got)
	}
}

func TestPluginEditorAPI(t *testing.T) {
	p, err := LoadString("api", `
		function onPostStartEditing(b)
			blockmark.hide_editor()
		end
		function onPostInit(markup)
			blockmark.set_markup(markup .. "\n\nadded")
		end
	`)
	if err != nil {
		t.Fatalf("LoadString failed: %v", err)
	}
	defer p.Close()

	e := newEditor(t, "start", p.Registration())
	if e.Len() != 2 {
		t.Fatalf("Len = %d, want 2", e.Len())
	}

	if err := e.Blocks()[0].Edit(); err != nil {
		t.Fatalf("Edit failed: %v", err)
	}
	if e.Active() != nil {
		t.Error("script should have closed the session")
	}
}

func TestPluginErrors(t *testing.T) {
	if _, err := LoadString("bad", `this is not lua`); err == nil {
		t.Error("LoadString should fail on a syntax error")
	}
	if _, err := LoadString("early", `blockmark.full_markup()`); err == nil {
		t.Error("editor calls before attachment should fail")
	}

	p, err := LoadString("failing", `function onMarkupChange() error("nope") end`)
	if err != nil {
		t.Fatalf("LoadString failed: %v", err)
	}
	defer p.Close()

	e := newEditor(t, "a", p.Registration())
	b := e.Blocks()[0]
	_ = b.Edit()
	b.SetMarkup("b")
	err = e.HideEditor()
	if err == nil || !strings.Contains(err.Error(), "nope") || !event.IsHandlerError(err) {
		t.Errorf("HideEditor error = %v, want handler error containing nope", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "greeter.lua")
	if err := os.WriteFile(path, []byte(`function onGetMarkup() return "hi" end`), 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	defer p.Close()

	if p.Name() != "lua:greeter" {
		t.Errorf("Name() = %q, want lua:greeter", p.Name())
	}
	e := newEditor(t, "", p.Registration())
	if e.FullMarkup() != "hi" {
		t.Errorf("FullMarkup = %q, want hi", e.FullMarkup())
	}

	dir := filepath.Join(t.TempDir(), "toc")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	entry := filepath.Join(dir, "init.lua")
	if err := os.WriteFile(entry, []byte(`x = 1`), 0o644); err != nil {
		t.Fatal(err)
	}
	dp, err := Load(entry)
	if err != nil {
		t.Fatalf("Load of a directory plugin failed: %v", err)
	}
	defer dp.Close()
	if dp.Name() != "lua:toc" {
		t.Errorf("Name() = %q, want lua:toc", dp.Name())
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.lua")); err == nil {
		t.Error("Load of a missing file should fail")
	}
}
