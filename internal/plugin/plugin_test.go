package plugin

import (
	"testing"

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

// edit replaces the markup of block i in one edit session.
func edit(t *testing.T, e *editor.Editor, i int, markup string) {
	t.Helper()
	b := e.Blocks()[i]
	if err := b.Edit(); err != nil {
		t.Fatalf("Edit failed: %v", err)
	}
	b.SetMarkup(markup)
	if err := e.HideEditor(); err != nil {
		t.Fatalf("HideEditor failed: %v", err)
	}
}
