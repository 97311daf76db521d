package editor

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/blockmark/internal/event"
	"github.com/dshills/blockmark/internal/input/key"
)

func press(t *testing.T, e *Editor, chord string) bool {
	t.Helper()
	handled, err := e.HandleKey(key.MustParse(chord))
	if err != nil {
		t.Fatalf("HandleKey(%s) failed: %v", chord, err)
	}
	return handled
}

func TestAppendEmptyBlock(t *testing.T) {
	rec := &recorder{}
	e := newTestEditor(t, "B", rec)
	b := e.Blocks()[0]
	_ = b.Edit()

	if !press(t, e, "Ctrl+Alt+Enter") {
		t.Fatal("append-empty-block not handled")
	}

	if diff := cmp.Diff([]string{"B", ""}, markups(e)); diff != "" {
		t.Errorf("blocks mismatch (-want +got):\n%s", diff)
	}
	if e.Active() != e.Blocks()[1] {
		t.Error("focus should move to the new block")
	}
	if b.Markup() != "B" {
		t.Errorf("original block changed: %q", b.Markup())
	}
	if len(rec.changes) != 0 {
		t.Errorf("unexpected markupChange: %q", rec.changes)
	}

	// Leaving the new block empty removes it again.
	_ = e.HideEditor()
	if e.Len() != 1 {
		t.Errorf("Len = %d, want 1", e.Len())
	}
}

func TestTabbing(t *testing.T) {
	e := newTestEditor(t, "x")
	b := e.Blocks()[0]
	_ = b.Edit()

	press(t, e, "Tab")
	if b.Markup() != "    x" || b.Cursor() != 4 {
		t.Errorf("after tab: %q cursor %d", b.Markup(), b.Cursor())
	}
	if !b.Editing() {
		t.Error("tabbing should keep the session open")
	}
}

func TestEscape(t *testing.T) {
	e := newTestEditor(t, "x")
	_ = e.Blocks()[0].Edit()

	press(t, e, "Escape")
	if e.Active() != nil {
		t.Error("escape should end the session")
	}
}

func TestPlaceBeforeAndAfter(t *testing.T) {
	rec := &recorder{}
	e := newTestEditor(t, "a\n\nb\n\nc", rec)
	blocks := e.Blocks()

	_ = blocks[1].Edit()
	press(t, e, "Ctrl+Alt+Shift+Up")
	if diff := cmp.Diff([]string{"b", "a", "c"}, markups(e)); diff != "" {
		t.Errorf("after place-before (-want +got):\n%s", diff)
	}
	if e.Active() != blocks[0] {
		t.Error("focus should follow the moved text")
	}
	if diff := cmp.Diff([]string{"b\n\na\n\nc"}, rec.changes); diff != "" {
		t.Errorf("markupChange after place-before (-want +got):\n%s", diff)
	}

	press(t, e, "Ctrl+Alt+Shift+Down")
	if diff := cmp.Diff([]string{"a", "b", "c"}, markups(e)); diff != "" {
		t.Errorf("after place-after (-want +got):\n%s", diff)
	}
	if e.Active() != blocks[1] {
		t.Error("focus should follow the moved text")
	}

	_ = blocks[2].Edit()
	press(t, e, "Ctrl+Alt+Shift+Down")
	if e.Active() != blocks[2] || blocks[2].Markup() != "c" {
		t.Error("place-after on the last block should do nothing")
	}
	if err := e.HideEditor(); err != nil {
		t.Fatalf("HideEditor failed: %v", err)
	}

	// Sessions opened on moved-to blocks and closed unedited add nothing.
	want := []string{"b\n\na\n\nc", "a\n\nb\n\nc"}
	if diff := cmp.Diff(want, rec.changes); diff != "" {
		t.Errorf("markupChange events (-want +got):\n%s", diff)
	}
}

func TestPlaceBeforeThenHide(t *testing.T) {
	rec := &recorder{}
	e := newTestEditor(t, "a\n\nb\n\nc", rec)

	_ = e.Blocks()[1].Edit()
	press(t, e, "Ctrl+Alt+Shift+Up")
	if err := e.HideEditor(); err != nil {
		t.Fatalf("HideEditor failed: %v", err)
	}
	if diff := cmp.Diff([]string{"b\n\na\n\nc"}, rec.changes); diff != "" {
		t.Errorf("markupChange events (-want +got):\n%s", diff)
	}
}

func TestMoveUpAndDown(t *testing.T) {
	rec := &recorder{}
	e := newTestEditor(t, "a\n\nb", rec)
	blocks := e.Blocks()

	_ = blocks[0].Edit()
	press(t, e, "Ctrl+Alt+Up")
	if e.Active() != blocks[0] {
		t.Error("move-up on the first block should do nothing")
	}
	press(t, e, "Ctrl+Alt+Down")
	if e.Active() != blocks[1] {
		t.Error("move-down should focus the next block")
	}
	press(t, e, "Ctrl+Alt+Up")
	if e.Active() != blocks[0] {
		t.Error("move-up should focus the previous block")
	}
	if diff := cmp.Diff([]string{"a", "b"}, markups(e)); diff != "" {
		t.Errorf("moving focus changed markup (-want +got):\n%s", diff)
	}
	if len(rec.changes) != 0 {
		t.Errorf("unexpected markupChange: %q", rec.changes)
	}
}

func TestRemoveBlock(t *testing.T) {
	tests := []struct {
		name       string
		markup     string
		edit       int
		want       []string
		wantActive string
	}{
		{"middle focuses previous", "a\n\nb\n\nc", 1, []string{"a", "c"}, "a"},
		{"first focuses next", "a\n\nb", 0, []string{"b"}, "b"},
		{"only block hides editor", "a", 0, nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEditor(t, tt.markup)
			_ = e.Blocks()[tt.edit].Edit()

			press(t, e, "Ctrl+Alt+Backspace")

			if diff := cmp.Diff(tt.want, markups(e)); diff != "" {
				t.Errorf("blocks mismatch (-want +got):\n%s", diff)
			}
			var active string
			if b := e.Active(); b != nil {
				active = b.Markup()
			}
			if active != tt.wantActive {
				t.Errorf("active = %q, want %q", active, tt.wantActive)
			}
		})
	}
}

func TestHandleKeyWithoutSession(t *testing.T) {
	e := newTestEditor(t, "a")
	handled, err := e.HandleKey(key.MustParse("Tab"))
	if handled || err != nil {
		t.Errorf("HandleKey = %v, %v; want false, nil", handled, err)
	}

	_ = e.Blocks()[0].Edit()
	if press(t, e, "Ctrl+q") {
		t.Error("unbound chord should not be handled")
	}
}

func TestHotKeyPriority(t *testing.T) {
	var fired []string
	record := func(name string) Action {
		return func(*Editor, *Block) error {
			fired = append(fired, name)
			return nil
		}
	}
	e, err := New("c", Options{
		Markup:    "a",
		Renderer:  tagRenderer,
		Dismisser: event.NewDismisser(),
		HotKeys: []HotKey{
			{Name: "first", Chord: key.MustParse("F2"), Do: record("first")},
			{Name: "second", Chord: key.MustParse("F2"), Do: record("second")},
		},
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer e.Close()

	_ = e.Blocks()[0].Edit()
	press(t, e, "F2")
	if diff := cmp.Diff([]string{"first"}, fired); diff != "" {
		t.Errorf("fired (-want +got):\n%s", diff)
	}
}

func TestHotKeyError(t *testing.T) {
	boom := errors.New("boom")
	e, err := New("c", Options{
		Markup:    "a",
		Renderer:  tagRenderer,
		Dismisser: event.NewDismisser(),
		HotKeys: []HotKey{{
			Name:  "fail",
			Match: func(ev key.Event) bool { return ev.Key == key.KeyF9 },
			Do:    func(*Editor, *Block) error { return boom },
		}},
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer e.Close()

	_ = e.Blocks()[0].Edit()
	handled, err := e.HandleKey(key.NewSpecialEvent(key.KeyF9, key.ModNone))
	if !handled || !errors.Is(err, boom) {
		t.Fatalf("HandleKey = %v, %v", handled, err)
	}
	var he *event.HandlerError
	if !errors.As(err, &he) || he.Plugin != "fail" || he.Event != event.HotKey {
		t.Errorf("unexpected error: %#v", err)
	}
}

func TestBind(t *testing.T) {
	hotkeys, err := Bind(DefaultHotKeys(), map[string]string{
		HotKeyMoveUp:      "Alt+k",
		HotKeyRemoveBlock: "",
	})
	if err != nil {
		t.Fatalf("Bind failed: %v", err)
	}

	var names []string
	for _, h := range hotkeys {
		names = append(names, h.Name)
		if h.Name == HotKeyMoveUp && !h.Matches(key.NewRuneEvent('k', key.ModAlt)) {
			t.Error("move-up should be rebound to Alt+k")
		}
	}
	want := []string{
		HotKeyTabbing, HotKeyEscape, HotKeyPlaceBefore, HotKeyPlaceAfter,
		HotKeyMoveUp, HotKeyMoveDown, HotKeyAppendEmptyBlock,
	}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("hotkeys (-want +got):\n%s", diff)
	}

	if DefaultHotKeys()[4].Chord != key.MustParse("Ctrl+Alt+Up") {
		t.Error("Bind should not modify its input")
	}

	if _, err := Bind(DefaultHotKeys(), map[string]string{"nope": "Tab"}); !errors.Is(err, ErrUnknownHotKey) {
		t.Errorf("unknown hotkey: err = %v", err)
	}
	if _, err := Bind(DefaultHotKeys(), map[string]string{HotKeyEscape: "Hyper+x"}); !errors.Is(err, key.ErrInvalidSpec) {
		t.Errorf("bad chord: err = %v", err)
	}
}
