package plugin

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/blockmark/internal/engine/history"
	"github.com/dshills/blockmark/internal/input/key"
)

func TestUndoRedo(t *testing.T) {
	u := NewUndoRedo(nil)
	e := newEditor(t, "a", u)

	edit(t, e, 0, "b")
	edit(t, e, 0, "c")

	if err := u.Undo(); err != nil {
		t.Fatalf("Undo failed: %v", err)
	}
	if got := e.FullMarkup(); got != "b" {
		t.Errorf("after undo: %q, want b", got)
	}
	_ = u.Undo()
	_ = u.Undo()
	if got := e.FullMarkup(); got != "a" {
		t.Errorf("after repeated undo: %q, want a", got)
	}
	_ = u.Redo()
	if got := e.FullMarkup(); got != "b" {
		t.Errorf("after redo: %q, want b", got)
	}

	// A new change discards the redo tail.
	edit(t, e, 0, "d")
	_ = u.Redo()
	if got := e.FullMarkup(); got != "d" {
		t.Errorf("redo at tail: %q, want d", got)
	}

	mem := u.Store().(*history.Memory)
	want := history.Snapshot{Pointer: 3, Entries: []string{"a", "b", "d"}}
	if diff := cmp.Diff(want, mem.Snapshot()); diff != "" {
		t.Errorf("history mismatch (-want +got):\n%s", diff)
	}
}

func TestUndoRecordsOpenSession(t *testing.T) {
	u := NewUndoRedo(nil)
	e := newEditor(t, "a", u)

	b := e.Blocks()[0]
	_ = b.Edit()
	b.SetMarkup("pending")

	if err := u.Undo(); err != nil {
		t.Fatalf("Undo failed: %v", err)
	}
	if got := e.FullMarkup(); got != "a" {
		t.Errorf("after undo: %q, want a", got)
	}
	_ = u.Redo()
	if got := e.FullMarkup(); got != "pending" {
		t.Errorf("after redo: %q, want pending", got)
	}
}

func TestUndoAfterPlaceBefore(t *testing.T) {
	u := NewUndoRedo(nil)
	e := newEditor(t, "a\n\nb\n\nc", u)

	if err := e.Blocks()[1].Edit(); err != nil {
		t.Fatalf("Edit failed: %v", err)
	}
	if _, err := e.HandleKey(key.MustParse("Ctrl+Alt+Shift+Up")); err != nil {
		t.Fatalf("HandleKey failed: %v", err)
	}
	if err := e.HideEditor(); err != nil {
		t.Fatalf("HideEditor failed: %v", err)
	}

	mem := u.Store().(*history.Memory)
	want := history.Snapshot{Pointer: 2, Entries: []string{"a\n\nb\n\nc", "b\n\na\n\nc"}}
	if diff := cmp.Diff(want, mem.Snapshot()); diff != "" {
		t.Errorf("history mismatch (-want +got):\n%s", diff)
	}

	if err := u.Undo(); err != nil {
		t.Fatalf("Undo failed: %v", err)
	}
	if got := e.FullMarkup(); got != "a\n\nb\n\nc" {
		t.Errorf("after undo: %q", got)
	}
}

func TestUndoRedoResumesDurableHistory(t *testing.T) {
	kv := history.NewMemKV()
	first := NewUndoRedo(history.NewDurable(kv))
	e := newEditor(t, "start", first)
	edit(t, e, 0, "later")
	_ = e.Close()

	second := NewUndoRedo(history.NewDurable(kv))
	resumed := newEditor(t, "start", second)
	if got := resumed.FullMarkup(); got != "later" {
		t.Errorf("resumed markup = %q, want later", got)
	}
	if err := second.Undo(); err != nil {
		t.Fatalf("Undo failed: %v", err)
	}
	if got := resumed.FullMarkup(); got != "start" {
		t.Errorf("after undo = %q, want start", got)
	}
}

func TestUndoRedoHotKeys(t *testing.T) {
	u := NewUndoRedo(nil)
	hotkeys := u.HotKeys(key.MustParse("Ctrl+z"), key.MustParse("Ctrl+y"))
	e := newEditor(t, "a", u)
	edit(t, e, 0, "b")

	_ = e.Blocks()[0].Edit()
	for _, h := range hotkeys {
		if h.Name == "undo" && h.Matches(key.NewRuneEvent('z', key.ModCtrl)) {
			if err := h.Do(e, e.Active()); err != nil {
				t.Fatalf("undo hotkey failed: %v", err)
			}
		}
	}
	if got := e.FullMarkup(); got != "a" {
		t.Errorf("after undo hotkey: %q, want a", got)
	}
}

func TestUndoRedoWithoutEditor(t *testing.T) {
	u := NewUndoRedo(nil)
	if err := u.Undo(); !errors.Is(err, ErrNoEditor) {
		t.Errorf("Undo without editor: err = %v, want ErrNoEditor", err)
	}
}
