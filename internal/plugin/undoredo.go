package plugin

import (
	"github.com/dshills/blockmark/internal/editor"
	"github.com/dshills/blockmark/internal/engine/history"
	"github.com/dshills/blockmark/internal/input/key"
)

// UndoRedo keeps a history of full-document snapshots.
//
// On postInit the store is initialized with the loaded markup; a store that
// already holds entries replaces the document with its current entry. Every
// markupChange is pushed. Undo and Redo replace the document with the
// selected snapshot.
type UndoRedo struct {
	store  history.Store
	editor *editor.Editor
}

// NewUndoRedo creates the plugin over store. A nil store gets an in-memory
// history with the default bound.
func NewUndoRedo(store history.Store) *UndoRedo {
	if store == nil {
		store = history.NewMemory(history.DefaultMaxEntries)
	}
	return &UndoRedo{store: store}
}

// Name implements event.Named.
func (*UndoRedo) Name() string { return "undo-redo" }

// Store returns the underlying history.
func (u *UndoRedo) Store() history.Store {
	return u.store
}

// SetEditor implements editor.EditorSetter.
func (u *UndoRedo) SetEditor(e *editor.Editor) {
	u.editor = e
}

// OnPostInit implements editor.PostIniter.
func (u *UndoRedo) OnPostInit(fullMarkup, _ string) error {
	markup, err := u.store.Init(fullMarkup)
	if err != nil {
		return err
	}
	if markup == fullMarkup || u.editor == nil {
		return nil
	}
	return u.editor.SetMarkup(markup)
}

// OnMarkupChange implements editor.MarkupChanger.
func (u *UndoRedo) OnMarkupChange(fullMarkup, _ string) error {
	return u.store.Push(fullMarkup)
}

// Undo restores the previous snapshot. An open edit session is ended first
// so its change is recorded before stepping back.
func (u *UndoRedo) Undo() error {
	return u.step(u.store.Undo)
}

// Redo restores the next snapshot.
func (u *UndoRedo) Redo() error {
	return u.step(u.store.Redo)
}

func (u *UndoRedo) step(move func() (string, error)) error {
	if u.editor == nil {
		return ErrNoEditor
	}
	if err := u.editor.HideEditor(); err != nil {
		return err
	}
	markup, err := move()
	if err != nil {
		return err
	}
	return u.editor.SetMarkup(markup)
}

// HotKeys returns undo and redo hotkeys bound to the given chords.
func (u *UndoRedo) HotKeys(undo, redo key.Event) []editor.HotKey {
	return []editor.HotKey{
		{Name: "undo", Chord: undo, Do: func(*editor.Editor, *editor.Block) error { return u.Undo() }},
		{Name: "redo", Chord: redo, Do: func(*editor.Editor, *editor.Block) error { return u.Redo() }},
	}
}
