package editor

import (
	"fmt"
	"slices"

	"github.com/dshills/blockmark/internal/event"
	"github.com/dshills/blockmark/internal/input/key"
)

// Indentation is inserted by the tabbing hotkey.
const Indentation = "    "

// Action runs a hotkey against the block being edited.
type Action func(e *Editor, b *Block) error

// HotKey binds a chord to an action.
type HotKey struct {
	// Name identifies the hotkey in configuration.
	Name string

	// Chord is the key combination that triggers the action.
	Chord key.Event

	// Match, when set, replaces chord matching.
	Match func(ev key.Event) bool

	// Do runs the action.
	Do Action
}

// Matches reports whether ev triggers the hotkey.
func (h HotKey) Matches(ev key.Event) bool {
	if h.Match != nil {
		return h.Match(ev)
	}
	return h.Chord.Matches(ev)
}

// Standard hotkey names.
const (
	HotKeyTabbing          = "tabbing"
	HotKeyEscape           = "escape"
	HotKeyPlaceBefore      = "place-before"
	HotKeyPlaceAfter       = "place-after"
	HotKeyMoveUp           = "move-up"
	HotKeyMoveDown         = "move-down"
	HotKeyAppendEmptyBlock = "append-empty-block"
	HotKeyRemoveBlock      = "remove-block"
)

// DefaultHotKeys returns the standard hotkeys in priority order. The
// place-before and place-after chords are tested before move-up and
// move-down, whose chords they extend with Shift.
func DefaultHotKeys() []HotKey {
	return []HotKey{
		{Name: HotKeyTabbing, Chord: key.MustParse("Tab"), Do: Tabbing},
		{Name: HotKeyEscape, Chord: key.MustParse("Escape"), Do: Escape},
		{Name: HotKeyPlaceBefore, Chord: key.MustParse("Ctrl+Alt+Shift+Up"), Do: PlaceBefore},
		{Name: HotKeyPlaceAfter, Chord: key.MustParse("Ctrl+Alt+Shift+Down"), Do: PlaceAfter},
		{Name: HotKeyMoveUp, Chord: key.MustParse("Ctrl+Alt+Up"), Do: MoveUp},
		{Name: HotKeyMoveDown, Chord: key.MustParse("Ctrl+Alt+Down"), Do: MoveDown},
		{Name: HotKeyAppendEmptyBlock, Chord: key.MustParse("Ctrl+Alt+Enter"), Do: AppendEmptyBlock},
		{Name: HotKeyRemoveBlock, Chord: key.MustParse("Ctrl+Alt+Backspace"), Do: RemoveBlock},
	}
}

// Bind returns a copy of hotkeys with chords replaced from bindings, keyed
// by hotkey name. An empty chord removes the hotkey.
func Bind(hotkeys []HotKey, bindings map[string]string) ([]HotKey, error) {
	out := slices.Clone(hotkeys)
	remove := make(map[string]bool)

	for name, chord := range bindings {
		i := slices.IndexFunc(out, func(h HotKey) bool { return h.Name == name })
		if i < 0 {
			return nil, fmt.Errorf("%w: %q", ErrUnknownHotKey, name)
		}
		if chord == "" {
			remove[name] = true
			continue
		}
		ev, err := key.Parse(chord)
		if err != nil {
			return nil, fmt.Errorf("hotkey %s: %w", name, err)
		}
		out[i].Chord = ev
		out[i].Match = nil
	}

	return slices.DeleteFunc(out, func(h HotKey) bool { return remove[h.Name] }), nil
}

// HandleKey runs the first hotkey matching ev against the block being
// edited. It reports whether a hotkey handled the event; nothing is handled
// while no block is being edited.
func (e *Editor) HandleKey(ev key.Event) (bool, error) {
	b := e.active
	if b == nil || e.closed {
		return false, nil
	}
	for i, h := range e.hotkeys {
		if !h.Matches(ev) {
			continue
		}
		e.log.Debug("hotkey %s on %v", h.Name, b.id)
		if err := h.Do(e, b); err != nil {
			return true, &event.HandlerError{Event: event.HotKey, Plugin: h.Name, Index: i, Err: err}
		}
		return true, nil
	}
	return false, nil
}

// Tabbing inserts Indentation at the cursor.
func Tabbing(_ *Editor, b *Block) error {
	b.InsertAtCursor(Indentation)
	return nil
}

// Escape ends the edit session.
func Escape(e *Editor, _ *Block) error {
	return e.HideEditor()
}

// PlaceBefore swaps b's markup with the previous block and moves editing
// there.
func PlaceBefore(_ *Editor, b *Block) error {
	return swapWith(b, b.Prev())
}

// PlaceAfter swaps b's markup with the next block and moves editing there.
func PlaceAfter(_ *Editor, b *Block) error {
	return swapWith(b, b.Next())
}

func swapWith(b, other *Block) error {
	if other == nil {
		return nil
	}
	mine, theirs := b.Markup(), other.Markup()
	b.SetMarkup(theirs)
	other.SetMarkup(mine)
	return other.Edit()
}

// MoveUp moves editing to the previous block.
func MoveUp(_ *Editor, b *Block) error {
	if prev := b.Prev(); prev != nil {
		return prev.Edit()
	}
	return nil
}

// MoveDown moves editing to the next block.
func MoveDown(_ *Editor, b *Block) error {
	if next := b.Next(); next != nil {
		return next.Edit()
	}
	return nil
}

// AppendEmptyBlock inserts an empty block after b and edits it.
func AppendEmptyBlock(e *Editor, b *Block) error {
	nb, err := e.CreateBlock("", "")
	if err != nil {
		return err
	}
	if err := e.InsertAfter(b, nb); err != nil {
		return err
	}
	return nb.Edit()
}

// RemoveBlock clears b and moves editing to the previous block, else the
// next, else ends the session. Ending b's session removes it.
func RemoveBlock(e *Editor, b *Block) error {
	b.SetMarkup("")
	if prev := b.Prev(); prev != nil {
		return prev.Edit()
	}
	if next := b.Next(); next != nil {
		return next.Edit()
	}
	return e.HideEditor()
}
