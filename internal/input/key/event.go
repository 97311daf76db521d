package key

import (
	"strings"
	"unicode"
)

// Event represents a single key press.
type Event struct {
	// Key identifies the key pressed.
	Key Key

	// Rune is the character for KeyRune events.
	Rune rune

	// Modifiers contains the active modifier keys.
	Modifiers Modifier
}

// NewRuneEvent creates a key event for a character.
func NewRuneEvent(r rune, mods Modifier) Event {
	return Event{Key: KeyRune, Rune: r, Modifiers: mods}
}

// NewSpecialEvent creates a key event for a special key.
func NewSpecialEvent(k Key, mods Modifier) Event {
	return Event{Key: k, Modifiers: mods}
}

// IsChar returns true if the event types a printable character without Ctrl,
// Alt or Meta held.
func (e Event) IsChar() bool {
	return e.Key == KeyRune && unicode.IsPrint(e.Rune) &&
		!e.Modifiers.Has(ModCtrl|ModAlt|ModMeta)
}

// Matches reports whether e, read as a chord, matches the event ev. Keys
// and modifiers must be equal; characters compare case-insensitively when
// Ctrl or Alt is part of the chord, since terminals report those
// inconsistently.
func (e Event) Matches(ev Event) bool {
	if e.Key != ev.Key {
		return false
	}
	if e.Key != KeyRune {
		return e.Modifiers == ev.Modifiers
	}

	if e.Modifiers.Has(ModCtrl | ModAlt) {
		return unicode.ToLower(e.Rune) == unicode.ToLower(ev.Rune) &&
			e.Modifiers&^ModShift == ev.Modifiers&^ModShift
	}
	return e.Rune == ev.Rune && e.Modifiers&^ModShift == ev.Modifiers&^ModShift
}

// String returns the chord notation accepted by Parse.
func (e Event) String() string {
	var name string
	switch e.Key {
	case KeyRune:
		if e.Rune == ' ' {
			name = "Space"
		} else {
			name = string(e.Rune)
		}
	default:
		name = e.Key.String()
	}

	mods := e.Modifiers
	if e.Key == KeyRune && !mods.Has(ModCtrl|ModAlt|ModMeta) {
		mods &^= ModShift
	}
	if mods == ModNone {
		return name
	}
	return strings.Join([]string{mods.String(), name}, "+")
}
