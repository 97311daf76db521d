// Package key describes keyboard events and the chord notation used to bind
// them.
//
// A chord is written as modifiers and a key joined by '+':
//
//	Tab
//	Escape
//	Ctrl+Alt+Up
//	Ctrl+Alt+Shift+Down
//	Ctrl+z
//
// Parse turns a chord into an Event; Event.Matches compares a chord with an
// event delivered by the host.
package key
