package lua

import "errors"

// Errors for Lua state operations.
var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrFunctionNotFound is returned when calling an undefined global.
	ErrFunctionNotFound = errors.New("lua function not found")

	// ErrNoEditor is returned by the blockmark module before the plugin is
	// attached to an editor.
	ErrNoEditor = errors.New("plugin is not attached to an editor")
)
