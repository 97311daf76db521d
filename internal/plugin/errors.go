package plugin

import "errors"

// Plugin errors.
var (
	// ErrNoEditor is returned when a plugin acts before SetEditor.
	ErrNoEditor = errors.New("plugin is not attached to an editor")

	// ErrUnsavedChanges is returned by ContentGuard.Check.
	ErrUnsavedChanges = errors.New("there are unsaved changes")

	// ErrUnexpectedStatus is returned when an HTTP endpoint answers with a
	// non-2xx status.
	ErrUnexpectedStatus = errors.New("unexpected HTTP status")

	// ErrNoMatch is returned when a template selector matches nothing.
	ErrNoMatch = errors.New("selector matched no element")

	// ErrPluginNotFound is returned when a named script cannot be located.
	ErrPluginNotFound = errors.New("plugin not found")
)
