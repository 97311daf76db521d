package history

import "errors"

// Common errors for history operations.
var (
	// ErrNoHistory is returned by Undo and Redo before any entry exists.
	ErrNoHistory = errors.New("no history")

	// ErrNotFound is returned by KV.Get for a missing key.
	ErrNotFound = errors.New("key not found")

	// ErrMalformedRecord is returned when a persisted record cannot be decoded.
	ErrMalformedRecord = errors.New("malformed history record")
)
