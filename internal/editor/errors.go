package editor

import "errors"

// Sentinel errors for editor operations.
var (
	// ErrBlockNotFound is returned when a block is not part of the document.
	ErrBlockNotFound = errors.New("block not found")

	// ErrBlockAttached is returned when inserting a block that is already
	// part of the document.
	ErrBlockAttached = errors.New("block already attached")

	// ErrForeignBlock is returned when a block created by another editor is
	// passed in.
	ErrForeignBlock = errors.New("block belongs to another editor")

	// ErrClosed is returned by operations on a closed editor.
	ErrClosed = errors.New("editor is closed")

	// ErrUnknownHotKey is returned when binding a chord to an unknown hotkey.
	ErrUnknownHotKey = errors.New("unknown hotkey")
)
