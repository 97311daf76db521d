package renderer

import "errors"

// ErrUnknownRenderer is returned by New for an unregistered name.
var ErrUnknownRenderer = errors.New("unknown renderer")
