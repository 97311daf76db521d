package app

import (
	"errors"
	"fmt"
)

// ErrNoDocument indicates an operation needs an initialized editor.
var ErrNoDocument = errors.New("no document")

// InitError reports a component that failed to start.
type InitError struct {
	Component string
	Err       error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("init %s: %v", e.Component, e.Err)
}

func (e *InitError) Unwrap() error {
	return e.Err
}
