package config

import (
	"errors"
	"fmt"
)

// ErrFileNotFound indicates an explicitly requested configuration file
// doesn't exist.
var ErrFileNotFound = errors.New("config file not found")

// ValidationError reports an invalid setting.
type ValidationError struct {
	// Path is the dotted setting path, e.g. "history.backend".
	Path string
	// Value is the offending value.
	Value any
	// Message describes the problem.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Path, e.Value, e.Message)
}

// IsValidationError reports whether err contains a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
