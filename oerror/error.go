package oerror

import (
	"errors"
	"fmt"
)

// ClimbError is the error type returned by the fallible surfaces of the module.
type ClimbError struct {
	Err     string
	wrapped error
}

// New formats a new ClimbError. A %w verb keeps the wrapped error reachable through errors.Is
// and errors.As.
func New(format string, args ...any) error {
	err := fmt.Errorf(format, args...)
	return &ClimbError{Err: err.Error(), wrapped: errors.Unwrap(err)}
}

func (e *ClimbError) Error() string {
	return e.Err
}

func (e *ClimbError) Unwrap() error {
	return e.wrapped
}
