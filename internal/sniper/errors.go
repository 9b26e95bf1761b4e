package sniper

import (
	"errors"
	"fmt"
)

// ErrInternal is wrapped by every error caused by a broken invariant in a
// collaborator rather than by the input.
var ErrInternal = errors.New("sniper: internal error")

// InvariantError describes the event a pass could not handle.
type InvariantError struct {
	Msg string
}

func (e *InvariantError) Error() string {
	return "sniper: internal error: " + e.Msg
}

func (e *InvariantError) Unwrap() error {
	return ErrInternal
}

// invariant aborts the pass; Printer recovers it into an error.
func invariant(format string, args ...any) {
	panic(&InvariantError{Msg: fmt.Sprintf(format, args...)})
}
