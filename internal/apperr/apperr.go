// Package apperr defines the error type shared by tomato's packages
package apperr

import (
	"errors"
	"fmt"
)

// Error is a sentinel-style application error. Message may contain fmt verbs
// which are filled in by Fmt.
type Error struct {
	Cause    error
	Message  string
	sentinel *Error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}

	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is the sentinel this error was derived from.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}

	return e == t || (e.sentinel != nil && e.sentinel == t)
}

func (e *Error) root() *Error {
	if e.sentinel != nil {
		return e.sentinel
	}

	return e
}

// Fmt returns a copy of the error with its message formatted using args.
func (e *Error) Fmt(args ...any) *Error {
	return &Error{
		Message:  fmt.Sprintf(e.Message, args...),
		Cause:    e.Cause,
		sentinel: e.root(),
	}
}

// Wrap returns a copy of the error that carries err as its cause.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		Message:  e.Message,
		Cause:    err,
		sentinel: e.root(),
	}
}
