package utils

import (
	"errors"
	"fmt"
)

// ErrPrecondition marks a violated caller precondition (bad input that is never
// silently coerced). Test with errors.Is.
var ErrPrecondition = errors.New("precondition violation")

// Preconditionf returns an error wrapping ErrPrecondition
func Preconditionf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrPrecondition, fmt.Sprintf(format, args...))
}

// AssertionError is the panic value raised by Assert. It signals an internal
// logic error, not a problem with user data.
type AssertionError struct {
	Msg string
}

func (e *AssertionError) Error() string {
	return "assertion failure: " + e.Msg
}

// Assert panics with an *AssertionError when cond is false
func Assert(cond bool, format string, args ...any) {
	if !cond {
		panic(&AssertionError{Msg: fmt.Sprintf(format, args...)})
	}
}
