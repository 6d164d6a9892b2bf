package core

import (
	"errors"
	"fmt"
)

// DefaultErrorStatus is the status carried by a RamError when none is given.
// It mirrors HTTP "Bad Request" since every engine failure is an input problem.
const DefaultErrorStatus = 400

// RamError is the single domain error raised by the engine.  Message is a
// complete sentence that can be shown to a user as is.
type RamError struct {
	Message string
	Status  int
}

func (e *RamError) Error() string {
	return e.Message
}

// NewRamError creates a RamError with the default status.
func NewRamError(message string) *RamError {
	return &RamError{Message: message, Status: DefaultErrorStatus}
}

// NewRamErrorf is the formatted variant of NewRamError.
func NewRamErrorf(format string, args ...any) *RamError {
	return NewRamError(fmt.Sprintf(format, args...))
}

// WithStatus returns a copy of the error carrying a different status.
func (e *RamError) WithStatus(status int) *RamError {
	return &RamError{Message: e.Message, Status: status}
}

// AsRamError unwraps err into a *RamError if it (or anything it wraps) is one.
func AsRamError(err error) (*RamError, bool) {
	var re *RamError
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}

// IsRamError reports whether err is (or wraps) a domain error.
func IsRamError(err error) bool {
	_, ok := AsRamError(err)
	return ok
}
