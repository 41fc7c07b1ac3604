// Package validation holds the input checks shared by services and
// handlers. Failures are caller-fixable by definition and map to 400s;
// they are never retried.
package validation

import (
	"errors"
	"fmt"
)

// Error marks malformed input (out-of-range coordinate, bad rating…).
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func errorf(format string, args ...any) error {
	return &Error{Message: fmt.Sprintf(format, args...)}
}

// IsValidationError reports whether err is an input problem rather than
// an infrastructure failure.
func IsValidationError(err error) bool {
	var ve *Error
	return errors.As(err, &ve)
}
