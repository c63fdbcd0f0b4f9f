package services

import (
	"errors"
	"fmt"
)

var (
	// ErrCaseNotFound is returned when an operation addresses a case id that
	// does not exist. No state change occurs.
	ErrCaseNotFound = errors.New("case not found")

	// ErrTaskNotFound is returned when a colleague-task id does not exist on
	// the addressed case.
	ErrTaskNotFound = errors.New("task not found")
)

// ValidationError rejects a malformed record before any mutation is
// committed. The reason is precise enough to surface to the caller.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func validationErrorf(format string, args ...interface{}) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// IsValidationError reports whether err is a record validation failure.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
