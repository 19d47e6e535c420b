package model

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyText is returned when a task's text is empty after trimming.
	ErrEmptyText = errors.New("task text cannot be empty")

	// ErrTextTooLong is returned when a task's text exceeds MaxTextLength.
	ErrTextTooLong = errors.New("task text exceeds maximum length")

	// ErrInvalidPriority is returned for an unknown priority value.
	ErrInvalidPriority = errors.New("invalid priority")

	// ErrInvalidDate is returned when a due date is not a real calendar
	// date in YYYY-MM-DD form.
	ErrInvalidDate = errors.New("invalid date, want YYYY-MM-DD")
)

// ValidationError reports which field of a task failed validation. It
// wraps one of the sentinel errors above so callers can match with
// errors.Is.
type ValidationError struct {
	Field string
	Value string
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("%s: %v (got %q)", e.Field, e.Err, e.Value)
	}
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }
