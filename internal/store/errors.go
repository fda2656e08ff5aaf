package store

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is returned when an entry is missing a required field.
	ErrValidation = errors.New("invalid entry")
	// ErrIndexOutOfRange is returned for a position outside [0, Len()).
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrNotFound is returned when no entry carries the requested ID.
	ErrNotFound = errors.New("entry not found")
	// ErrCorruptState is returned when the data file exists but cannot be parsed.
	ErrCorruptState = errors.New("corrupt state file")
)

// CorruptStateError describes a data file that could not be decoded.
type CorruptStateError struct {
	Path string
	Err  error
}

func (e *CorruptStateError) Error() string {
	return fmt.Sprintf("%s %s: %v", ErrCorruptState, e.Path, e.Err)
}

func (e *CorruptStateError) Unwrap() []error {
	return []error{ErrCorruptState, e.Err}
}

func indexError(index, length int) error {
	return fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, index, length)
}
