package torch

import "errors"

// Registry operation errors. All of them leave the registry untouched; none
// is fatal. Callers match with errors.Is.
var (
	// ErrNotFound reports an operation on an id the registry does not hold.
	ErrNotFound = errors.New("torch: timer not found")

	// ErrInvalidDuration reports a non-positive duration passed to Add,
	// SetDuration, AddTime or RemoveTime.
	ErrInvalidDuration = errors.New("torch: duration must be positive")

	// ErrInvalidOperation reports an operation not permitted in the timer's
	// current state, such as changing the duration of a running timer.
	ErrInvalidOperation = errors.New("torch: operation not allowed in current state")

	// ErrAlreadyExpired reports a Start on a timer that has already burned
	// down. Informational: the timer stays Expired.
	ErrAlreadyExpired = errors.New("torch: timer already expired")
)
