package scheduler

import "errors"

var (
	// ErrInvalidPoolSize is returned when a pool would have fewer than one chef.
	ErrInvalidPoolSize = errors.New("scheduler: pool size must be at least 1")

	// ErrResizeDeclined is returned when the confirmation policy refuses a resize.
	ErrResizeDeclined = errors.New("scheduler: resize declined")

	// ErrInvalidSource is returned when Cancel targets an unknown collection.
	ErrInvalidSource = errors.New("scheduler: invalid cancel source")

	// ErrClosed is returned once the scheduler has been shut down.
	ErrClosed = errors.New("scheduler: closed")

	errCancelled = errors.New("order cancelled")
)
