package manager

import "errors"

var (
	// ErrNotFound is returned when an operation targets an absent id.
	ErrNotFound = errors.New("not found")
	// ErrTimeConflict is returned when a scheduled item overlaps a stored one.
	ErrTimeConflict = errors.New("time conflict with an existing task")
	// ErrInvalidInput is returned for records the store refuses to hold.
	ErrInvalidInput = errors.New("invalid input")
	// ErrManagerSave is returned when a snapshot could not be persisted.
	ErrManagerSave = errors.New("failed to save tasks")
)
