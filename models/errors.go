package models

import "errors"

var (
	// ErrNotFound is returned when an operation addresses an id that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrValidation is returned for input rejected before any write, such as an undeclared protocol or method code.
	ErrValidation = errors.New("validation failed")
	// ErrStorage wraps every failure reported by the underlying database.
	ErrStorage = errors.New("storage error")
	// ErrChannelClosed is returned by the event bus once it has been shut down.
	ErrChannelClosed = errors.New("event channel closed")
)
