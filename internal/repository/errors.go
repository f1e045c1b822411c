package repository

import "errors"

var (
	// ErrNotFound is returned when no record matches the lookup.
	ErrNotFound = errors.New("record not found")
	// ErrStatusConflict is returned when a status update finds the record in a different status
	// than the caller expected.
	ErrStatusConflict = errors.New("status changed concurrently")
)
