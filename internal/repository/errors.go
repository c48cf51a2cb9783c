package repository

import "errors"

var (
	// ErrNotFound is returned when the requested row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a write is rejected by a unique
	// constraint or a concurrent modification.
	ErrConflict = errors.New("conflict")
)
