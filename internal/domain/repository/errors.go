package repository

import "errors"

var (
	// ErrNotFound is returned when a row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when a unique constraint rejects an insert.
	// The database constraint, not the application pre-check, is the source of
	// truth for duplicates.
	ErrDuplicate = errors.New("duplicate")
)
