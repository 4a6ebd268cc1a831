package resource

import "errors"

var (
	ErrExists   = errors.New("already exists")
	ErrNotFound = errors.New("not found")
	// ErrInvalid is returned when a record fails validation before being
	// persisted.
	ErrInvalid = errors.New("invalid")
)
