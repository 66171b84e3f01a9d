package store

import "errors"

var (
	ErrNotFound    = errors.New("not found")
	ErrMissingID   = errors.New("id is required")
	ErrMissingName = errors.New("name is required")
	// ErrDanglingWorld is returned when a modal world references an
	// accessibility target that does not exist in the registry.
	ErrDanglingWorld = errors.New("accessibility references unknown world id")
)
