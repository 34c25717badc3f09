package notegate

import "errors"

var (
	// ErrNotFound is returned when a key is absent from the bucket
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a key that must not exist already does
	ErrConflict = errors.New("already exists")
	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
	// ErrInternal is returned when an internal error occurs
	ErrInternal = errors.New("internal error")
)
