package users

import "errors"

var (
	// ErrNotFound indicates the user row does not exist.
	ErrNotFound = errors.New("user not found")
	// ErrInvalidInput indicates a validation failure.
	ErrInvalidInput = errors.New("invalid input")
)
