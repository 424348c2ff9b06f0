package applications

import "errors"

var (
	// ErrNotFound indicates the application does not exist or belongs to
	// another user.
	ErrNotFound = errors.New("application not found")
	// ErrInvalidInput indicates a validation failure.
	ErrInvalidInput = errors.New("invalid input")
)
