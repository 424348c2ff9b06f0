package ratings

import "errors"

var (
	// ErrNotFound indicates the rating does not exist.
	ErrNotFound = errors.New("rating not found")
	// ErrInvalidInput indicates a validation failure.
	ErrInvalidInput = errors.New("invalid input")
)
