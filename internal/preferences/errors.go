package preferences

import "errors"

var (
	// ErrNotFound indicates the preference does not exist or belongs to
	// another user.
	ErrNotFound = errors.New("preference not found")
	// ErrInvalidInput indicates a validation failure.
	ErrInvalidInput = errors.New("invalid input")
	// ErrConflict indicates a concurrent modification lost the race.
	ErrConflict = errors.New("conflicting preference update")
)
