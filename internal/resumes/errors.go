package resumes

import "errors"

var (
	// ErrNotFound indicates an entity was not found.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates validation or bad input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict indicates concurrent activations could not be serialized.
	ErrConflict = errors.New("activation conflict")

	// ErrUpstream indicates the parsing collaborator failed.
	ErrUpstream = errors.New("upstream unavailable")
)
