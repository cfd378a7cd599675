package domain

import "errors"

// Sentinel errors services return so the HTTP layer can map them to
// statuses with errors.Is.
var (
	// ErrValidation marks a request that failed input validation.
	ErrValidation = errors.New("validation failed")

	// ErrUnauthorized covers bad credentials, bad tokens, and forged
	// gateway signatures.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden means the caller is authenticated but does not own the
	// resource.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound means the entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict marks a lost race or a uniqueness violation.
	ErrConflict = errors.New("conflict")

	// ErrInvalidState marks an operation that the entity's lifecycle does
	// not allow right now.
	ErrInvalidState = errors.New("invalid state")

	// ErrUpstream wraps failures from external services.
	ErrUpstream = errors.New("upstream error")
)
