package service

import "errors"

// Failure taxonomy shared by both services. Handlers map these to HTTP
// status codes; messages wrapped around them are safe to show callers and
// never include hash or store internals.
var (
	// ErrValidation covers malformed or missing input.
	ErrValidation = errors.New("validation failed")

	// ErrConflict covers username/email uniqueness violations.
	ErrConflict = errors.New("conflict")

	// ErrNotFound covers lookups with no matching account.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized covers bad credentials and bad, expired, or
	// replayed tokens. Every token verification failure during refresh
	// collapses into this kind no matter the underlying cause.
	ErrUnauthorized = errors.New("unauthorized")
)
