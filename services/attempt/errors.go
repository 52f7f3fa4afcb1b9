package attempt

import "errors"

// Failure taxonomy surfaced to the HTTP layer. Controllers translate
// these with errors.Is; storage errors propagate untouched.
var (
	ErrNotFound      = errors.New("not found")
	ErrForbidden     = errors.New("forbidden")
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotConfigured = errors.New("not configured")
)
