package store

import "errors"

var (
	// ErrValidation marks bad input. Wrapped errors carry the detail.
	ErrValidation = errors.New("validation failed")

	// ErrDuplicateEmail is returned when signup hits the unique email index.
	ErrDuplicateEmail = errors.New("email already in use")

	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password, so a caller cannot tell which one failed.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
