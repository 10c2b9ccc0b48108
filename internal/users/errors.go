package users

import "errors"

var (
	// ErrStoreUnavailable means the backing credential store does not exist
	// or cannot be read.
	ErrStoreUnavailable = errors.New("user store unavailable")
	// ErrAlreadyExists means a record with the same email is already stored.
	ErrAlreadyExists = errors.New("user already exists")
	// ErrInvalidCredentials means no record matched the email/password pair.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
