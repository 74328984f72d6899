package core

import (
	"errors"
)

// ErrNotFound is a sentinel error for "not found" cases
var ErrNotFound = errors.New("not found")

// ErrAlreadyExists is returned when a unique record (guild link, user account link) is already present
var ErrAlreadyExists = errors.New("already exists")

// ErrUnauthorized covers missing/invalid credentials, bad OAuth state and identity mismatches
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden is returned when an authenticated user may not act on a resource
var ErrForbidden = errors.New("forbidden")

// IsNotFoundError checks if an error is a "not found" error
func IsNotFoundError(err error) bool {
	return err != nil && errors.Is(err, ErrNotFound)
}

// IsAlreadyExistsError checks if an error is caused by a uniqueness conflict
func IsAlreadyExistsError(err error) bool {
	return err != nil && errors.Is(err, ErrAlreadyExists)
}
