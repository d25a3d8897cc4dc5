package store

import "errors"

// Sentinel errors returned by store operations. Services translate these
// into domain errors before they reach API handlers.
var (
	// ErrNotFound is returned when an entity cannot be found by ID or index.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when creating an entity whose ID or
	// unique index value is already taken.
	ErrAlreadyExists = errors.New("already exists")

	// ErrUserNotFound is returned when a user cannot be found by ID or email.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserExists is returned when attempting to create a user with an existing ID.
	ErrUserExists = errors.New("user already exists")
	// ErrEmailExists is returned when attempting to create a user with an email that's already in use.
	ErrEmailExists = errors.New("email already in use")
	// ErrSessionNotFound is returned when a session cannot be found by ID.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionExpired is returned when attempting to use an expired session.
	ErrSessionExpired = errors.New("session expired")
)
