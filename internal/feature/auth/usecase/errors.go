// Package usecase implements the business logic for the auth feature.
package usecase

import "errors"

var (
	// ErrInvalidInput wraps signup field validation failures.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUserAlreadyExists is returned when the username or email is already taken.
	ErrUserAlreadyExists = errors.New("username or email already exists")

	// ErrUserNotFound is returned when a user cannot be found by email, username or ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidCredentials is returned for any failed login.
	// It never says which of email or password was wrong.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrSessionNotFound is returned when a session cannot be found by ID.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionRevoked is returned when attempting to use a revoked session.
	ErrSessionRevoked = errors.New("session has been revoked")

	// ErrSessionExpired is returned when attempting to use an expired session.
	ErrSessionExpired = errors.New("session has expired")
)
