package service

import "errors"

var (
	// ErrValidation indicates a required field is missing or malformed.
	ErrValidation = errors.New("validation failed")
	// ErrUserAlreadyExists is returned when registering an already-taken username.
	ErrUserAlreadyExists = errors.New("user already exists")
	// ErrInvalidCredentials covers both unknown username and wrong password,
	// so callers cannot probe which accounts exist.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrSessionNotFound indicates the session token is unknown or expired.
	ErrSessionNotFound = errors.New("session not found")
	// ErrNotAuthenticated indicates a protected operation was attempted
	// without a valid session.
	ErrNotAuthenticated = errors.New("not authenticated")
)
