package services

import "errors"

// Client-correctable validation failures (HTTP 400). Messages are the
// client-visible text; handlers pass them through verbatim.
var (
	ErrMissingFields       = errors.New("All fields are required")
	ErrUsernameLength      = errors.New("Username must be 3-20 characters")
	ErrUsernameCharset     = errors.New("Username can only contain letters, numbers, underscores")
	ErrWeakPassword        = errors.New("Password must be at least 6 characters")
	ErrMissingCredentials  = errors.New("Email and password are required")
	ErrMissingResultFields = errors.New("Missing required fields")
)

// Uniqueness conflicts (HTTP 409).
var (
	ErrEmailTaken    = errors.New("Email already registered")
	ErrUsernameTaken = errors.New("Username already taken")
)

// ErrInvalidCredentials (HTTP 401) is deliberately the same for an unknown
// email, an account with no password credential, and a wrong password, so
// callers cannot enumerate accounts.
var ErrInvalidCredentials = errors.New("Invalid email or password")

// ErrUserNotFound (HTTP 404): a token's user id no longer resolves to a row.
var ErrUserNotFound = errors.New("User not found")
