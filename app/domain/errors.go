package domain

import "errors"

// Authentication and gating errors
var (
	// Signup errors
	ErrValidation = errors.New("invalid input")
	ErrEmailTaken = errors.New("user already exists")

	// Login errors. The same error covers unknown email and wrong password
	// so callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Session errors
	ErrUnauthenticated = errors.New("unauthorized")

	// Upstream analytics errors
	ErrUpstream = errors.New("analytics service unavailable")

	// General errors
	ErrInternal = errors.New("internal error")
)
