package domain

import "errors"

// Session errors.
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionInactive = errors.New("session is not active")
	ErrAuthFailed      = errors.New("authentication failed")
	ErrMissingIdentity = errors.New("missing identity in session")
)

// Token and configuration errors.
var (
	ErrCSRFSecretMissing  = errors.New("CSRF secret not configured")
	ErrCSRFSecretTooShort = errors.New("CSRF secret too short")
)

// External service errors.
var (
	ErrKratosUnavailable = errors.New("identity provider unavailable")
)

// Rate limiting errors.
var (
	ErrRateLimited = errors.New("rate limit exceeded")
)
