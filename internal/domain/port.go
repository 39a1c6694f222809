package domain

import "context"

// SessionValidator validates a session cookie against the identity provider.
type SessionValidator interface {
	ValidateSession(ctx context.Context, cookie string) (*Identity, error)
}

// SessionCache provides read/write access to cached session data.
type SessionCache interface {
	Get(sessionID string) (*CachedSession, bool)
	Set(sessionID string, session CachedSession)
}

// TokenCodec derives and verifies session-bound CSRF tokens. Both
// operations are pure functions of (token, session ID, secret); no
// token is ever stored server-side.
type TokenCodec interface {
	Issue(sessionID string) (string, error)
	Verify(presented, sessionID string) bool
}
