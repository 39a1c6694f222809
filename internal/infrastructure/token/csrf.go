package token

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"

	"csrf-hub/internal/domain"
)

// HMACCodec derives and verifies CSRF tokens using HMAC-SHA256 keyed
// by the process-wide signing secret. A token is a pure function of
// the session ID, so the same session always yields the same token
// and nothing is ever stored server-side; rotating the session
// immediately invalidates tokens derived from the old one.
// Implements domain.TokenCodec.
type HMACCodec struct {
	secret []byte
}

// NewHMACCodec creates a codec for the given signing secret.
func NewHMACCodec(secret string) *HMACCodec {
	return &HMACCodec{secret: []byte(secret)}
}

// Issue derives the CSRF token for a session ID.
func (c *HMACCodec) Issue(sessionID string) (string, error) {
	if len(c.secret) == 0 {
		return "", domain.ErrCSRFSecretMissing
	}

	mac := hmac.New(sha256.New, c.secret)
	mac.Write([]byte(sessionID))
	return base64.URLEncoding.EncodeToString(mac.Sum(nil)), nil
}

// Verify reports whether presented matches the token derived for
// sessionID. Both sides are hashed to a fixed length before the
// constant-time comparison, so the cost is the same regardless of the
// presented token's length or of where the first mismatching byte
// occurs. Empty or malformed input simply compares unequal.
func (c *HMACCodec) Verify(presented, sessionID string) bool {
	expected, err := c.Issue(sessionID)
	if err != nil {
		return false
	}

	presentedSum := sha256.Sum256([]byte(presented))
	expectedSum := sha256.Sum256([]byte(expected))
	return subtle.ConstantTimeCompare(presentedSum[:], expectedSum[:]) == 1
}
