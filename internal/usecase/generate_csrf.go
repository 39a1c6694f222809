package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"csrf-hub/internal/domain"
)

// GenerateCSRF orchestrates CSRF token issuance for an authenticated
// session: the session cookie is validated against the identity
// provider (cache-through), then the token is derived from the
// session ID. Issuance is idempotent: the same session always gets
// the same token.
type GenerateCSRF struct {
	validator domain.SessionValidator
	cache     domain.SessionCache
	codec     domain.TokenCodec
	logger    *slog.Logger
}

// NewGenerateCSRF creates a new GenerateCSRF usecase.
func NewGenerateCSRF(v domain.SessionValidator, c domain.SessionCache, codec domain.TokenCodec, l *slog.Logger) *GenerateCSRF {
	return &GenerateCSRF{validator: v, cache: c, codec: codec, logger: l}
}

// Execute validates the session cookie and derives the CSRF token for
// sessionID. rawCookie is the full Cookie header, forwarded to the
// identity provider unchanged.
func (uc *GenerateCSRF) Execute(ctx context.Context, rawCookie string, sessionID string) (string, error) {
	if rawCookie == "" || sessionID == "" {
		return "", domain.ErrSessionNotFound
	}

	if _, found := uc.cache.Get(sessionID); !found {
		identity, err := uc.validator.ValidateSession(ctx, rawCookie)
		if err != nil {
			return "", fmt.Errorf("%w: %w", domain.ErrAuthFailed, err)
		}

		uc.cache.Set(sessionID, domain.CachedSession{
			UserID: identity.UserID,
			Email:  identity.Email,
		})
	}

	token, err := uc.codec.Issue(sessionID)
	if err != nil {
		uc.logger.ErrorContext(ctx, "failed to issue CSRF token", "error", err)
		return "", fmt.Errorf("%w: %w", domain.ErrCSRFSecretMissing, err)
	}

	return token, nil
}
