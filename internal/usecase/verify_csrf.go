package usecase

import (
	"context"
	"log/slog"

	"csrf-hub/internal/domain"
)

// VerifyCSRF decides the verification verdict for a presented token.
// It is pure with respect to request handling: no shared mutable
// state, no I/O. Any number of concurrent verifications of the same
// token for the same session succeed independently; tokens are not
// single-use.
type VerifyCSRF struct {
	codec  domain.TokenCodec
	logger *slog.Logger
}

// NewVerifyCSRF creates a new VerifyCSRF usecase.
func NewVerifyCSRF(codec domain.TokenCodec, l *slog.Logger) *VerifyCSRF {
	return &VerifyCSRF{codec: codec, logger: l}
}

// Execute returns the verdict for a presented token bound to
// sessionID. An empty session ID never verifies: the token is a
// function of the session, so no session means no valid binding.
func (uc *VerifyCSRF) Execute(ctx context.Context, presented, sessionID string) domain.Verdict {
	if presented == "" {
		return domain.VerdictMissingToken
	}

	if !uc.codec.Verify(presented, sessionID) {
		// Expected adversarial/client noise; keep it quiet.
		uc.logger.DebugContext(ctx, "csrf token rejected")
		return domain.VerdictInvalidToken
	}

	return domain.VerdictValid
}
