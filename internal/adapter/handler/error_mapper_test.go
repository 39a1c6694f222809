package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"csrf-hub/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"session not found", domain.ErrSessionNotFound, http.StatusUnauthorized},
		{"auth failed", domain.ErrAuthFailed, http.StatusUnauthorized},
		{"session inactive", domain.ErrSessionInactive, http.StatusUnauthorized},
		{"missing identity", domain.ErrMissingIdentity, http.StatusUnauthorized},
		{"kratos unavailable", domain.ErrKratosUnavailable, http.StatusBadGateway},
		{"csrf secret missing", domain.ErrCSRFSecretMissing, http.StatusInternalServerError},
		{"csrf secret too short", domain.ErrCSRFSecretTooShort, http.StatusInternalServerError},
		{"rate limited", domain.ErrRateLimited, http.StatusTooManyRequests},
		{"unknown error", errors.New("something unexpected"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := mapDomainError(tt.err)
			assert.Equal(t, tt.wantCode, httpErr.Code)
		})
	}
}

func TestMapDomainError_WrappedErrors(t *testing.T) {
	// Wrapped domain errors should still be detected
	wrapped := fmt.Errorf("context: %w", domain.ErrAuthFailed)
	httpErr := mapDomainError(wrapped)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)

	// Double-wrapped
	doubleWrapped := fmt.Errorf("outer: %w", wrapped)
	httpErr2 := mapDomainError(doubleWrapped)
	assert.Equal(t, http.StatusUnauthorized, httpErr2.Code)
}
