package handler

import (
	"errors"
	"net/http"

	"csrf-hub/internal/domain"

	"github.com/labstack/echo/v4"
)

// mapDomainError converts a domain error into an appropriate echo.HTTPError.
// Messages never echo token or secret material.
func mapDomainError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound),
		errors.Is(err, domain.ErrAuthFailed),
		errors.Is(err, domain.ErrSessionInactive),
		errors.Is(err, domain.ErrMissingIdentity):
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")

	case errors.Is(err, domain.ErrKratosUnavailable):
		return echo.NewHTTPError(http.StatusBadGateway, "identity provider unavailable")

	case errors.Is(err, domain.ErrCSRFSecretMissing),
		errors.Is(err, domain.ErrCSRFSecretTooShort):
		return echo.NewHTTPError(http.StatusInternalServerError, "token generation error")

	case errors.Is(err, domain.ErrRateLimited):
		return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")

	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}
