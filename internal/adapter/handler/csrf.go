package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

// csrfIssuer is implemented by usecase.GenerateCSRF.
type csrfIssuer interface {
	Execute(ctx context.Context, rawCookie string, sessionID string) (string, error)
}

// CSRFHandler handles CSRF token issuance requests.
type CSRFHandler struct {
	uc         csrfIssuer
	cookieName string
}

// NewCSRFHandler creates a new CSRF issuance handler. cookieName is
// the session identifier cookie to read.
func NewCSRFHandler(uc csrfIssuer, cookieName string) *CSRFHandler {
	return &CSRFHandler{uc: uc, cookieName: cookieName}
}

// csrfResponse represents the CSRF token response.
type csrfResponse struct {
	Data struct {
		CSRFToken string `json:"csrf_token"`
	} `json:"data"`
}

// Handle processes CSRF token issuance requests.
func (h *CSRFHandler) Handle(c echo.Context) error {
	ctx := c.Request().Context()

	rawCookie := c.Request().Header.Get("Cookie")
	if rawCookie == "" {
		slog.WarnContext(ctx, "csrf token request without session cookie")
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"error": "session cookie required",
		})
	}

	sessionID := ""
	if cookie, err := c.Cookie(h.cookieName); err == nil {
		sessionID = cookie.Value
	}

	token, err := h.uc.Execute(ctx, rawCookie, sessionID)
	if err != nil {
		return mapDomainError(err)
	}

	// Log only a prefix of the session ID, never the full value.
	prefix := sessionID
	if len(prefix) > 8 {
		prefix = prefix[:8]
	}
	slog.InfoContext(ctx, "csrf token issued", "session_prefix", prefix)

	resp := csrfResponse{}
	resp.Data.CSRFToken = token
	return c.JSON(http.StatusOK, resp)
}
