package handler

import (
	"context"
	"net/http"

	"csrf-hub/internal/domain"

	"github.com/labstack/echo/v4"
)

// verdictDecider is implemented by usecase.VerifyCSRF.
type verdictDecider interface {
	Execute(ctx context.Context, presented, sessionID string) domain.Verdict
}

// VerifyHandler handles internal token verification requests from
// backends that terminate state-changing requests themselves.
type VerifyHandler struct {
	uc verdictDecider
}

// NewVerifyHandler creates a new internal verification handler.
func NewVerifyHandler(uc verdictDecider) *VerifyHandler {
	return &VerifyHandler{uc: uc}
}

// verifyRequest represents the internal verification request body.
type verifyRequest struct {
	CSRFToken string `json:"csrf_token"`
	SessionID string `json:"session_id"`
}

// verifyResponse represents the internal verification response.
type verifyResponse struct {
	Valid   bool   `json:"valid"`
	Verdict string `json:"verdict"`
	Code    string `json:"code,omitempty"`
}

// Handle processes the /internal/verify endpoint. The verdict is
// always reported with status 200; the caller owns the rejection.
func (h *VerifyHandler) Handle(c echo.Context) error {
	var req verifyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	verdict := h.uc.Execute(c.Request().Context(), req.CSRFToken, req.SessionID)

	return c.JSON(http.StatusOK, verifyResponse{
		Valid:   verdict == domain.VerdictValid,
		Verdict: string(verdict),
		Code:    verdict.ErrorCode(),
	})
}
