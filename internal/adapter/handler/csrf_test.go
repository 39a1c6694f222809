package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"csrf-hub/internal/domain"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

// stubIssuer implements csrfIssuer for testing.
type stubIssuer struct {
	token     string
	err       error
	rawCookie string
	sessionID string
}

func (s *stubIssuer) Execute(_ context.Context, rawCookie string, sessionID string) (string, error) {
	s.rawCookie = rawCookie
	s.sessionID = sessionID
	return s.token, s.err
}

func TestCSRFHandler_Success(t *testing.T) {
	issuer := &stubIssuer{token: "issued-token"}
	h := NewCSRFHandler(issuer, "ory_kratos_session")

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/csrf", nil)
	req.AddCookie(&http.Cookie{Name: "ory_kratos_session", Value: "sess-123"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Handle(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data struct {
			CSRFToken string `json:"csrf_token"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "issued-token", resp.Data.CSRFToken)
	assert.Equal(t, "sess-123", issuer.sessionID)
	assert.Contains(t, issuer.rawCookie, "ory_kratos_session=sess-123")
}

func TestCSRFHandler_NoCookie(t *testing.T) {
	h := NewCSRFHandler(&stubIssuer{token: "unused"}, "ory_kratos_session")

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/csrf", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Handle(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCSRFHandler_AuthFailed(t *testing.T) {
	issuer := &stubIssuer{err: domain.ErrAuthFailed}
	h := NewCSRFHandler(issuer, "ory_kratos_session")

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/csrf", nil)
	req.AddCookie(&http.Cookie{Name: "ory_kratos_session", Value: "sess-bad"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Handle(c)
	var httpErr *echo.HTTPError
	assert.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func TestCSRFHandler_CustomCookieName(t *testing.T) {
	issuer := &stubIssuer{token: "issued-token"}
	h := NewCSRFHandler(issuer, "app_session")

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/csrf", nil)
	req.AddCookie(&http.Cookie{Name: "app_session", Value: "sess-xyz"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Handle(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "sess-xyz", issuer.sessionID)
}
