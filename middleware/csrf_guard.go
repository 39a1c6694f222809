package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"csrf-hub/internal/domain"

	"github.com/labstack/echo/v4"
)

// GuardConfig contains CSRF request guard configuration.
type GuardConfig struct {
	TokenHeader string   // Default: "X-CSRF-Token"
	CookieName  string   // Default: "ory_kratos_session"
	SkipPaths   []string // Path prefixes exempt from verification
	SafeMethods []string // Default: GET, HEAD, OPTIONS, TRACE
}

// DefaultGuardConfig returns the default guard configuration.
func DefaultGuardConfig() *GuardConfig {
	return &GuardConfig{
		TokenHeader: "X-CSRF-Token",
		CookieName:  "ory_kratos_session",
		SafeMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace},
	}
}

// verdictDecider is implemented by usecase.VerifyCSRF.
type verdictDecider interface {
	Execute(ctx context.Context, presented, sessionID string) domain.Verdict
}

// CSRFGuard enforces CSRF verification on state-changing requests.
// Safe methods pass through unconditionally. For unsafe methods the
// session identifier is read from the session cookie and the
// presented token from the token header; on any failure verdict the
// guard terminates the request with 403 and never invokes the wrapped
// handler. The guard holds no per-request state and performs no I/O,
// so concurrent requests reusing the same token all verify
// independently.
type CSRFGuard struct {
	decider verdictDecider
	config  *GuardConfig
	logger  *slog.Logger
}

// NewCSRFGuard creates a new CSRF request guard.
func NewCSRFGuard(decider verdictDecider, config *GuardConfig, logger *slog.Logger) *CSRFGuard {
	if config == nil {
		config = DefaultGuardConfig()
	}
	if config.TokenHeader == "" {
		config.TokenHeader = "X-CSRF-Token"
	}
	if config.CookieName == "" {
		config.CookieName = "ory_kratos_session"
	}
	if len(config.SafeMethods) == 0 {
		config.SafeMethods = DefaultGuardConfig().SafeMethods
	}

	return &CSRFGuard{decider: decider, config: config, logger: logger}
}

// guardErrorBody is the machine-readable error payload.
type guardErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// guardErrorResponse wraps the error payload.
type guardErrorResponse struct {
	Error guardErrorBody `json:"error"`
}

// Middleware returns the guard as an Echo middleware function.
func (g *CSRFGuard) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if g.isSafeMethod(c.Request().Method) {
				return next(c)
			}

			if g.shouldSkipPath(c.Request().URL.Path) {
				return next(c)
			}

			sessionID := ""
			if cookie, err := c.Cookie(g.config.CookieName); err == nil {
				sessionID = cookie.Value
			}
			presented := c.Request().Header.Get(g.config.TokenHeader)

			verdict := g.decider.Execute(c.Request().Context(), presented, sessionID)
			if verdict != domain.VerdictValid {
				g.logger.WarnContext(c.Request().Context(), "csrf verification failed",
					"verdict", string(verdict),
					"method", c.Request().Method,
					"path", c.Request().URL.Path)
				return g.reject(c, verdict)
			}

			return next(c)
		}
	}
}

// reject writes the 403 response for a failure verdict. The message
// never reveals why verification failed beyond the verdict code.
func (g *CSRFGuard) reject(c echo.Context, verdict domain.Verdict) error {
	message := "CSRF token is required"
	if verdict == domain.VerdictInvalidToken {
		message = "CSRF token verification failed"
	}

	return c.JSON(http.StatusForbidden, guardErrorResponse{
		Error: guardErrorBody{
			Code:    verdict.ErrorCode(),
			Message: message,
		},
	})
}

// isSafeMethod reports whether the method is non-mutating and bypasses
// verification entirely.
func (g *CSRFGuard) isSafeMethod(method string) bool {
	for _, safe := range g.config.SafeMethods {
		if method == safe {
			return true
		}
	}
	return false
}

// shouldSkipPath reports whether the path is exempt from verification.
func (g *CSRFGuard) shouldSkipPath(path string) bool {
	for _, skip := range g.config.SkipPaths {
		if strings.HasPrefix(path, skip) {
			return true
		}
	}
	return false
}
