package gateway

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"csrf-hub/internal/domain"

	kratos "github.com/ory/kratos-client-go"
)

// KratosGateway validates session cookies against the Ory Kratos
// frontend API. Implements domain.SessionValidator.
type KratosGateway struct {
	client *kratos.APIClient
}

// NewKratosGateway creates a new Kratos gateway with tuned HTTP transport.
func NewKratosGateway(baseURL string, timeout time.Duration) *KratosGateway {
	configuration := kratos.NewConfiguration()
	configuration.Servers = []kratos.ServerConfiguration{
		{URL: baseURL},
	}

	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 20,
		IdleConnTimeout:     90 * time.Second,
	}

	configuration.HTTPClient = &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}

	return &KratosGateway{
		client: kratos.NewAPIClient(configuration),
	}
}

// ValidateSession validates a session cookie and returns the identity.
func (g *KratosGateway) ValidateSession(ctx context.Context, cookie string) (*domain.Identity, error) {
	if cookie == "" {
		return nil, domain.ErrSessionNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	session, resp, err := g.client.FrontendAPI.ToSession(ctx).Cookie(cookie).Execute()
	if err != nil {
		if resp != nil {
			if resp.StatusCode == http.StatusUnauthorized {
				return nil, domain.ErrAuthFailed
			}
			return nil, fmt.Errorf("%w: kratos returned status %d", domain.ErrKratosUnavailable, resp.StatusCode)
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrKratosUnavailable, err)
	}

	if session.Active != nil && !*session.Active {
		return nil, domain.ErrSessionInactive
	}

	if session.Identity == nil {
		return nil, domain.ErrMissingIdentity
	}

	email := ""
	if traits, ok := session.Identity.Traits.(map[string]interface{}); ok {
		if emailVal, ok := traits["email"]; ok {
			if emailStr, ok := emailVal.(string); ok {
				email = emailStr
			}
		}
	}

	var createdAt time.Time
	if session.Identity.CreatedAt != nil {
		createdAt = *session.Identity.CreatedAt
	}

	return &domain.Identity{
		UserID:    session.Identity.Id,
		Email:     email,
		SessionID: session.Id,
		CreatedAt: createdAt,
	}, nil
}
