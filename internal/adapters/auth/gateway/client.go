package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"whiskerverse/internal/platform/httpclient"
	"whiskerverse/internal/ports/auth"
)

var (
	ErrGatewayNotConfigured = errors.New("gateway client not configured")
	ErrGatewayUnauthorized  = errors.New("gateway unauthorized")
	ErrGatewayUpstream      = errors.New("gateway upstream error")
)

// Config del cliente del gateway de chat (el servicio que emite los
// tokens de bot/jugador de la plataforma).
type Config struct {
	BaseURL string
	APIKey  string

	// Opcional: header de la API key. Default "X-Api-Key".
	APIKeyHeader string

	Timeout time.Duration
}

type Client struct {
	apiKey       string
	apiKeyHeader string
	http         *httpclient.Client
}

func NewClient(cfg Config) (*Client, error) {
	h := strings.TrimSpace(cfg.APIKeyHeader)
	if h == "" {
		h = "X-Api-Key"
	}

	hc, err := httpclient.New(strings.TrimSpace(cfg.BaseURL), cfg.Timeout)
	if err != nil {
		return nil, err
	}

	return &Client{
		apiKey:       strings.TrimSpace(cfg.APIKey),
		apiKeyHeader: h,
		http:         hc,
	}, nil
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.http.Configured() && c.apiKey != ""
}

// VerifyToken verifica un token contra el gateway y devuelve los
// claims del actor.
func (c *Client) VerifyToken(ctx context.Context, token string) (auth.Claims, error) {
	if !c.IsConfigured() {
		return auth.Claims{}, ErrGatewayNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrGatewayUnauthorized
	}

	var out struct {
		PlayerID string `json:"player_id"`
		Username string `json:"username"`
	}

	err := c.http.DoJSON(ctx, http.MethodPost, "/v1/tokens/verify",
		map[string]string{
			c.apiKeyHeader:  c.apiKey,
			"Authorization": "Bearer " + token,
		},
		map[string]string{"token": token},
		&out,
	)
	if err != nil {
		var httpErr *httpclient.HTTPError
		if errors.As(err, &httpErr) {
			if httpErr.StatusCode == http.StatusUnauthorized || httpErr.StatusCode == http.StatusForbidden {
				return auth.Claims{}, ErrGatewayUnauthorized
			}
			return auth.Claims{}, fmt.Errorf("%w: status=%d", ErrGatewayUpstream, httpErr.StatusCode)
		}
		return auth.Claims{}, fmt.Errorf("%w: %v", ErrGatewayUpstream, err)
	}

	out.PlayerID = strings.TrimSpace(out.PlayerID)
	if out.PlayerID == "" {
		return auth.Claims{}, errors.New("gateway response missing player_id")
	}

	return auth.Claims{
		PlayerID: out.PlayerID,
		Username: strings.TrimSpace(out.Username),
	}, nil
}
