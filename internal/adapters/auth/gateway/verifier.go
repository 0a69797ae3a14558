package gateway

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"whiskerverse/internal/ports/auth"
)

var (
	ErrTokenEmpty = errors.New("token is empty")
)

// Verifier implementa auth.AuthVerifier contra el gateway de chat.
type Verifier struct {
	client *Client
}

func NewVerifier(client *Client) *Verifier {
	return &Verifier{client: client}
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if v == nil || v.client == nil {
		return auth.Claims{}, ErrGatewayNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	claims, err := v.client.VerifyToken(ctx, token)
	if err != nil {
		return auth.Claims{}, fmt.Errorf("gateway verify failed: %w", err)
	}

	claims.PlayerID = strings.TrimSpace(claims.PlayerID)
	if claims.PlayerID == "" {
		return auth.Claims{}, errors.New("gateway claims missing player id")
	}

	return claims, nil
}
