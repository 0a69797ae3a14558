package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	c, err := NewClient(Config{
		BaseURL: ts.URL,
		APIKey:  "test-key",
		Timeout: 2 * time.Second,
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

func TestVerifyToken_OK(t *testing.T) {
	var gotPath, gotAPIKey, gotAuth string
	var gotBody struct {
		Token string `json:"token"`
	}

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAPIKey = r.Header.Get("X-Api-Key")
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"player_id": "player-42",
			"username":  "misha",
		})
	})

	claims, err := c.VerifyToken(context.Background(), "tok-abc")
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if claims.PlayerID != "player-42" || claims.Username != "misha" {
		t.Fatalf("claims inesperados: %+v", claims)
	}

	if gotPath != "/v1/tokens/verify" {
		t.Errorf("path = %q", gotPath)
	}
	if gotAPIKey != "test-key" {
		t.Errorf("api key header = %q", gotAPIKey)
	}
	if gotAuth != "Bearer tok-abc" {
		t.Errorf("authorization = %q", gotAuth)
	}
	if gotBody.Token != "tok-abc" {
		t.Errorf("body token = %q", gotBody.Token)
	}
}

func TestVerifyToken_Unauthorized(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "bad token"})
		})

		_, err := c.VerifyToken(context.Background(), "tok-bad")
		if !errors.Is(err, ErrGatewayUnauthorized) {
			t.Errorf("status %d: err = %v, quería ErrGatewayUnauthorized", status, err)
		}
	}
}

func TestVerifyToken_UpstreamError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := c.VerifyToken(context.Background(), "tok-abc")
	if !errors.Is(err, ErrGatewayUpstream) {
		t.Fatalf("err = %v, quería ErrGatewayUpstream", err)
	}
}

func TestVerifyToken_MissingPlayerID(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"username": "misha"})
	})

	_, err := c.VerifyToken(context.Background(), "tok-abc")
	if err == nil {
		t.Fatal("quería error por player_id faltante")
	}
}

func TestVerifyToken_EmptyToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("el gateway no debería recibir requests con token vacío")
	})

	_, err := c.VerifyToken(context.Background(), "   ")
	if !errors.Is(err, ErrGatewayUnauthorized) {
		t.Fatalf("err = %v, quería ErrGatewayUnauthorized", err)
	}
}

func TestVerifyToken_NotConfigured(t *testing.T) {
	c, err := NewClient(Config{})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	_, err = c.VerifyToken(context.Background(), "tok-abc")
	if !errors.Is(err, ErrGatewayNotConfigured) {
		t.Fatalf("err = %v, quería ErrGatewayNotConfigured", err)
	}
}

func TestVerifier_Verify(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"player_id": "player-7",
			"username":  "nube",
		})
	})
	v := NewVerifier(c)

	claims, err := v.Verify(context.Background(), "tok-ok")
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.PlayerID != "player-7" {
		t.Fatalf("player id = %q", claims.PlayerID)
	}

	if _, err := v.Verify(context.Background(), ""); !errors.Is(err, ErrTokenEmpty) {
		t.Fatalf("err = %v, quería ErrTokenEmpty", err)
	}
}
