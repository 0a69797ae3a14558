package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultTimeout = 10 * time.Second

	// Identifica al servicio ante el gateway y cualquier otro upstream.
	userAgent = "whiskerverse-api"

	// Las respuestas que consumimos (claims de tokens) son chicas; el
	// límite corta bodies desproporcionados de upstreams rotos.
	maxBodyBytes = 256 << 10
)

// Client envuelve *http.Client para los adapters salientes del
// servicio: base URL fija, timeouts y requests JSON.
type Client struct {
	hc      *http.Client
	baseURL string
}

// New crea un Client contra una base URL. Base vacía crea un client
// sin configurar (Configured() == false); los adapters deciden si eso
// es un error.
func New(baseURL string, timeout time.Duration) (*Client, error) {
	return NewWithTransport(baseURL, timeout, nil)
}

// NewWithTransport permite inyectar un Transport (tests).
func NewWithTransport(baseURL string, timeout time.Duration, tr http.RoundTripper) (*Client, error) {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if tr == nil {
		tr = http.DefaultTransport
	}

	c := &Client{
		hc: &http.Client{
			Timeout:   timeout,
			Transport: tr,
		},
	}

	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return c, nil
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	c.baseURL = strings.TrimRight(baseURL, "/")

	return c, nil
}

// Configured indica si el client tiene base URL.
func (c *Client) Configured() bool {
	return c != nil && c.baseURL != ""
}

// HTTPError representa una respuesta no-2xx. Message trae el campo
// "error" del body si el upstream respondió JSON.
type HTTPError struct {
	StatusCode int
	Message    string
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("http error: status=%d message=%s", e.StatusCode, e.Message)
	}
	if e.Body != "" {
		return fmt.Sprintf("http error: status=%d body=%s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("http error: status=%d", e.StatusCode)
}

// DoJSON hace un request JSON contra la base URL.
// - path: relativo a la base URL
// - headers: headers extra (opcional)
// - in: body a enviar (opcional). Si nil => no body.
// - out: donde decodificar JSON (opcional). Si nil => ignora body.
// Retorna *HTTPError si el status no es 2xx.
func (c *Client) DoJSON(
	ctx context.Context,
	method string,
	path string,
	headers map[string]string,
	in any,
	out any,
) error {
	if c == nil || c.hc == nil {
		return errors.New("httpclient: nil client")
	}
	if !c.Configured() {
		return errors.New("httpclient: no base url")
	}

	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("httpclient: empty path")
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("httpclient: marshal json: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("httpclient: new request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		if strings.TrimSpace(k) == "" {
			continue
		}
		req.Header.Set(k, v)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("httpclient: do request: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &HTTPError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(raw),
			Body:       strings.TrimSpace(string(raw)),
		}
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("httpclient: unmarshal json: %w", err)
	}

	return nil
}

// errorMessage extrae el campo "error" de un body JSON de error, si
// lo hay.
func errorMessage(raw []byte) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return ""
	}
	return strings.TrimSpace(payload.Error)
}
