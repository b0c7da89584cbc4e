// Package httpclient es el cliente HTTP saliente hacia APIs de terceros
// (perfiles OAuth). Propaga trazas con otelhttp.
package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	DefaultTimeout = 10 * time.Second
	UserAgent      = "pet-adoption/1.0"

	maxBody = 1 << 20
)

type Client struct {
	HTTP *http.Client
}

// New arma un Client con transporte instrumentado. tr nil => http.DefaultTransport.
func New(timeout time.Duration) *Client {
	return NewWithTransport(timeout, nil)
}

func NewWithTransport(timeout time.Duration, tr http.RoundTripper) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if tr == nil {
		tr = http.DefaultTransport
	}
	return &Client{
		HTTP: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(tr),
		},
	}
}

// HTTPError es una respuesta no-2xx del proveedor.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("http error: status=%d", e.StatusCode)
	}
	return fmt.Sprintf("http error: status=%d body=%s", e.StatusCode, e.Body)
}

// ClientError: 4xx (token vencido, scope faltante). No se reintenta.
func (e *HTTPError) ClientError() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}

// IsClientError indica si err envuelve un HTTPError 4xx.
func IsClientError(err error) bool {
	var he *HTTPError
	return errors.As(err, &he) && he.ClientError()
}

// GetJSON hace GET y decodifica el cuerpo en out. Error si el status no es 2xx.
func (c *Client) GetJSON(ctx context.Context, rawURL string, headers map[string]string, out any) error {
	if c == nil || c.HTTP == nil {
		return errors.New("httpclient: nil client")
	}
	rawURL = strings.TrimSpace(rawURL)
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return fmt.Errorf("httpclient: absolute url required, got %q", rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("httpclient: new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", UserAgent)
	for k, v := range headers {
		if strings.TrimSpace(k) == "" {
			continue
		}
		req.Header.Set(k, v)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("httpclient: do request: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxBody))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &HTTPError{
			StatusCode: resp.StatusCode,
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
