package calcclient

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/muurk/tapcalc/internal/expression"
	"github.com/muurk/tapcalc/internal/format"
	"github.com/muurk/tapcalc/internal/logging"
	"github.com/muurk/tapcalc/internal/version"
)

const (
	// DefaultEndpoint is the local evaluation service
	DefaultEndpoint = "http://127.0.0.1:5000/calculate"

	// RequestIDHeader carries a per-evaluation identifier for log correlation
	RequestIDHeader = "X-Request-ID"

	// maxBodySize bounds how much of a response is read
	maxBodySize = 1 << 20
)

// Client sends expressions to a remote evaluator.
// One call issues exactly one request; there are no retries.
type Client struct {
	// Endpoint is the full evaluation URL
	Endpoint string

	// HTTPClient is the underlying HTTP client. Its zero Timeout means the
	// transport default applies.
	HTTPClient *http.Client

	newID func() string
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.HTTPClient = hc
		}
	}
}

// WithTimeout sets an overall request timeout. Zero keeps the transport default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.HTTPClient.Timeout = d
		}
	}
}

// New creates a client for the given endpoint. An empty endpoint selects
// DefaultEndpoint.
func New(endpoint string, opts ...Option) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	c := &Client{
		Endpoint:   endpoint,
		HTTPClient: &http.Client{},
		newID:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Calculate sends the expression for evaluation and returns the numeric
// result. Display glyphs are translated first; the rest of the text is sent
// as entered. Every failure is returned as *Error.
func (c *Client) Calculate(ctx context.Context, expr string) (float64, error) {
	canonical := expression.Canonical(expr)
	id := c.newID()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(EncodeRequest(canonical)))
	if err != nil {
		return 0, NewTransportError("failed to create request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, id)
	req.Header.Set("User-Agent", version.UserAgent())

	logging.LogRequest(id, c.Endpoint, canonical)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return 0, NewTransportError("request failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return 0, NewTransportError("failed to read response body", err)
	}

	logging.LogResponse(id, resp.StatusCode, body)

	// Non-2xx is a transport failure regardless of body
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, NewStatusError(resp.StatusCode)
	}

	r, err := DecodeResponse(body)
	if err != nil {
		return 0, NewProtocolError("invalid response payload", resp.StatusCode, err)
	}

	if r.HasError {
		return 0, NewSemanticError(r.Error, resp.StatusCode)
	}

	return r.Result, nil
}

// Evaluate is Calculate with the result passed through the number formatter,
// ready to become the new expression.
func (c *Client) Evaluate(ctx context.Context, expr string) (string, error) {
	v, err := c.Calculate(ctx, expr)
	if err != nil {
		return "", err
	}
	return format.Number(v), nil
}
