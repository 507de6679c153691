// Package rest implements the outbound HTTP layer for the sales backend.
// A single Client owns the base URL, auth token lookup and instrumentation;
// generic Resource values bind it to one collection endpoint each.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TokenSource yields the current bearer token. Implementations are consulted
// on every call so a token refreshed between calls is honored; ok=false means
// the request goes out anonymously with no Authorization header.
type TokenSource interface {
	Token() (token string, ok bool)
}

// Recorder observes the outcome of one remote operation. Satisfied by the
// telemetry package's expvar and Prometheus recorders.
type Recorder interface {
	Observe(ctx context.Context, operation string, success bool, duration time.Duration)
}

// Client performs HTTP round trips against the sales backend. It attaches the
// bearer token read at call time, decodes JSON bodies, and maps failures to
// TransportError or StatusError. One attempt per call; no retries.
type Client struct {
	base    *url.URL
	httpc   *http.Client
	tokens  TokenSource
	log     *slog.Logger
	metrics Recorder
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpc = h }
}

// WithTokenSource sets the bearer token lookup.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithLogger sets the logger used for call-site failure logging.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithRecorder sets the metrics recorder for call outcomes.
func WithRecorder(r Recorder) Option {
	return func(c *Client) { c.metrics = r }
}

// NewClient constructs a client for the given base URL, the single externally
// supplied configuration value selecting the backend host.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("base url required")
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	c := &Client{
		base:  u,
		httpc: http.DefaultClient,
		log:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Do executes one JSON round trip. path is relative to the base URL, body is
// encoded as JSON when non-nil, and a 2xx response body is decoded into out
// when out is non-nil. Failures are logged here and returned unchanged.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	op := method + " " + path
	target := c.base.JoinPath(path)
	if len(query) > 0 {
		target.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode body: %w", op, err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), reader)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	// Token is read per call, never cached, so refreshes between calls apply.
	if c.tokens != nil {
		if token, ok := c.tokens.Token(); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		c.observe(ctx, op, false, start)
		terr := &TransportError{Op: op, URL: target.String(), Err: err}
		c.log.ErrorContext(ctx, "remote call failed", "op", op, "request_id", req.Header.Get("X-Request-ID"), "err", err)
		return terr
	}
	defer func() { _ = resp.Body.Close() }()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		c.observe(ctx, op, false, start)
		terr := &TransportError{Op: op, URL: target.String(), Err: err}
		c.log.ErrorContext(ctx, "remote call failed", "op", op, "request_id", req.Header.Get("X-Request-ID"), "err", err)
		return terr
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.observe(ctx, op, false, start)
		serr := &StatusError{Op: op, URL: target.String(), Status: resp.StatusCode, Message: serverMessage(payload)}
		c.log.ErrorContext(ctx, "remote call failed", "op", op, "request_id", req.Header.Get("X-Request-ID"), "status", resp.StatusCode, "message", serr.Message)
		return serr
	}

	c.observe(ctx, op, true, start)
	if out == nil || len(payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}

func (c *Client) observe(ctx context.Context, op string, success bool, start time.Time) {
	if c.metrics == nil {
		return
	}
	c.metrics.Observe(ctx, op, success, time.Since(start))
}

// joinID appends a numeric id path segment to a collection path.
func joinID(collection string, id int64) string {
	return strings.TrimSuffix(collection, "/") + fmt.Sprintf("/%d", id)
}
