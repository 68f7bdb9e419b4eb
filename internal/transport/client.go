// Package transport wraps net/http for fetching remote datasets.
package transport

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/agentstation/hemicycle/pkg/constants"
	"github.com/agentstation/hemicycle/pkg/errors"
	"github.com/agentstation/hemicycle/pkg/logging"
)

// DefaultHTTPTimeout is the default timeout for HTTP requests.
var DefaultHTTPTimeout = constants.DefaultHTTPTimeout

// Client provides HTTP client functionality with optional authentication.
type Client struct {
	http      *http.Client
	auth      Authenticator
	token     string
	userAgent string
	maxBytes  int64
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithAuth applies auth with token to every request. An empty token disables it.
func WithAuth(auth Authenticator, token string) Option {
	return func(c *Client) {
		if auth != nil {
			c.auth = auth
		}
		c.token = token
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithMaxBytes caps how much of a response body is read.
func WithMaxBytes(n int64) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxBytes = n
		}
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// New creates a new transport client.
func New(opts ...Option) *Client {
	c := &Client{
		http:      &http.Client{Timeout: DefaultHTTPTimeout},
		auth:      &NoAuth{},
		userAgent: "hemicycle",
		maxBytes:  constants.MaxDatasetBytes,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Timeout returns the configured request timeout.
func (c *Client) Timeout() time.Duration {
	return c.http.Timeout
}

// Do performs an HTTP request with authentication and common headers applied.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	if c.token != "" {
		c.auth.Apply(req, c.token)
	}
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9, */*;q=0.5")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	return c.http.Do(req)
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.WrapResource("create", "request", "GET "+url, err)
	}
	return c.Do(req)
}

// Fetch GETs url and returns the response body. Non-200 responses become
// an *errors.APIError tagged with source.
func (c *Client) Fetch(ctx context.Context, source, url string) ([]byte, error) {
	logger := logging.FromContext(ctx)
	start := time.Now()

	resp, err := c.Get(ctx, url)
	if err != nil {
		switch {
		case errors.Is(ctx.Err(), context.Canceled):
			return nil, fmt.Errorf("fetch %s: %w", source, errors.ErrCanceled)
		case errors.Is(ctx.Err(), context.DeadlineExceeded) || isTimeout(err):
			return nil, errors.NewTimeoutError("fetch", c.http.Timeout.String(), source+" from "+url)
		}
		return nil, &errors.APIError{
			Source:   source,
			Message:  err.Error(),
			Endpoint: url,
			Err:      errors.ErrSourceUnavailable,
		}
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			logger.Warn().Err(cerr).Str("url", url).Msg("Failed to close response body")
		}
	}()

	body, err := ReadBody(resp, c.maxBytes)
	if err != nil {
		return nil, errors.WrapIO("read", url, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &errors.APIError{
			Source:     source,
			StatusCode: resp.StatusCode,
			Message:    snippet(body),
			Endpoint:   url,
		}
	}

	logger.Debug().
		Str("source", source).
		Str("url", url).
		Int("bytes", len(body)).
		Dur("elapsed", time.Since(start)).
		Msg("Fetched remote dataset")
	return body, nil
}

// ReadBody reads at most limit bytes of the response body and fails when the
// body is larger.
func ReadBody(resp *http.Response, limit int64) ([]byte, error) {
	if limit <= 0 {
		limit = constants.MaxDatasetBytes
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > limit {
		return nil, fmt.Errorf("response body exceeds %d bytes", limit)
	}
	return body, nil
}

func isTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}

func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > 200 {
		s = s[:200] + "..."
	}
	if s == "" {
		s = "empty response"
	}
	return s
}
