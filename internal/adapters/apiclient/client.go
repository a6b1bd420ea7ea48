// Package apiclient is a typed client for the diaconisas REST API.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/sony/gobreaker"

	"diaconisas/internal/adapters/wire"
)

// ErrNotAuthenticated is returned when a call needs a token and none is set.
var ErrNotAuthenticated = errors.New("not logged in")

// APIError is a non-2xx response from the server.
type APIError struct {
	Status int
	Detail string
	Fields map[string]string
}

// Error implements error.
func (e *APIError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("api error %d: %s", e.Status, e.Detail)
	}
	parts := make([]string, 0, len(e.Fields))
	for f, msg := range e.Fields {
		parts = append(parts, f+": "+msg)
	}
	return fmt.Sprintf("api error %d: %s (%s)", e.Status, e.Detail, strings.Join(parts, "; "))
}

// Client calls the REST API with a bearer token.
// Reads go through a circuit breaker that fails fast after repeated transport or server failures.
// Writes are always sent so one bad stretch never drops the rest of a commit.
type Client struct {
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker

	mu    sync.RWMutex
	token string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithToken sets the bearer token replayed on every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithBreaker replaces the read circuit breaker.
func WithBreaker(cb *gobreaker.CircuitBreaker) Option {
	return func(c *Client) { c.breaker = cb }
}

// NewBreaker returns the default read breaker: it opens after more than three
// consecutive failures and lets one probe through after timeout.
func NewBreaker(name string, timeout time.Duration) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
		IsSuccessful: func(err error) bool {
			if errors.Is(err, ErrNotAuthenticated) {
				return true
			}
			var apiErr *APIError
			if errors.As(err, &apiErr) {
				return apiErr.Status < http.StatusInternalServerError
			}
			return err == nil
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("breaker_event", "event", "state_change", "breaker", name, "from", from.String(), "to", to.String())
		},
	})
}

// New returns a client for the API rooted at baseURL.
// PRE: baseURL is an absolute http(s) URL
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.breaker == nil {
		c.breaker = NewBreaker("api-reads", 5*time.Second)
	}
	return c
}

// Token returns the current bearer token.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// SetToken replaces the bearer token.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// do performs one request. A nil body sends no payload; a nil out discards the response.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any, auth bool) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var rdr io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		rdr = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, rdr)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth {
		token := c.Token()
		if token == "" {
			return ErrNotAuthenticated
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode, Detail: http.StatusText(resp.StatusCode)}
		var e wire.Error
		if json.NewDecoder(resp.Body).Decode(&e) == nil && e.Detail != "" {
			apiErr.Detail = e.Detail
			apiErr.Fields = e.Fields
		}
		return apiErr
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// get runs an authenticated GET through the circuit breaker.
// When the breaker is open the request is not sent and gobreaker.ErrOpenState is returned.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	_, err := c.breaker.Execute(func() (any, error) {
		return nil, c.do(ctx, http.MethodGet, path, query, nil, out, true)
	})
	return err
}
