// Package api is the client for the community API. It switches between
// live HTTP calls and generated mock data and owns the bearer token's
// lifecycle.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/existflow/angple/internal/kv"
	"github.com/existflow/angple/internal/logger"
	"github.com/existflow/angple/internal/mock"
	"github.com/existflow/angple/internal/model"
)

// DefaultBaseURL is the production API root
const DefaultBaseURL = "https://api.ang.dev/api/v1"

// Keys under which the client persists its state
const (
	KeyToken       = "damoang_api_token"
	KeyTokenExpiry = "damoang_api_token_expiry"
	KeyUseMock     = "damoang_use_mock"
)

// Artificial latency of mock reads
const (
	DefaultListDelay   = 300 * time.Millisecond
	DefaultDetailDelay = 200 * time.Millisecond
)

// Client talks to the community API
type Client struct {
	baseURL     string
	httpClient  *http.Client
	store       kv.Store
	gen         *mock.Generator
	now         func() time.Time
	listDelay   time.Duration
	detailDelay time.Duration
	defaultMock bool
	log         *logger.Logger

	mu        sync.Mutex
	token     string
	expiresAt time.Time
	useMock   bool
}

// Option configures a Client
type Option func(*Client)

// WithBaseURL sets the API root, e.g. https://api.ang.dev/api/v1
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(url, "/")
	}
}

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithDefaultMock sets the mode used when no flag has been persisted
func WithDefaultMock(enabled bool) Option {
	return func(c *Client) {
		c.defaultMock = enabled
	}
}

// WithClock replaces time.Now for token expiry checks
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

// WithMockDelays overrides the artificial latency of mock reads
func WithMockDelays(list, detail time.Duration) Option {
	return func(c *Client) {
		c.listDelay = list
		c.detailDelay = detail
	}
}

// WithGenerator sets the mock data source
func WithGenerator(g *mock.Generator) Option {
	return func(c *Client) {
		c.gen = g
	}
}

// New creates a client backed by store and restores the persisted token
// and mode flag. An expired token found in the store is removed.
func New(ctx context.Context, store kv.Store, opts ...Option) (*Client, error) {
	c := &Client{
		baseURL:     DefaultBaseURL,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		store:       store,
		now:         time.Now,
		listDelay:   DefaultListDelay,
		detailDelay: DefaultDetailDelay,
		log:         logger.WithFields(logger.F("component", "api")),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.gen == nil {
		c.gen = mock.New()
	}

	if err := c.loadToken(ctx); err != nil {
		return nil, err
	}
	if err := c.loadMode(ctx); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Client) loadMode(ctx context.Context) error {
	c.useMock = c.defaultMock

	v, ok, err := c.store.Get(ctx, KeyUseMock)
	if err != nil {
		return fmt.Errorf("failed to load mock flag: %w", err)
	}
	if ok {
		c.useMock = v == "true"
	}
	return nil
}

// SetMockMode switches between mock and live data and persists the choice
func (c *Client) SetMockMode(ctx context.Context, enabled bool) error {
	c.mu.Lock()
	c.useMock = enabled
	c.mu.Unlock()

	if err := c.store.Set(ctx, KeyUseMock, fmt.Sprintf("%t", enabled)); err != nil {
		return fmt.Errorf("failed to save mock flag: %w", err)
	}
	c.log.Info("Mock mode changed", logger.F("enabled", enabled))
	return nil
}

// IsMockMode reports whether reads return generated data
func (c *Client) IsMockMode() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.useMock
}

// BaseURL returns the API root
func (c *Client) BaseURL() string {
	return c.baseURL
}

// request sends one API call. The bearer token is attached only while it
// is valid; a token that has run out is cleared first.
func (c *Client) request(ctx context.Context, method, endpoint string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	token, err := c.bearer(ctx)
	if err != nil {
		return err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("API request failed", logger.F("method", method), logger.F("endpoint", endpoint), logger.F("error", err.Error()))
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer resp.Body.Close()

	c.log.Debug("API request",
		logger.F("method", method),
		logger.F("endpoint", endpoint),
		logger.F("status", resp.StatusCode),
		logger.F("duration_ms", time.Since(start).Milliseconds()),
	)

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return handleAPIError(resp, respBody)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// do sends a request and unwraps the response envelope. A missing or null
// data field is ErrNoData, so callers never see a nil result without an
// error.
func do[T any](ctx context.Context, c *Client, method, endpoint string, body interface{}) (T, error) {
	var zero T
	var env model.Response[json.RawMessage]
	if err := c.request(ctx, method, endpoint, body, &env); err != nil {
		return zero, err
	}

	raw := bytes.TrimSpace(env.Data)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		c.log.Warn("Empty response data", logger.F("endpoint", endpoint))
		return zero, fmt.Errorf("%s %s: %w", method, endpoint, ErrNoData)
	}

	var data T
	if err := json.Unmarshal(raw, &data); err != nil {
		return zero, fmt.Errorf("failed to decode response data: %w", err)
	}
	return data, nil
}

// wait blocks for d or until ctx is done
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
