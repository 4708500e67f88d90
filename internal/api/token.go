package api

import (
	"context"
	"fmt"
	"time"

	"github.com/existflow/angple/internal/logger"
	"github.com/existflow/angple/internal/model"
)

func (c *Client) loadToken(ctx context.Context) error {
	token, hasToken, err := c.store.Get(ctx, KeyToken)
	if err != nil {
		return fmt.Errorf("failed to load token: %w", err)
	}
	expiry, hasExpiry, err := c.store.Get(ctx, KeyTokenExpiry)
	if err != nil {
		return fmt.Errorf("failed to load token expiry: %w", err)
	}
	if !hasToken || !hasExpiry {
		return nil
	}

	expiresAt, err := time.Parse(time.RFC3339, expiry)
	if err != nil || !expiresAt.After(c.now()) {
		c.log.Info("Stored token expired, clearing")
		return c.clearToken(ctx)
	}

	c.token = token
	c.expiresAt = expiresAt
	return nil
}

func (c *Client) saveToken(ctx context.Context, token, expiresAt string) error {
	expiry, err := time.Parse(time.RFC3339, expiresAt)
	if err != nil {
		return fmt.Errorf("invalid token expiry %q: %w", expiresAt, err)
	}

	if err := c.store.SetMany(ctx, map[string]string{
		KeyToken:       token,
		KeyTokenExpiry: expiry.UTC().Format(time.RFC3339),
	}); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}

	c.mu.Lock()
	c.token = token
	c.expiresAt = expiry
	c.mu.Unlock()

	c.log.Info("Token saved", logger.F("expires_at", expiry.Format(time.RFC3339)))
	return nil
}

func (c *Client) clearToken(ctx context.Context) error {
	c.mu.Lock()
	c.token = ""
	c.expiresAt = time.Time{}
	c.mu.Unlock()

	if err := c.store.Delete(ctx, KeyToken, KeyTokenExpiry); err != nil {
		return fmt.Errorf("failed to clear token: %w", err)
	}
	return nil
}

func (c *Client) tokenValid() bool {
	return c.token != "" && c.expiresAt.After(c.now())
}

// bearer returns the token to send, or "" when there is none. A cached
// token past its expiry is removed from memory and the store.
func (c *Client) bearer(ctx context.Context) (string, error) {
	c.mu.Lock()
	token, valid := c.token, c.tokenValid()
	c.mu.Unlock()

	if token == "" {
		return "", nil
	}
	if !valid {
		c.log.Info("Token expired, clearing")
		return "", c.clearToken(ctx)
	}
	return token, nil
}

// TokenStatus describes the cached token
func (c *Client) TokenStatus() model.TokenStatus {
	c.mu.Lock()
	defer c.mu.Unlock()

	status := model.TokenStatus{
		HasToken: c.token != "",
		IsValid:  c.tokenValid(),
	}
	if !c.expiresAt.IsZero() {
		expiresAt := c.expiresAt
		status.ExpiresAt = &expiresAt
	}
	return status
}

// SetToken stores a token obtained elsewhere. expiresAt is RFC 3339.
func (c *Client) SetToken(ctx context.Context, token, expiresAt string) error {
	return c.saveToken(ctx, token, expiresAt)
}

// Logout forgets the cached token
func (c *Client) Logout(ctx context.Context) error {
	if err := c.clearToken(ctx); err != nil {
		return err
	}
	c.log.Info("Logged out")
	return nil
}
