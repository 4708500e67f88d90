package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/existflow/angple/internal/mock"
	"github.com/existflow/angple/internal/model"
	"github.com/existflow/angple/internal/recommend"
)

// Default page sizes for live list calls
const (
	DefaultPostLimit    = 10
	DefaultCommentLimit = 50
)

// RegisterAPIKey registers a key for email and stores the returned token
func (c *Client) RegisterAPIKey(ctx context.Context, name, email string) (*model.APIKeyResponse, error) {
	key, err := do[*model.APIKeyResponse](ctx, c, http.MethodPost, "/auth/register",
		model.RegisterAPIKeyRequest{Name: name, Email: email})
	if err != nil {
		return nil, err
	}

	if err := c.saveToken(ctx, key.Token, key.ExpiresAt); err != nil {
		return nil, err
	}
	return key, nil
}

// RefreshToken issues a new token for a registered email and stores it
func (c *Client) RefreshToken(ctx context.Context, email string) (*model.APIKeyResponse, error) {
	key, err := do[*model.APIKeyResponse](ctx, c, http.MethodPost, "/auth/token",
		model.RefreshTokenRequest{Email: email})
	if err != nil {
		return nil, err
	}

	if err := c.saveToken(ctx, key.Token, key.ExpiresAt); err != nil {
		return nil, err
	}
	return key, nil
}

// GetFreePosts lists free-board posts
func (c *Client) GetFreePosts(ctx context.Context, page, limit int) (*model.Page[model.FreePost], error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = DefaultPostLimit
	}

	if c.IsMockMode() {
		if err := wait(ctx, c.listDelay); err != nil {
			return nil, err
		}
		p := c.gen.FreePosts(page, limit)
		return &p, nil
	}

	q := url.Values{}
	q.Set("page", fmt.Sprint(page))
	q.Set("limit", fmt.Sprint(limit))
	return do[*model.Page[model.FreePost]](ctx, c, http.MethodGet, "/free?"+q.Encode(), nil)
}

// GetFreePost fetches one free-board post
func (c *Client) GetFreePost(ctx context.Context, id string) (*model.FreePost, error) {
	if c.IsMockMode() {
		if err := wait(ctx, c.detailDelay); err != nil {
			return nil, err
		}
		p := c.gen.FreePost(id)
		return &p, nil
	}

	return do[*model.FreePost](ctx, c, http.MethodGet, "/free/"+url.PathEscape(id), nil)
}

// GetFreeComments lists the comments of a post. Mock data is the same
// thread for every post.
func (c *Client) GetFreeComments(ctx context.Context, postID string, page, limit int) (*model.Page[model.FreeComment], error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = DefaultCommentLimit
	}

	if c.IsMockMode() {
		if err := wait(ctx, c.listDelay); err != nil {
			return nil, err
		}
		p := c.gen.FreeComments(page, limit)
		return &p, nil
	}

	q := url.Values{}
	q.Set("page", fmt.Sprint(page))
	q.Set("limit", fmt.Sprint(limit))
	endpoint := fmt.Sprintf("/free/%s/comments?%s", url.PathEscape(postID), q.Encode())
	return do[*model.Page[model.FreeComment]](ctx, c, http.MethodGet, endpoint, nil)
}

// GetAITrend fetches the AI trend card for a period. The live endpoint
// needs a valid token.
func (c *Client) GetAITrend(ctx context.Context, period recommend.Period) (*model.TrendData, error) {
	if !period.Valid() {
		return nil, fmt.Errorf("%w: %q", recommend.ErrUnknownPeriod, period)
	}

	if c.IsMockMode() {
		if err := wait(ctx, c.detailDelay); err != nil {
			return nil, err
		}
		return mock.Trend(period)
	}

	token, err := c.bearer(ctx)
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, ErrTokenMissing
	}
	return do[*model.TrendData](ctx, c, http.MethodGet, "/recommended/ai/"+string(period), nil)
}

// GetMenus fetches the sidebar menu tree
func (c *Client) GetMenus(ctx context.Context) ([]model.MenuItem, error) {
	if c.IsMockMode() {
		if err := wait(ctx, c.listDelay); err != nil {
			return nil, err
		}
		return mock.Menus(), nil
	}

	return do[[]model.MenuItem](ctx, c, http.MethodGet, "/menus", nil)
}
