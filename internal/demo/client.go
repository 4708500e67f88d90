// Package demo is a client for the demo backend's board endpoints.
package demo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/existflow/angple/internal/logger"
	"github.com/existflow/angple/internal/model"
)

// Error is a non-success response from the demo backend
type Error struct {
	Status  int
	Message string
	Hint    string
}

func (e *Error) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("%s (%d, %s)", e.Message, e.Status, e.Hint)
	}
	return fmt.Sprintf("%s (%d)", e.Message, e.Status)
}

// Health is the /health payload
type Health struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Version   string `json:"version"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// Client talks to the demo backend
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logger.Logger
}

// NewClient creates a client for baseURL, e.g. http://localhost:8001
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		log:        logger.WithFields(logger.F("component", "demo")),
	}
}

func (c *Client) call(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	c.log.Debug("Demo request", logger.F("method", method), logger.F("path", path), logger.F("status", resp.StatusCode))

	if resp.StatusCode >= 400 {
		var failure struct {
			Message string `json:"message"`
			Error   string `json:"error"`
			Hint    string `json:"hint"`
		}
		_ = json.Unmarshal(data, &failure)

		msg := failure.Message
		if msg == "" {
			msg = failure.Error
		}
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return &Error{Status: resp.StatusCode, Message: msg, Hint: failure.Hint}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// Health checks the server
func (c *Client) Health(ctx context.Context) (*Health, error) {
	var h Health
	if err := c.call(ctx, http.MethodGet, "/health", nil, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

// Login signs in with the development account
func (c *Client) Login(ctx context.Context, email, password string) (*model.LoginResponse, error) {
	var resp model.LoginResponse
	err := c.call(ctx, http.MethodPost, "/api/auth/login",
		model.LoginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListPosts returns post summaries, newest first
func (c *Client) ListPosts(ctx context.Context) ([]model.PostSummary, error) {
	var resp struct {
		Posts []model.PostSummary `json:"posts"`
		Total int                 `json:"total"`
	}
	if err := c.call(ctx, http.MethodGet, "/api/posts", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Posts, nil
}

// GetPost reads a post; the server counts it as a view
func (c *Client) GetPost(ctx context.Context, id int) (*model.Post, error) {
	var resp struct {
		Post *model.Post `json:"post"`
	}
	if err := c.call(ctx, http.MethodGet, fmt.Sprintf("/api/posts/%d", id), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Post, nil
}

// CreatePost writes a new post
func (c *Client) CreatePost(ctx context.Context, in model.NewPost) (*model.Post, error) {
	var resp struct {
		Post *model.Post `json:"post"`
	}
	if err := c.call(ctx, http.MethodPost, "/api/posts", in, &resp); err != nil {
		return nil, err
	}
	return resp.Post, nil
}

// AddComment comments on a post
func (c *Client) AddComment(ctx context.Context, postID int, in model.NewComment) (*model.Comment, error) {
	var resp struct {
		Comment *model.Comment `json:"comment"`
	}
	if err := c.call(ctx, http.MethodPost, fmt.Sprintf("/api/posts/%d/comments", postID), in, &resp); err != nil {
		return nil, err
	}
	return resp.Comment, nil
}
