package api

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/existflow/angple/internal/kv"
	"github.com/existflow/angple/internal/mock"
	"github.com/existflow/angple/internal/model"
	"github.com/existflow/angple/internal/recommend"
)

var now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return now }

func newClient(t *testing.T, store kv.Store, baseURL string, opts ...Option) *Client {
	t.Helper()
	opts = append([]Option{
		WithBaseURL(baseURL),
		WithClock(clock),
		WithMockDelays(0, 0),
		WithGenerator(mock.NewWithSource(rand.NewSource(1), clock)),
	}, opts...)

	c, err := New(context.Background(), store, opts...)
	require.NoError(t, err)
	return c
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestExpiredTokenIsOmittedAndCleared(t *testing.T) {
	ctx := context.Background()
	var gotAuth atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth.Store(r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, model.Response[model.FreePost]{Success: true, Data: model.FreePost{ID: "3"}})
	}))
	defer srv.Close()

	store := kv.NewMemory()
	c := newClient(t, store, srv.URL)
	require.NoError(t, c.SetToken(ctx, "tok", now.Add(time.Minute).Format(time.RFC3339)))

	_, err := c.GetFreePost(ctx, "3")
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok", gotAuth.Load())

	// move past the expiry
	c.now = func() time.Time { return now.Add(2 * time.Minute) }

	_, err = c.GetFreePost(ctx, "3")
	require.NoError(t, err)
	assert.Equal(t, "", gotAuth.Load())

	status := c.TokenStatus()
	assert.False(t, status.HasToken)
	assert.False(t, status.IsValid)

	_, ok, err := store.Get(ctx, KeyToken)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestExpiredTokenClearedOnLoad(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	require.NoError(t, store.SetMany(ctx, map[string]string{
		KeyToken:       "old",
		KeyTokenExpiry: now.Add(-time.Hour).Format(time.RFC3339),
	}))

	c := newClient(t, store, "http://unused")
	assert.False(t, c.TokenStatus().HasToken)

	_, ok, err := store.Get(ctx, KeyTokenExpiry)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestValidTokenRestoredOnLoad(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	require.NoError(t, store.SetMany(ctx, map[string]string{
		KeyToken:       "kept",
		KeyTokenExpiry: now.Add(time.Hour).Format(time.RFC3339),
	}))

	c := newClient(t, store, "http://unused")
	status := c.TokenStatus()
	assert.True(t, status.IsValid)
	require.NotNil(t, status.ExpiresAt)
	assert.True(t, status.ExpiresAt.Equal(now.Add(time.Hour)))
}

func TestRegisterPersistsToken(t *testing.T) {
	ctx := context.Background()
	expires := now.Add(30 * 24 * time.Hour).Format(time.RFC3339)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/register", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var req model.RegisterAPIKeyRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "dev@example.com", req.Email)

		writeJSON(w, http.StatusCreated, model.Response[model.APIKeyResponse]{
			Success: true,
			Data:    model.APIKeyResponse{ID: "k1", Name: req.Name, Email: req.Email, Token: "fresh", ExpiresAt: expires},
		})
	}))
	defer srv.Close()

	store := kv.NewMemory()
	c := newClient(t, store, srv.URL)

	key, err := c.RegisterAPIKey(ctx, "dev", "dev@example.com")
	require.NoError(t, err)
	assert.Equal(t, "fresh", key.Token)
	assert.True(t, c.TokenStatus().IsValid)

	v, ok, err := store.Get(ctx, KeyToken)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "fresh", v)

	reloaded := newClient(t, store, srv.URL)
	assert.True(t, reloaded.TokenStatus().IsValid)
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
		code    string
	}{
		{"error field", 404, `{"success":false,"error":"post not found","code":"NOT_FOUND"}`, "post not found", "NOT_FOUND"},
		{"message field", 400, `{"message":"limit too large"}`, "limit too large", ""},
		{"empty body", 500, ``, "request failed", ""},
		{"not json", 502, `<html>bad gateway</html>`, "request failed", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := newClient(t, kv.NewMemory(), srv.URL)
			_, err := c.GetFreePost(context.Background(), "1")

			var apiErr *Error
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.message, apiErr.Message)
			assert.Equal(t, tt.code, apiErr.Code)
		})
	}
}

func TestMockModePersistsAcrossClients(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()

	c := newClient(t, store, "http://unused")
	assert.False(t, c.IsMockMode())
	require.NoError(t, c.SetMockMode(ctx, true))

	assert.True(t, newClient(t, store, "http://unused").IsMockMode())

	require.NoError(t, c.SetMockMode(ctx, false))
	assert.False(t, newClient(t, store, "http://unused", WithDefaultMock(true)).IsMockMode())
}

func TestDefaultMockWhenNothingPersisted(t *testing.T) {
	c := newClient(t, kv.NewMemory(), "http://unused", WithDefaultMock(true))
	assert.True(t, c.IsMockMode())
}

func TestMockModeSkipsNetwork(t *testing.T) {
	ctx := context.Background()
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer srv.Close()

	c := newClient(t, kv.NewMemory(), srv.URL, WithDefaultMock(true))

	posts, err := c.GetFreePosts(ctx, 2, 15)
	require.NoError(t, err)
	assert.Len(t, posts.Items, 15)
	assert.Equal(t, 7, posts.TotalPages)

	post, err := c.GetFreePost(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, "42", post.ID)

	comments, err := c.GetFreeComments(ctx, "42", 1, 5)
	require.NoError(t, err)
	assert.Len(t, comments.Items, 5)

	trend, err := c.GetAITrend(ctx, recommend.Period6H)
	require.NoError(t, err)
	assert.Equal(t, "6h", trend.Period)

	menus, err := c.GetMenus(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, menus)

	assert.Equal(t, int32(0), atomic.LoadInt32(&hits))
}

func TestMockDelayHonoursCancel(t *testing.T) {
	c := newClient(t, kv.NewMemory(), "http://unused",
		WithDefaultMock(true), WithMockDelays(time.Hour, time.Hour))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.GetFreePosts(ctx, 1, 10)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLivePostsSendsPaging(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/free", r.URL.Path)
		assert.Equal(t, "3", r.URL.Query().Get("page"))
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		writeJSON(w, http.StatusOK, model.Response[model.Page[model.FreePost]]{
			Success: true,
			Data:    model.Page[model.FreePost]{Items: []model.FreePost{{ID: "21"}}, Total: 21, Page: 3, Limit: 10, TotalPages: 3},
		})
	}))
	defer srv.Close()

	c := newClient(t, kv.NewMemory(), srv.URL)
	page, err := c.GetFreePosts(context.Background(), 3, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, page.TotalPages)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "21", page.Items[0].ID)
}

func TestLiveTrendNeedsToken(t *testing.T) {
	c := newClient(t, kv.NewMemory(), "http://unused")
	_, err := c.GetAITrend(context.Background(), recommend.Period1H)
	assert.ErrorIs(t, err, ErrTokenMissing)

	_, err = c.GetAITrend(context.Background(), "5h")
	assert.ErrorIs(t, err, recommend.ErrUnknownPeriod)
}

func TestLogoutClearsStore(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	c := newClient(t, store, "http://unused")

	require.NoError(t, c.SetToken(ctx, "tok", now.Add(time.Hour).Format(time.RFC3339)))
	require.NoError(t, c.Logout(ctx))

	assert.False(t, c.TokenStatus().HasToken)
	_, ok, err := store.Get(ctx, KeyToken)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Error(t, c.SetToken(ctx, "tok", "tomorrow"))
}

func TestSuccessWithoutDataIsAnError(t *testing.T) {
	for _, body := range []string{`{"success":true}`, `{"success":true,"data":null}`} {
		t.Run(body, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(body))
			}))
			defer srv.Close()

			ctx := context.Background()
			store := kv.NewMemory()
			c := newClient(t, store, srv.URL)

			posts, err := c.GetFreePosts(ctx, 1, 10)
			assert.ErrorIs(t, err, ErrNoData)
			assert.Nil(t, posts)

			post, err := c.GetFreePost(ctx, "1")
			assert.ErrorIs(t, err, ErrNoData)
			assert.Nil(t, post)

			comments, err := c.GetFreeComments(ctx, "1", 1, 10)
			assert.ErrorIs(t, err, ErrNoData)
			assert.Nil(t, comments)

			require.NoError(t, c.SetToken(ctx, "tok", now.Add(time.Hour).Format(time.RFC3339)))
			trend, err := c.GetAITrend(ctx, recommend.Period1H)
			assert.ErrorIs(t, err, ErrNoData)
			assert.Nil(t, trend)

			key, err := c.RegisterAPIKey(ctx, "dev", "dev@example.com")
			assert.ErrorIs(t, err, ErrNoData)
			assert.Nil(t, key)

			saved, ok, err := store.Get(ctx, KeyToken)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "tok", saved)
		})
	}
}
