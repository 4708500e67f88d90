package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/existflow/angple/internal/config"
	"github.com/existflow/angple/internal/model"
	"github.com/existflow/angple/server/store"
)

func testConfig() config.ServerConfig {
	return config.ServerConfig{
		JWTSecret:     "test-secret",
		TokenTTL:      "1h",
		AdminEmail:    "admin@damoang.dev",
		AdminPassword: "damoang123",
	}
}

func newTestServer(t *testing.T, cfg config.ServerConfig) *Server {
	t.Helper()
	repo, err := store.OpenFile(t.TempDir())
	require.NoError(t, err)

	s, err := New(cfg, repo)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func do(t *testing.T, s *Server, method, path, body string, headers ...string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	var out map[string]interface{}
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	}
	return rec, out
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, testConfig())
	rec, body := do(t, s, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, ServiceName, body["service"])
	assert.Equal(t, Version, body["version"])
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestStatusAndInfo(t *testing.T) {
	s := newTestServer(t, testConfig())

	rec, body := do(t, s, http.MethodGet, "/api/status", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "running", body["status"])
	assert.Contains(t, body, "memory")

	rec, body = do(t, s, http.MethodGet, "/api", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, body["endpoints"])
}

func TestUnknownRouteListsEndpoints(t *testing.T) {
	s := newTestServer(t, testConfig())
	rec, body := do(t, s, http.MethodGet, "/nope", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "404 Not Found", body["error"])
	assert.Contains(t, body["message"], "GET /nope")
	assert.Len(t, body["availableEndpoints"], len(availableEndpoints))
}

func TestPostLifecycle(t *testing.T) {
	s := newTestServer(t, testConfig())

	rec, body := do(t, s, http.MethodPost, "/api/posts", `{"title":"hi","content":"there"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, false, body["success"])

	rec, body = do(t, s, http.MethodPost, "/api/posts", `{"title":"first","content":"a","author":"kim"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	post := body["post"].(map[string]interface{})
	assert.Equal(t, float64(1), post["id"])

	do(t, s, http.MethodPost, "/api/posts", `{"title":"second","content":"b","author":"lee"}`)

	rec, body = do(t, s, http.MethodGet, "/api/posts", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(2), body["total"])
	first := body["posts"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "second", first["title"])
	assert.Equal(t, float64(0), first["commentCount"])

	_, body = do(t, s, http.MethodGet, "/api/posts/1", "")
	_, body = do(t, s, http.MethodGet, "/api/posts/1", "")
	assert.Equal(t, float64(2), body["post"].(map[string]interface{})["viewCount"])

	rec, _ = do(t, s, http.MethodGet, "/api/posts/42", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec, _ = do(t, s, http.MethodGet, "/api/posts/abc", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestComments(t *testing.T) {
	s := newTestServer(t, testConfig())
	do(t, s, http.MethodPost, "/api/posts", `{"title":"t","content":"c","author":"a"}`)

	rec, _ := do(t, s, http.MethodPost, "/api/posts/1/comments", `{"author":"park"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec, _ = do(t, s, http.MethodPost, "/api/posts/1/comments", `{"content":"hello"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = do(t, s, http.MethodPost, "/api/posts/9/comments", `{"author":"park","content":"hello"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	last := 0.0
	for i := 0; i < 3; i++ {
		rec, body := do(t, s, http.MethodPost, "/api/posts/1/comments", `{"author":"park","content":"hello"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		id := body["comment"].(map[string]interface{})["id"].(float64)
		assert.Greater(t, id, last)
		last = id
	}
}

type brokenRepo struct{ store.Repository }

func (brokenRepo) ListPosts(context.Context) ([]model.Post, error) {
	return nil, errors.New("disk on fire")
}

func (brokenRepo) Close() error { return nil }

func TestRepositoryFailureIs500(t *testing.T) {
	s, err := New(testConfig(), brokenRepo{})
	require.NoError(t, err)

	rec, body := do(t, s, http.MethodGet, "/api/posts", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "disk on fire", body["error"])
	assert.NotEmpty(t, body["message"])
}

func TestLogin(t *testing.T) {
	s := newTestServer(t, testConfig())

	rec, body := do(t, s, http.MethodPost, "/api/auth/login", `{"email":"admin@damoang.dev","password":"damoang123"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["token"])
	assert.Equal(t, "admin", body["user"].(map[string]interface{})["role"])

	rec, body = do(t, s, http.MethodPost, "/api/auth/login", `{"email":"admin@damoang.dev","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["hint"], "admin@damoang.dev")
}

func registerKey(t *testing.T, s *Server, email string) model.APIKeyResponse {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register",
		strings.NewReader(`{"name":"dev","email":"`+email+`"}`))
	req.Header.Set("Content-Type", "application/json")
	s.Router().ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var env model.Response[model.APIKeyResponse]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.True(t, env.Success)
	return env.Data
}

func TestRegisterAndRefresh(t *testing.T) {
	s := newTestServer(t, testConfig())

	rec, body := do(t, s, http.MethodPost, "/api/v1/auth/register", `{"name":"dev"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_EMAIL", body["code"])

	key := registerKey(t, s, "dev@example.com")
	assert.NotEmpty(t, key.Token)
	assert.NotEmpty(t, key.ID)
	expires, err := time.Parse(time.RFC3339, key.ExpiresAt)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expires, time.Minute)

	rec, body = do(t, s, http.MethodPost, "/api/v1/auth/token", `{"email":"ghost@example.com"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, false, body["success"])
	assert.NotEmpty(t, body["error"])

	rec, body = do(t, s, http.MethodPost, "/api/v1/auth/token", `{"email":"dev@example.com"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, key.ID, body["data"].(map[string]interface{})["id"])
}

func TestTrendRequiresToken(t *testing.T) {
	s := newTestServer(t, testConfig())

	rec, body := do(t, s, http.MethodGet, "/api/v1/recommended/ai/6h", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "authorization required", body["error"])

	key := registerKey(t, s, "dev@example.com")
	auth := "Bearer " + key.Token

	rec, body = do(t, s, http.MethodGet, "/api/v1/recommended/ai/6hours", "", "Authorization", auth)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "6h", body["data"].(map[string]interface{})["period"])

	rec, _ = do(t, s, http.MethodGet, "/api/v1/recommended/ai/2h", "", "Authorization", auth)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, body = do(t, s, http.MethodGet, "/api/v1/recommended/ai/6h", "", "Authorization", "Bearer garbage")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "INVALID_TOKEN", body["code"])

	s.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	rec, body = do(t, s, http.MethodGet, "/api/v1/recommended/ai/6h", "", "Authorization", auth)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "TOKEN_EXPIRED", body["code"])
}

func TestFreeBoard(t *testing.T) {
	s := newTestServer(t, testConfig())

	rec, body := do(t, s, http.MethodGet, "/api/v1/free?page=2&limit=30", "")
	require.Equal(t, http.StatusOK, rec.Code)
	data := body["data"].(map[string]interface{})
	assert.Len(t, data["items"], 30)
	assert.Equal(t, float64(4), data["total_pages"])

	rec, _ = do(t, s, http.MethodGet, "/api/v1/free?limit=0", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, body = do(t, s, http.MethodGet, "/api/v1/free/12", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "12", body["data"].(map[string]interface{})["id"])

	rec, _ = do(t, s, http.MethodGet, "/api/v1/free/101", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, body = do(t, s, http.MethodGet, "/api/v1/free/12/comments?limit=5", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, body["data"].(map[string]interface{})["items"], 5)

	rec, body = do(t, s, http.MethodGet, "/api/v1/menus", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, body["data"])
}

func TestFreeBoardRejectsOutOfRangePages(t *testing.T) {
	s := newTestServer(t, testConfig())

	for _, path := range []string{
		"/api/v1/free?page=101",
		"/api/v1/free/1/comments?page=4611686018427387904&limit=4",
		"/api/v1/free/1/comments?page=99999999999999999999",
	} {
		rec, body := do(t, s, http.MethodGet, path, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, path)
		assert.Equal(t, "INVALID_PARAMETER", body["code"], path)
	}

	rec, body := do(t, s, http.MethodGet, "/api/v1/free/1/comments?page=100&limit=1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, body["data"].(map[string]interface{})["items"], 1)

	rec, body = do(t, s, http.MethodGet, "/api/v1/free?page=50&limit=4", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, body["data"].(map[string]interface{})["items"])
}

func TestThemeCSS(t *testing.T) {
	s := newTestServer(t, testConfig())

	rec, _ := do(t, s, http.MethodGet, "/themes/modern/theme.css", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/css")
	assert.Contains(t, rec.Body.String(), "--theme-accent")

	rec, _ = do(t, s, http.MethodGet, "/themes/neon/theme.css", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit = 1
	s := newTestServer(t, cfg)

	rec, _ := do(t, s, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	rec, _ = do(t, s, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}
