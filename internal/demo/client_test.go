package demo

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/existflow/angple/internal/config"
	"github.com/existflow/angple/internal/model"
	"github.com/existflow/angple/server"
	"github.com/existflow/angple/server/store"
)

func newBackend(t *testing.T) *Client {
	t.Helper()
	repo, err := store.OpenFile(t.TempDir())
	require.NoError(t, err)

	srv, err := server.New(config.ServerConfig{
		JWTSecret:     "test",
		TokenTTL:      "1h",
		AdminEmail:    "admin@damoang.dev",
		AdminPassword: "damoang123",
	}, repo)
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Router())
	t.Cleanup(func() {
		ts.Close()
		_ = srv.Close()
	})
	return NewClient(ts.URL + "/")
}

func TestBoardRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := newBackend(t)

	h, err := c.Health(ctx)
	require.NoError(t, err)
	assert.Equal(t, "healthy", h.Status)

	post, err := c.CreatePost(ctx, model.NewPost{Title: "hello", Content: "world", Author: "kim"})
	require.NoError(t, err)
	assert.Equal(t, 1, post.ID)

	comment, err := c.AddComment(ctx, post.ID, model.NewComment{Author: "lee", Content: "nice"})
	require.NoError(t, err)
	assert.Equal(t, 1, comment.ID)

	posts, err := c.ListPosts(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, 1, posts[0].CommentCount)

	got, err := c.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.ViewCount)
	require.Len(t, got.Comments, 1)
}

func TestErrorsCarryServerMessage(t *testing.T) {
	ctx := context.Background()
	c := newBackend(t)

	_, err := c.CreatePost(ctx, model.NewPost{Title: "no author"})
	var demoErr *Error
	require.True(t, errors.As(err, &demoErr))
	assert.Equal(t, 400, demoErr.Status)
	assert.Contains(t, demoErr.Message, "required")

	_, err = c.GetPost(ctx, 77)
	require.True(t, errors.As(err, &demoErr))
	assert.Equal(t, 404, demoErr.Status)

	_, err = c.Login(ctx, "admin@damoang.dev", "nope")
	require.True(t, errors.As(err, &demoErr))
	assert.Equal(t, 401, demoErr.Status)
	assert.Contains(t, demoErr.Hint, "admin@damoang.dev")

	resp, err := c.Login(ctx, "admin@damoang.dev", "damoang123")
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Token)
}
