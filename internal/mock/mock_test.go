package mock

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/existflow/angple/internal/recommend"
)

var fixedNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestGenerator() *Generator {
	return NewWithSource(rand.NewSource(42), func() time.Time { return fixedNow })
}

func TestFreePostsPagination(t *testing.T) {
	g := newTestGenerator()

	tests := []struct {
		page, limit   int
		wantLen       int
		wantTotalPage int
		wantFirstID   string
	}{
		{1, 20, 20, 5, "1"},
		{5, 20, 20, 5, "81"},
		{6, 20, 0, 5, ""},
		{4, 30, 10, 4, "91"},
		{1, 7, 7, 15, "1"},
		{0, 0, 20, 5, "1"},
	}

	for _, tt := range tests {
		p := g.FreePosts(tt.page, tt.limit)
		assert.LessOrEqual(t, len(p.Items), p.Limit)
		assert.Len(t, p.Items, tt.wantLen)
		assert.Equal(t, Total, p.Total)
		assert.Equal(t, tt.wantTotalPage, p.TotalPages)
		if tt.wantFirstID != "" {
			assert.Equal(t, tt.wantFirstID, p.Items[0].ID)
		}
	}
}

func TestFreePostIsDerivedFromID(t *testing.T) {
	a := NewWithSource(rand.NewSource(1), func() time.Time { return fixedNow })
	b := NewWithSource(rand.NewSource(2), func() time.Time { return fixedNow })

	pa := a.FreePosts(1, 13).Items[12]
	pb := b.FreePosts(1, 13).Items[12]

	assert.Equal(t, "13", pa.ID)
	assert.Equal(t, pa.Title, pb.Title)
	assert.Equal(t, pa.Author, pb.Author)
	assert.Equal(t, pa.Tags, pb.Tags)
	assert.Equal(t, "user_3", pa.AuthorID)
	assert.Equal(t, fixedNow.Add(-26*time.Hour).Format(time.RFC3339), pa.CreatedAt)

	assert.GreaterOrEqual(t, pa.Views, 50)
	assert.Less(t, pa.Views, 1050)
	assert.Less(t, pa.Likes, 100)
	assert.Less(t, pa.CommentsCount, 50)
}

func TestFreePostDetail(t *testing.T) {
	g := newTestGenerator()

	post := g.FreePost("7")
	assert.Equal(t, "7", post.ID)
	assert.Contains(t, post.Content, "# "+post.Title)
	assert.Contains(t, post.Content, "## Conclusion")

	for _, bad := range []string{"abc", "", "-3", "0"} {
		assert.Equal(t, "1", g.FreePost(bad).ID, bad)
	}
}

func TestFreeCommentsThread(t *testing.T) {
	g := newTestGenerator()

	page := g.FreeComments(1, 10)
	require.Len(t, page.Items, 10)
	assert.Equal(t, 10, page.TotalPages)

	root := page.Items[0]
	assert.Equal(t, "1", root.ID)
	assert.Equal(t, 0, root.Depth)
	assert.Empty(t, root.ParentID)

	for depth := 1; depth <= 4; depth++ {
		reply := page.Items[depth]
		assert.Equal(t, depth, reply.Depth)
		assert.Equal(t, root.ID, reply.ParentID)
	}
	assert.Equal(t, root.Author, page.Items[2].Author)
	assert.Equal(t, replyAuthor, page.Items[1].Author)

	next := page.Items[5]
	assert.Equal(t, 0, next.Depth)
	assert.Equal(t, "2", next.ID)
}

func TestPagesFarPastTheEndAreEmpty(t *testing.T) {
	g := newTestGenerator()

	for _, page := range []int{1 << 62, math.MaxInt} {
		posts := g.FreePosts(page, 4)
		assert.Empty(t, posts.Items)
		assert.Equal(t, page, posts.Page)
		assert.Equal(t, 25, posts.TotalPages)

		comments := g.FreeComments(page, 4)
		assert.Empty(t, comments.Items)
		assert.Equal(t, 25, comments.TotalPages)
	}

	all := g.FreePosts(1, math.MaxInt)
	assert.Len(t, all.Items, Total)
	assert.Equal(t, 1, all.TotalPages)
	assert.Len(t, g.FreeComments(1, math.MaxInt).Items, Total)
}

func TestFreeCommentsPagesNeverExceedLimit(t *testing.T) {
	g := newTestGenerator()

	seen := 0
	for page := 1; ; page++ {
		p := g.FreeComments(page, 3)
		assert.LessOrEqual(t, len(p.Items), 3)
		if len(p.Items) == 0 {
			break
		}
		seen += len(p.Items)
	}
	assert.Equal(t, Total, seen)

	assert.Len(t, g.FreeComments(1, 0).Items, DefaultCommentLimit)
}

func TestTrend(t *testing.T) {
	for _, p := range recommend.Periods() {
		trend, err := Trend(p)
		require.NoError(t, err, p)
		assert.Equal(t, string(p), trend.Period)
		assert.NotEmpty(t, trend.Keywords)
		assert.NotEmpty(t, trend.Summary)
	}

	_, err := Trend("2h")
	assert.ErrorIs(t, err, recommend.ErrUnknownPeriod)
}

func TestMenus(t *testing.T) {
	menus := Menus()
	require.NotEmpty(t, menus)
	for _, m := range menus {
		assert.Equal(t, 0, m.Depth)
		for _, c := range m.Children {
			assert.Equal(t, m.ID, c.ParentID)
			assert.Equal(t, 1, c.Depth)
		}
	}
}
