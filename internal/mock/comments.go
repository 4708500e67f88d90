package mock

import (
	"fmt"
	"strconv"
	"time"

	"github.com/existflow/angple/internal/model"
)

var commentContents = []string{
	"Impressive that you used SvelteKit 5! I wonder how fast prerendering really is.\n\nDid any page load get 30% faster?",
	"I am on a similar project and autocomplete while typing was hard. Which UI library did you use?",
	"Have you tried stores instead of load functions for async data fetching?",
	"You said the user experience improved. Did you run A/B tests or collect feedback with a survey?",
	"Glad learning the new tech was fun. What impressed you most in SvelteKit 5?",
}

// replies form the thread under the first root comment. A non-zero
// author means the second participant, zero means the root's author.
var replies = []struct {
	author  int
	content string
}{
	{1, "First page load dropped from about 2.8s to 1.9s, thanks to prerendering and endpoint tuning."},
	{0, "Impressive numbers. Which prerendered page improved the most?\n\nAnd which endpoint technique helped the most?"},
	{1, "Prerendered static pages put zero load on the server and ship straight from the CDN.\n\nFor endpoints, start with cache headers and trimming the payload. Those two alone give 30-40% faster loads."},
	{0, "Wow, great info. Thanks!"},
}

const (
	replyAuthor   = "FullstackDev"
	replyAuthorID = "user_1000"
)

func (g *Generator) rootComment(n int) model.FreeComment {
	created := g.now().Add(-time.Duration(n*2) * time.Hour).UTC().Format(time.RFC3339)
	return model.FreeComment{
		ID:        strconv.Itoa(n + 1),
		Content:   commentContents[n%len(commentContents)],
		Author:    authors[n%len(authors)],
		AuthorID:  fmt.Sprintf("user_%d", n%10),
		Likes:     g.intn(100),
		Depth:     0,
		CreatedAt: created,
		UpdatedAt: created,
	}
}

func (g *Generator) reply(root model.FreeComment, j int) model.FreeComment {
	r := replies[j]
	author, authorID := root.Author, root.AuthorID
	if r.author != 0 {
		author, authorID = replyAuthor, replyAuthorID
	}

	created := g.now().Add(time.Duration(j*2+1) * time.Hour).UTC().Format(time.RFC3339)
	return model.FreeComment{
		ID:        fmt.Sprintf("%s-%d", root.ID, j+1),
		Content:   r.content,
		Author:    author,
		AuthorID:  authorID,
		Likes:     g.intn(100),
		Depth:     j + 1,
		ParentID:  root.ID,
		CreatedAt: created,
		UpdatedAt: created,
	}
}

// commentAt returns the comment at offset i of the flattened thread list:
// root 0, its replies, then the remaining roots.
func (g *Generator) commentAt(i int) model.FreeComment {
	switch {
	case i == 0:
		return g.rootComment(0)
	case i <= len(replies):
		return g.reply(g.rootComment(0), i-1)
	default:
		return g.rootComment(i - len(replies))
	}
}

// FreeComments returns one page of the fixed 100-comment list. Replies
// count toward the page size, so a page never holds more than limit items.
func (g *Generator) FreeComments(page, limit int) model.Page[model.FreeComment] {
	page, limit = normalize(page, limit, DefaultCommentLimit)
	start, n := window(page, limit)

	comments := make([]model.FreeComment, 0, n)
	for i := 0; i < n; i++ {
		comments = append(comments, g.commentAt(start+i))
	}

	return model.Page[model.FreeComment]{
		Items:      comments,
		Total:      Total,
		Page:       page,
		Limit:      limit,
		TotalPages: model.TotalPages(Total, limit),
	}
}
