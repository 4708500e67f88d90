// Package store persists the demo board posts and their comments.
package store

import (
	"context"
	"errors"

	"github.com/existflow/angple/internal/model"
)

// ErrNotFound is returned when a post id does not exist
var ErrNotFound = errors.New("post not found")

// Repository is the demo board's storage
type Repository interface {
	// ListPosts returns every post, newest first
	ListPosts(ctx context.Context) ([]model.Post, error)
	// ViewPost returns a post and increments its view count
	ViewPost(ctx context.Context, id int) (*model.Post, error)
	// CreatePost assigns the next id and puts the post first
	CreatePost(ctx context.Context, in model.NewPost) (*model.Post, error)
	// AddComment appends a comment with the next id within the post
	AddComment(ctx context.Context, postID int, in model.NewComment) (*model.Comment, error)
	Close() error
}

// nextPostID returns max(id)+1, or 1 for an empty board
func nextPostID(posts []model.Post) int {
	max := 0
	for _, p := range posts {
		if p.ID > max {
			max = p.ID
		}
	}
	return max + 1
}

func nextCommentID(comments []model.Comment) int {
	max := 0
	for _, c := range comments {
		if c.ID > max {
			max = c.ID
		}
	}
	return max + 1
}
