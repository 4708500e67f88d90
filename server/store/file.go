package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/existflow/angple/internal/model"
)

// FileName is the posts file inside the data directory
const FileName = "posts.json"

// File keeps every post in one JSON array and rewrites the whole file on
// each change. Nothing serializes writers: two concurrent requests can
// both read the same snapshot and the later write wins.
type File struct {
	path string
	now  func() time.Time
}

// OpenFile uses <dataDir>/posts.json, creating the directory if needed
func OpenFile(dataDir string) (*File, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &File{path: filepath.Join(dataDir, FileName), now: time.Now}, nil
}

// Path returns the posts file location
func (f *File) Path() string {
	return f.path
}

func (f *File) read() ([]model.Post, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return []model.Post{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read posts: %w", err)
	}

	var posts []model.Post
	if err := json.Unmarshal(data, &posts); err != nil {
		return nil, fmt.Errorf("failed to parse posts: %w", err)
	}
	if posts == nil {
		posts = []model.Post{}
	}
	return posts, nil
}

func (f *File) write(posts []model.Post) error {
	data, err := json.MarshalIndent(posts, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode posts: %w", err)
	}
	if err := os.WriteFile(f.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write posts: %w", err)
	}
	return nil
}

func find(posts []model.Post, id int) int {
	for i := range posts {
		if posts[i].ID == id {
			return i
		}
	}
	return -1
}

// ListPosts returns every post in file order; new posts sit at the front
func (f *File) ListPosts(ctx context.Context) ([]model.Post, error) {
	return f.read()
}

// ViewPost returns a post and bumps its view count in the file
func (f *File) ViewPost(ctx context.Context, id int) (*model.Post, error) {
	posts, err := f.read()
	if err != nil {
		return nil, err
	}

	i := find(posts, id)
	if i < 0 {
		return nil, ErrNotFound
	}

	posts[i].ViewCount++
	if err := f.write(posts); err != nil {
		return nil, err
	}

	post := posts[i]
	return &post, nil
}

// CreatePost prepends a post with id max+1
func (f *File) CreatePost(ctx context.Context, in model.NewPost) (*model.Post, error) {
	posts, err := f.read()
	if err != nil {
		return nil, err
	}

	post := model.Post{
		ID:        nextPostID(posts),
		Title:     in.Title,
		Content:   in.Content,
		Author:    in.Author,
		CreatedAt: f.now().UTC(),
		Comments:  []model.Comment{},
	}

	posts = append([]model.Post{post}, posts...)
	if err := f.write(posts); err != nil {
		return nil, err
	}
	return &post, nil
}

// AddComment appends a comment with id max+1 within the post
func (f *File) AddComment(ctx context.Context, postID int, in model.NewComment) (*model.Comment, error) {
	posts, err := f.read()
	if err != nil {
		return nil, err
	}

	i := find(posts, postID)
	if i < 0 {
		return nil, ErrNotFound
	}

	comment := model.Comment{
		ID:        nextCommentID(posts[i].Comments),
		Author:    in.Author,
		Content:   in.Content,
		CreatedAt: f.now().UTC(),
	}
	posts[i].Comments = append(posts[i].Comments, comment)

	if err := f.write(posts); err != nil {
		return nil, err
	}
	return &comment, nil
}

// Close is a no-op; the file is not held open
func (f *File) Close() error {
	return nil
}
