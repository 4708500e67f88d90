package model

import "time"

// Post is a post of the file-backed demo board
type Post struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
	ViewCount int       `json:"viewCount"`
	IsNotice  bool      `json:"isNotice"`
	Comments  []Comment `json:"comments"`
}

// Comment belongs to exactly one Post; ids are unique within it
type Comment struct {
	ID        int       `json:"id"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// PostSummary is the list view of a Post
type PostSummary struct {
	ID           int       `json:"id"`
	Title        string    `json:"title"`
	Author       string    `json:"author"`
	CreatedAt    time.Time `json:"createdAt"`
	ViewCount    int       `json:"viewCount"`
	CommentCount int       `json:"commentCount"`
	IsNotice     bool      `json:"isNotice"`
}

// Summary returns the list view of p
func (p Post) Summary() PostSummary {
	return PostSummary{
		ID:           p.ID,
		Title:        p.Title,
		Author:       p.Author,
		CreatedAt:    p.CreatedAt,
		ViewCount:    p.ViewCount,
		CommentCount: len(p.Comments),
		IsNotice:     p.IsNotice,
	}
}

// NewPost is the body of POST /api/posts
type NewPost struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Author  string `json:"author"`
}

// NewComment is the body of POST /api/posts/:id/comments
type NewComment struct {
	Author  string `json:"author"`
	Content string `json:"content"`
}
