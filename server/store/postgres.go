package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/existflow/angple/internal/model"
)

// Postgres stores posts in two tables. Ids follow the same max+1 rule as
// the file store, computed inside the INSERT.
type Postgres struct {
	db *sql.DB
}

// OpenPostgres connects to dbURL and creates the tables
func OpenPostgres(dbURL string) (*Postgres, error) {
	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	p := &Postgres{db: db}
	if err := p.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return p, nil
}

// ListPosts returns every post with its comments, newest first
func (p *Postgres) ListPosts(ctx context.Context) ([]model.Post, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT id, title, content, author, view_count, is_notice, created_at
		FROM posts
		ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	posts := []model.Post{}
	index := map[int]int{}
	for rows.Next() {
		var post model.Post
		if err := rows.Scan(&post.ID, &post.Title, &post.Content, &post.Author,
			&post.ViewCount, &post.IsNotice, &post.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		post.Comments = []model.Comment{}
		index[post.ID] = len(posts)
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	crows, err := p.db.QueryContext(ctx, `
		SELECT post_id, id, author, content, created_at
		FROM comments
		ORDER BY post_id, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer crows.Close()

	for crows.Next() {
		var postID int
		var c model.Comment
		if err := crows.Scan(&postID, &c.ID, &c.Author, &c.Content, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		if i, ok := index[postID]; ok {
			posts[i].Comments = append(posts[i].Comments, c)
		}
	}
	return posts, crows.Err()
}

// ViewPost increments the view count and returns the post
func (p *Postgres) ViewPost(ctx context.Context, id int) (*model.Post, error) {
	var post model.Post
	err := p.db.QueryRowContext(ctx, `
		UPDATE posts SET view_count = view_count + 1
		WHERE id = $1
		RETURNING id, title, content, author, view_count, is_notice, created_at`,
		id,
	).Scan(&post.ID, &post.Title, &post.Content, &post.Author,
		&post.ViewCount, &post.IsNotice, &post.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load post %d: %w", id, err)
	}

	rows, err := p.db.QueryContext(ctx, `
		SELECT id, author, content, created_at
		FROM comments WHERE post_id = $1
		ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load comments: %w", err)
	}
	defer rows.Close()

	post.Comments = []model.Comment{}
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(&c.ID, &c.Author, &c.Content, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		post.Comments = append(post.Comments, c)
	}
	return &post, rows.Err()
}

// CreatePost inserts a post with id max+1
func (p *Postgres) CreatePost(ctx context.Context, in model.NewPost) (*model.Post, error) {
	post := model.Post{
		Title:    in.Title,
		Content:  in.Content,
		Author:   in.Author,
		Comments: []model.Comment{},
	}
	err := p.db.QueryRowContext(ctx, `
		INSERT INTO posts (id, title, content, author)
		VALUES ((SELECT COALESCE(MAX(id), 0) + 1 FROM posts), $1, $2, $3)
		RETURNING id, view_count, is_notice, created_at`,
		in.Title, in.Content, in.Author,
	).Scan(&post.ID, &post.ViewCount, &post.IsNotice, &post.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	return &post, nil
}

// AddComment inserts a comment with id max+1 within the post
func (p *Postgres) AddComment(ctx context.Context, postID int, in model.NewComment) (*model.Comment, error) {
	var exists bool
	if err := p.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM posts WHERE id = $1)`, postID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("failed to check post: %w", err)
	}
	if !exists {
		return nil, ErrNotFound
	}

	comment := model.Comment{Author: in.Author, Content: in.Content}
	err := p.db.QueryRowContext(ctx, `
		INSERT INTO comments (post_id, id, author, content)
		VALUES ($1, (SELECT COALESCE(MAX(id), 0) + 1 FROM comments WHERE post_id = $1), $2, $3)
		RETURNING id, created_at`,
		postID, in.Author, in.Content,
	).Scan(&comment.ID, &comment.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to add comment: %w", err)
	}
	return &comment, nil
}

// Close closes the database connection
func (p *Postgres) Close() error {
	return p.db.Close()
}
