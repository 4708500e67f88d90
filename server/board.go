package server

import (
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/existflow/angple/internal/logger"
	"github.com/existflow/angple/internal/model"
	"github.com/existflow/angple/server/store"
)

// serverError reports a failed operation with the raw error text
func serverError(c echo.Context, message string, err error) error {
	return c.JSON(http.StatusInternalServerError, map[string]interface{}{
		"success": false,
		"message": message,
		"error":   err.Error(),
	})
}

func failure(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]interface{}{
		"success": false,
		"message": message,
	})
}

func (s *Server) handleAPIInfo(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"name":        "Damoang API",
		"version":     Version,
		"description": "Next-generation community platform API",
		"endpoints": []string{
			"GET /health - server health",
			"GET /api - API information",
			"GET /api/status - system status",
			"POST /api/auth/login - development login",
			"GET /api/posts - list posts",
			"POST /api/posts - create a post",
			"GET /api/posts/:id - read a post",
			"POST /api/posts/:id/comments - add a comment",
		},
	})
}

func (s *Server) handleStatus(c echo.Context) error {
	uptime := time.Since(s.started)
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status": "running",
		"uptime": fmt.Sprintf("%dm %ds", int(uptime.Minutes()), int(uptime.Seconds())%60),
		"memory": map[string]string{
			"used":  fmt.Sprintf("%dMB", mem.HeapAlloc/1024/1024),
			"total": fmt.Sprintf("%dMB", mem.HeapSys/1024/1024),
		},
		"goVersion": runtime.Version(),
		"platform":  runtime.GOOS,
	})
}

func (s *Server) handleListPosts(c echo.Context) error {
	posts, err := s.repo.ListPosts(c.Request().Context())
	if err != nil {
		return serverError(c, "Failed to load posts", err)
	}

	summaries := make([]model.PostSummary, 0, len(posts))
	for _, p := range posts {
		summaries = append(summaries, p.Summary())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"posts":   summaries,
		"total":   len(summaries),
	})
}

func (s *Server) handleGetPost(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return failure(c, http.StatusNotFound, "Post not found")
	}

	post, err := s.repo.ViewPost(c.Request().Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		return failure(c, http.StatusNotFound, "Post not found")
	}
	if err != nil {
		return serverError(c, "Failed to load post", err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"post":    post,
	})
}

func (s *Server) handleCreatePost(c echo.Context) error {
	var req model.NewPost
	if err := c.Bind(&req); err != nil {
		return failure(c, http.StatusBadRequest, "invalid request")
	}
	if req.Title == "" || req.Content == "" || req.Author == "" {
		return failure(c, http.StatusBadRequest, "Title, content and author are required")
	}

	post, err := s.repo.CreatePost(c.Request().Context(), req)
	if err != nil {
		return serverError(c, "Failed to create post", err)
	}

	s.log.Info("Post created", logger.F("id", post.ID), logger.F("author", post.Author))

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Post created",
		"post":    post,
	})
}

func (s *Server) handleAddComment(c echo.Context) error {
	var req model.NewComment
	if err := c.Bind(&req); err != nil {
		return failure(c, http.StatusBadRequest, "invalid request")
	}
	if req.Author == "" || req.Content == "" {
		return failure(c, http.StatusBadRequest, "Author and content are required")
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return failure(c, http.StatusNotFound, "Post not found")
	}

	comment, err := s.repo.AddComment(c.Request().Context(), id, req)
	if errors.Is(err, store.ErrNotFound) {
		return failure(c, http.StatusNotFound, "Post not found")
	}
	if err != nil {
		return serverError(c, "Failed to add comment", err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Comment added",
		"comment": comment,
	})
}
