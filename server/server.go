// Package server is the demo backend: a small board API over a posts
// file plus the /api/v1 surface the community client talks to.
package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"

	"github.com/existflow/angple/internal/config"
	"github.com/existflow/angple/internal/logger"
	"github.com/existflow/angple/internal/mock"
	"github.com/existflow/angple/server/store"
)

// Service identity reported by /health and /api
const (
	ServiceName = "damoang-backend"
	Version     = "1.0.0"
)

// Server is the demo backend
type Server struct {
	cfg       config.ServerConfig
	repo      store.Repository
	gen       *mock.Generator
	adminHash []byte
	started   time.Time
	now       func() time.Time
	log       *logger.Logger

	keysMu sync.Mutex
	keys   map[string]apiKey // by email

	echo *echo.Echo
}

// New creates a server over repo
func New(cfg config.ServerConfig, repo store.Repository) (*Server, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:       cfg,
		repo:      repo,
		gen:       mock.New(),
		adminHash: hash,
		started:   time.Now(),
		now:       time.Now,
		log:       logger.WithFields(logger.F("component", "server")),
		keys:      make(map[string]apiKey),
	}

	s.setupEcho()

	return s, nil
}

func (s *Server) setupEcho() {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = s.handleError

	e.Use(s.requestLogger)
	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.CORS())
	if s.cfg.RateLimit > 0 {
		e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rate.Limit(s.cfg.RateLimit))))
	}

	e.GET("/health", s.handleHealth)
	e.GET("/themes/:id/theme.css", s.handleThemeCSS)

	// Demo board
	board := e.Group("/api")
	board.GET("", s.handleAPIInfo)
	board.GET("/status", s.handleStatus)
	board.POST("/auth/login", s.handleLogin)
	board.GET("/posts", s.handleListPosts)
	board.POST("/posts", s.handleCreatePost)
	board.GET("/posts/:id", s.handleGetPost)
	board.POST("/posts/:id/comments", s.handleAddComment)

	// Community API
	v1 := e.Group("/api/v1")
	v1.POST("/auth/register", s.handleRegisterKey)
	v1.POST("/auth/token", s.handleRefreshToken)
	v1.GET("/free", s.handleFreePosts)
	v1.GET("/free/:id", s.handleFreePost)
	v1.GET("/free/:id/comments", s.handleFreeComments)
	v1.GET("/menus", s.handleMenus)
	v1.GET("/recommended/ai/:period", s.handleAITrend, s.authMiddleware)

	s.echo = e
}

// Close closes the repository
func (s *Server) Close() error {
	return s.repo.Close()
}

// Router returns the HTTP handler
func (s *Server) Router() http.Handler {
	return s.echo
}

// Start starts the server
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

// Shutdown stops accepting requests and waits for in-flight ones
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":    "healthy",
		"service":   ServiceName,
		"version":   Version,
		"message":   "Damoang backend is up and running",
		"timestamp": s.now().UTC().Format(time.RFC3339),
	})
}
