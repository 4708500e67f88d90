package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/existflow/angple/internal/logger"
)

// availableEndpoints is listed in 404 responses
var availableEndpoints = []string{"/health", "/api", "/api/status", "/api/auth/login", "/api/posts"}

func (s *Server) requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		req := c.Request()

		s.log.Debug("HTTP Request",
			logger.F("method", req.Method),
			logger.F("uri", req.RequestURI),
			logger.F("remote", c.RealIP()))

		err := next(c)
		if err != nil {
			c.Error(err)
		}

		res := c.Response()
		s.log.Info("HTTP Response",
			logger.F("method", req.Method),
			logger.F("uri", req.RequestURI),
			logger.F("status", res.Status),
			logger.F("size", res.Size),
			logger.F("request_id", res.Header().Get(echo.HeaderXRequestID)),
			logger.F("duration", time.Since(start).String()))

		return nil
	}
}

// handleError turns unmatched routes into the endpoint listing and
// everything unexpected into a 500
func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		switch he.Code {
		case http.StatusNotFound, http.StatusMethodNotAllowed:
			req := c.Request()
			_ = c.JSON(http.StatusNotFound, map[string]interface{}{
				"error":              "404 Not Found",
				"message":            "Route not found: " + req.Method + " " + req.RequestURI,
				"availableEndpoints": availableEndpoints,
			})
		default:
			_ = c.JSON(he.Code, map[string]interface{}{
				"success": false,
				"message": he.Message,
			})
		}
		return
	}

	s.log.Error("Unhandled error", logger.F("uri", c.Request().RequestURI), logger.F("error", err.Error()))
	_ = c.JSON(http.StatusInternalServerError, map[string]string{
		"error":     "Internal Server Error",
		"message":   "The server hit an internal error",
		"timestamp": s.now().UTC().Format(time.RFC3339),
	})
}

// authMiddleware requires a valid bearer JWT on /api/v1 routes
func (s *Server) authMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		auth := c.Request().Header.Get("Authorization")
		if auth == "" {
			return apiError(c, http.StatusUnauthorized, "authorization required", "UNAUTHORIZED")
		}

		token := strings.TrimPrefix(auth, "Bearer ")
		if token == auth {
			return apiError(c, http.StatusUnauthorized, "invalid authorization format", "UNAUTHORIZED")
		}

		claims, err := s.parseToken(token)
		if errors.Is(err, jwt.ErrTokenExpired) {
			return apiError(c, http.StatusUnauthorized, "token expired", "TOKEN_EXPIRED")
		}
		if err != nil {
			return apiError(c, http.StatusUnauthorized, "invalid token", "INVALID_TOKEN")
		}

		c.Set("email", claims.Subject)
		return next(c)
	}
}
