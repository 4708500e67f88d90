package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/existflow/angple/internal/logger"
	"github.com/existflow/angple/internal/model"
)

// apiKey is a registered community API key
type apiKey struct {
	ID    string
	Name  string
	Email string
}

// issueToken signs an HS256 token for subject
func (s *Server) issueToken(subject string) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.cfg.TokenLifetime()).Truncate(time.Second)

	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		Issuer:    ServiceName,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func (s *Server) parseToken(raw string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// handleLogin checks the single development account
func (s *Server) handleLogin(c echo.Context) error {
	var req model.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{"success": false, "message": "invalid request"})
	}

	if req.Email != s.cfg.AdminEmail ||
		bcrypt.CompareHashAndPassword(s.adminHash, []byte(req.Password)) != nil {
		return c.JSON(http.StatusUnauthorized, model.LoginResponse{
			Success: false,
			Message: "Wrong email or password",
			Hint:    fmt.Sprintf("Development account: %s / %s", s.cfg.AdminEmail, s.cfg.AdminPassword),
		})
	}

	token, _, err := s.issueToken(req.Email)
	if err != nil {
		return serverError(c, "Login failed", err)
	}

	s.log.Info("Admin logged in", logger.F("email", req.Email))

	return c.JSON(http.StatusOK, model.LoginResponse{
		Success: true,
		Message: "Logged in",
		User: &model.User{
			ID:    1,
			Email: req.Email,
			Name:  "Damoang admin",
			Role:  "admin",
		},
		Token: token,
	})
}

// handleRegisterKey registers (or re-registers) a key for an email
func (s *Server) handleRegisterKey(c echo.Context) error {
	var req model.RegisterAPIKeyRequest
	if err := c.Bind(&req); err != nil {
		return apiError(c, http.StatusBadRequest, "invalid request", "INVALID_REQUEST")
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		return apiError(c, http.StatusBadRequest, "a valid email is required", "INVALID_EMAIL")
	}
	if req.Name == "" {
		req.Name = req.Email
	}

	key := apiKey{ID: uuid.NewString(), Name: req.Name, Email: req.Email}
	s.keysMu.Lock()
	s.keys[req.Email] = key
	s.keysMu.Unlock()

	resp, err := s.keyResponse(key)
	if err != nil {
		return serverError(c, "Failed to issue token", err)
	}

	s.log.Info("API key registered", logger.F("email", req.Email), logger.F("key_id", key.ID))

	return c.JSON(http.StatusCreated, model.Response[*model.APIKeyResponse]{Success: true, Data: resp})
}

// handleRefreshToken issues a new token for a registered email
func (s *Server) handleRefreshToken(c echo.Context) error {
	var req model.RefreshTokenRequest
	if err := c.Bind(&req); err != nil {
		return apiError(c, http.StatusBadRequest, "invalid request", "INVALID_REQUEST")
	}

	s.keysMu.Lock()
	key, ok := s.keys[strings.TrimSpace(req.Email)]
	s.keysMu.Unlock()
	if !ok {
		return apiError(c, http.StatusNotFound, "no API key registered for this email", "KEY_NOT_FOUND")
	}

	resp, err := s.keyResponse(key)
	if err != nil {
		return serverError(c, "Failed to issue token", err)
	}
	return c.JSON(http.StatusOK, model.Response[*model.APIKeyResponse]{Success: true, Data: resp})
}

func (s *Server) keyResponse(key apiKey) (*model.APIKeyResponse, error) {
	token, expiresAt, err := s.issueToken(key.Email)
	if err != nil {
		return nil, err
	}
	return &model.APIKeyResponse{
		ID:        key.ID,
		Name:      key.Name,
		Email:     key.Email,
		Token:     token,
		ExpiresAt: expiresAt.UTC().Format(time.RFC3339),
	}, nil
}
