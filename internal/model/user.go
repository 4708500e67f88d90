package model

import "time"

// User is the community account shape returned by the auth endpoints
type User struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role,omitempty"`
}

// RegisterAPIKeyRequest asks the API for a new key bound to an email
type RegisterAPIKeyRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// RefreshTokenRequest asks the API for a fresh token for a registered email
type RefreshTokenRequest struct {
	Email string `json:"email"`
}

// APIKeyResponse is returned by register and refresh
type APIKeyResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"` // RFC 3339
}

// TokenStatus describes the locally cached bearer token
type TokenStatus struct {
	HasToken  bool       `json:"has_token"`
	IsValid   bool       `json:"is_valid"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// LoginRequest is the demo backend login body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the demo backend login result
type LoginResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	User    *User  `json:"user,omitempty"`
	Token   string `json:"token,omitempty"`
	Hint    string `json:"hint,omitempty"`
}
