package auth

import (
	"time"

	"folio/internal/token"
)

// User is an account able to sign in. Only ADMIN users reach the admin area.
type User struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Role         token.Role `json:"role"`
	CreatedAt    time.Time  `json:"created_at"`
}

// LoginRequest is the request payload for POST /api/auth/login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse is returned after a successful login. The token itself only
// travels in the auth-token cookie.
type LoginResponse struct {
	Success   bool   `json:"success"`
	User      *User  `json:"user"`
	ExpiresAt int64  `json:"expires_at"`
	Redirect  string `json:"redirect,omitempty"`
}

// MeResponse describes the caller's verified token.
type MeResponse struct {
	Success   bool       `json:"success"`
	UserID    string     `json:"user_id"`
	Email     string     `json:"email,omitempty"`
	Role      token.Role `json:"role"`
	ExpiresAt int64      `json:"expires_at"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}
