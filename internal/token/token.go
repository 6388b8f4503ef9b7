// Package token signs and verifies the compact HS256 session tokens carried
// in the auth-token cookie. Verification is a local computation over the
// token string, the secret and the injected clock.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is how long a freshly signed token stays valid.
const DefaultTTL = 7 * 24 * time.Hour

var (
	// ErrMissingSecret is returned when no signing secret was configured.
	ErrMissingSecret = errors.New("token secret not configured")
	// ErrInvalidToken is returned when a token is malformed, expired, tampered with
	// or signed with an unexpected algorithm.
	ErrInvalidToken = errors.New("invalid token")
)

// Role is the authorization level asserted by a token.
type Role string

const (
	// RoleAdmin grants access to the admin area.
	RoleAdmin Role = "ADMIN"
	// RoleUser is any authenticated non-admin identity.
	RoleUser Role = "USER"
)

// Payload is the caller-controlled part of a token.
type Payload struct {
	Role   Role
	UserID string
	Email  string
}

// Claims is the decoded content of a verified token.
type Claims struct {
	Role  Role   `json:"role"`
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// IsAdmin reports whether the claims carry the admin role.
func (c *Claims) IsAdmin() bool {
	return c != nil && c.Role == RoleAdmin
}

// Verifier is what the route guard and API middleware depend on.
type Verifier interface {
	Verify(token string) (*Claims, error)
}

// Config configures a Manager. Now defaults to time.Now and TTL to DefaultTTL.
type Config struct {
	Secret string
	TTL    time.Duration
	Now    func() time.Time
}

// Manager signs and verifies tokens with a single process-wide secret.
type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewManager creates a token manager. An empty secret is accepted here so
// that verification fails closed instead of the process refusing to build
// the guard; startup validation rejects it separately.
func NewManager(cfg Config) *Manager {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Manager{
		secret: []byte(cfg.Secret),
		ttl:    ttl,
		now:    now,
	}
}

// TTL returns the lifetime applied to signed tokens.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Sign produces a token for the payload expiring TTL from now.
func (m *Manager) Sign(p Payload) (string, error) {
	if len(m.secret) == 0 {
		return "", ErrMissingSecret
	}
	if p.Role == "" {
		return "", fmt.Errorf("sign token: role is required")
	}

	now := m.now()
	claims := Claims{
		Role:  p.Role,
		Email: p.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify decodes the token if its signature is valid and it has not expired.
// It never returns claims together with an error.
func (m *Manager) Verify(raw string) (*Claims, error) {
	if len(m.secret) == 0 {
		return nil, ErrMissingSecret
	}
	if raw == "" {
		return nil, fmt.Errorf("%w: empty token", ErrInvalidToken)
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims,
		func(*jwt.Token) (any, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if claims.Role == "" {
		return nil, fmt.Errorf("%w: missing role claim", ErrInvalidToken)
	}

	return claims, nil
}
