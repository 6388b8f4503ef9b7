// Package auth implements password sign-in for the site owner. A successful
// login issues a signed session token that the route guard and the admin API
// verify on every request.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"folio/internal/token"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is enforced when creating accounts.
const MinPasswordLength = 8

var (
	// ErrInvalidCredentials is returned for an unknown email or a wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUserNotFound is returned when user is not found
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailExists is returned when email is already registered
	ErrEmailExists = errors.New("email already registered")
	// ErrWeakPassword is returned when a password is too short
	ErrWeakPassword = errors.New("password too short")
)

// Issuer signs session tokens. *token.Manager satisfies it.
type Issuer interface {
	Sign(p token.Payload) (string, error)
	TTL() time.Duration
}

// Session is the outcome of a successful login.
type Session struct {
	User      *User
	Token     string
	TTL       time.Duration
	ExpiresAt time.Time
}

// Service defines the authentication service interface
type Service interface {
	Login(ctx context.Context, email, password string) (*Session, error)
	CreateAdmin(ctx context.Context, email, password string) (*User, error)
	SetPassword(ctx context.Context, email, password string) error
}

type service struct {
	repo   Repository
	issuer Issuer
	now    func() time.Time
	cost   int
}

// NewService creates a new authentication service
func NewService(repo Repository, issuer Issuer) Service {
	return &service{
		repo:   repo,
		issuer: issuer,
		now:    time.Now,
		cost:   bcrypt.DefaultCost,
	}
}

// dummyHash is compared against when the email is unknown so both failure
// paths cost one bcrypt comparison.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("folio-dummy-password"), bcrypt.DefaultCost)

func (s *service) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	issuedAt := s.now()
	signed, err := s.issuer.Sign(token.Payload{
		Role:   user.Role,
		UserID: user.ID,
		Email:  user.Email,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	slog.Info("User logged in", "user_id", user.ID, "role", string(user.Role))

	return &Session{
		User:      user,
		Token:     signed,
		TTL:       s.issuer.TTL(),
		ExpiresAt: issuedAt.Add(s.issuer.TTL()),
	}, nil
}

func (s *service) CreateAdmin(ctx context.Context, email, password string) (*User, error) {
	hash, err := s.hash(password)
	if err != nil {
		return nil, err
	}

	user := &User{
		ID:           uuid.New().String(),
		Email:        normalizeEmail(email),
		PasswordHash: hash,
		Role:         token.RoleAdmin,
		CreatedAt:    s.now(),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	slog.Info("Admin user created", "user_id", user.ID, "email", user.Email)
	return user, nil
}

// SetPassword replaces the password of an existing user and promotes it to
// ADMIN.
func (s *service) SetPassword(ctx context.Context, email, password string) error {
	hash, err := s.hash(password)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(ctx, email, hash, string(token.RoleAdmin))
}

func (s *service) hash(password string) (string, error) {
	if len(password) < MinPasswordLength {
		return "", fmt.Errorf("%w: need at least %d characters", ErrWeakPassword, MinPasswordLength)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}
