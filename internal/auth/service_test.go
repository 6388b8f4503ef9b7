package auth

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"folio/internal/token"

	"golang.org/x/crypto/bcrypt"
)

const testSecret = "auth-test-secret-auth-test-secret"

// mockRepository keeps users in memory, keyed by normalized email.
type mockRepository struct {
	mu     sync.Mutex
	users  map[string]*User
	getErr error
}

func newMockRepository() *mockRepository {
	return &mockRepository{users: make(map[string]*User)}
}

func (m *mockRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	u, ok := m.users[normalizeEmail(email)]
	if !ok {
		return nil, ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *mockRepository) Create(ctx context.Context, user *User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.Email]; ok {
		return ErrEmailExists
	}
	cp := *user
	m.users[user.Email] = &cp
	return nil
}

func (m *mockRepository) UpdatePassword(ctx context.Context, email, passwordHash string, role string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[normalizeEmail(email)]
	if !ok {
		return ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	u.Role = token.Role(role)
	return nil
}

func newTestService(repo Repository) (*service, *token.Manager) {
	mgr := token.NewManager(token.Config{Secret: testSecret})
	svc := NewService(repo, mgr).(*service)
	svc.cost = bcrypt.MinCost
	return svc, mgr
}

func seedUser(t *testing.T, repo *mockRepository, email, password string, role token.Role) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	repo.users[email] = &User{
		ID:           "user-" + string(role),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    time.Now(),
	}
}

func TestLogin_Success(t *testing.T) {
	repo := newMockRepository()
	seedUser(t, repo, "owner@example.com", "correct horse", token.RoleAdmin)
	svc, mgr := newTestService(repo)

	sess, err := svc.Login(context.Background(), "Owner@Example.com ", "correct horse")
	if err != nil {
		t.Fatalf("Expected login to succeed, got %v", err)
	}

	claims, err := mgr.Verify(sess.Token)
	if err != nil {
		t.Fatalf("Expected issued token to verify, got %v", err)
	}
	if !claims.IsAdmin() {
		t.Errorf("Expected ADMIN role, got %s", claims.Role)
	}
	if claims.Subject != "user-ADMIN" {
		t.Errorf("Expected subject user-ADMIN, got %s", claims.Subject)
	}
	if sess.TTL != token.DefaultTTL {
		t.Errorf("Expected TTL %v, got %v", token.DefaultTTL, sess.TTL)
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	repo := newMockRepository()
	seedUser(t, repo, "owner@example.com", "correct horse", token.RoleAdmin)
	svc, _ := newTestService(repo)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong password", "owner@example.com", "battery staple"},
		{"unknown email", "nobody@example.com", "correct horse"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), tt.email, tt.password)
			if !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("Expected ErrInvalidCredentials, got %v", err)
			}
		})
	}
}

func TestLogin_RepositoryError(t *testing.T) {
	repo := newMockRepository()
	repo.getErr = errors.New("connection refused")
	svc, _ := newTestService(repo)

	_, err := svc.Login(context.Background(), "owner@example.com", "whatever1")
	if err == nil || errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Expected infrastructure error to pass through, got %v", err)
	}
}

func TestCreateAdmin(t *testing.T) {
	repo := newMockRepository()
	svc, _ := newTestService(repo)
	ctx := context.Background()

	user, err := svc.CreateAdmin(ctx, " Owner@Example.com", "long enough")
	if err != nil {
		t.Fatalf("CreateAdmin: %v", err)
	}
	if user.Role != token.RoleAdmin || user.Email != "owner@example.com" {
		t.Errorf("Unexpected user %+v", user)
	}
	if user.PasswordHash == "long enough" {
		t.Error("Expected password to be hashed")
	}

	if _, err := svc.Login(ctx, "owner@example.com", "long enough"); err != nil {
		t.Errorf("Expected new admin to log in, got %v", err)
	}

	if _, err := svc.CreateAdmin(ctx, "owner@example.com", "long enough"); !errors.Is(err, ErrEmailExists) {
		t.Errorf("Expected ErrEmailExists, got %v", err)
	}
}

func TestCreateAdmin_WeakPassword(t *testing.T) {
	svc, _ := newTestService(newMockRepository())

	_, err := svc.CreateAdmin(context.Background(), "owner@example.com", "short")
	if !errors.Is(err, ErrWeakPassword) {
		t.Errorf("Expected ErrWeakPassword, got %v", err)
	}
}

func TestSetPassword(t *testing.T) {
	repo := newMockRepository()
	seedUser(t, repo, "reader@example.com", "old password", token.RoleUser)
	svc, mgr := newTestService(repo)
	ctx := context.Background()

	if err := svc.SetPassword(ctx, "reader@example.com", "new password"); err != nil {
		t.Fatalf("SetPassword: %v", err)
	}

	sess, err := svc.Login(ctx, "reader@example.com", "new password")
	if err != nil {
		t.Fatalf("Login after reset: %v", err)
	}
	claims, _ := mgr.Verify(sess.Token)
	if claims == nil || !claims.IsAdmin() {
		t.Error("Expected reset user to be promoted to ADMIN")
	}

	if err := svc.SetPassword(ctx, "ghost@example.com", "new password"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("Expected ErrUserNotFound, got %v", err)
	}
}
