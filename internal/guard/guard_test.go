package guard

import (
	"errors"
	"testing"
	"time"

	"folio/internal/token"
)

// fakeVerifier maps token strings to claims; anything else is invalid.
type fakeVerifier struct {
	tokens map[string]*token.Claims
	calls  int
}

func (f *fakeVerifier) Verify(raw string) (*token.Claims, error) {
	f.calls++
	if c, ok := f.tokens[raw]; ok {
		return c, nil
	}
	return nil, token.ErrInvalidToken
}

func newFakeGuard() (*Guard, *fakeVerifier) {
	v := &fakeVerifier{tokens: map[string]*token.Claims{
		"admin-token": {Role: token.RoleAdmin},
		"user-token":  {Role: token.RoleUser},
	}}
	return New(v), v
}

func TestClassify(t *testing.T) {
	tests := []struct {
		path string
		want Class
	}{
		{"/", Public},
		{"/blog/my-post", Public},
		{"/about", Public},
		{"/Admin", Public},
		{"/admin", Protected},
		{"/admin/", Protected},
		{"/admin/posts", Protected},
		{"/admin/posts/new", Protected},
		{"/administrator", Protected},
		{"/admin/login", LoginPage},
		{"/admin/login/", Protected},
		{"/admin/logins", Protected},
	}
	for _, tt := range tests {
		if got := Classify(tt.path); got != tt.want {
			t.Errorf("Classify(%q) = %s, want %s", tt.path, got, tt.want)
		}
	}
}

func TestExcluded(t *testing.T) {
	excluded := []string{"/api", "/api/posts", "/api/admin/posts", "/_next/static/chunk.js", "/_next/image/x.png", "/favicon.ico", "/static/site.css"}
	for _, p := range excluded {
		if !Excluded(p) {
			t.Errorf("expected %q to be excluded", p)
		}
	}
	included := []string{"/", "/admin", "/admin/login", "/blog", "/_next/data/x.json", "/about/api"}
	for _, p := range included {
		if Excluded(p) {
			t.Errorf("expected %q to be evaluated by the guard", p)
		}
	}
}

func TestDecide_PublicPathsPassThrough(t *testing.T) {
	g, v := newFakeGuard()
	for _, path := range []string{"/", "/blog/my-post", "/gallery", "/portfolio"} {
		for _, tok := range []string{"", "admin-token", "user-token", "garbage"} {
			d := g.Decide(path, tok)
			if d.Action != Allow || d.Location != "" {
				t.Errorf("Decide(%q, %q) = %+v, want plain allow", path, tok, d)
			}
		}
	}
	if v.calls != 0 {
		t.Errorf("public paths must not verify tokens, got %d calls", v.calls)
	}
}

func TestDecide_Protected(t *testing.T) {
	g, _ := newFakeGuard()

	tests := []struct {
		name     string
		token    string
		action   Action
		location string
		reason   Reason
	}{
		{"no cookie", "", Redirect, LoginPath, ReasonNoToken},
		{"invalid token", "garbage", RedirectAndClearCookie, LoginPath, ReasonInvalidToken},
		{"non-admin role", "user-token", Redirect, HomePath, ReasonInsufficientRole},
		{"admin", "admin-token", Allow, "", ReasonAdmin},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := g.Decide("/admin/posts", tt.token)
			if d.Action != tt.action {
				t.Errorf("expected action %s, got %s", tt.action, d.Action)
			}
			if d.Location != tt.location {
				t.Errorf("expected location %q, got %q", tt.location, d.Location)
			}
			if d.Reason != tt.reason {
				t.Errorf("expected reason %q, got %q", tt.reason, d.Reason)
			}
			if (tt.action == Allow) != (d.Claims != nil) {
				t.Errorf("claims should be set only when an admin is allowed, got %+v", d.Claims)
			}
		})
	}
}

func TestDecide_LoginPage(t *testing.T) {
	g, _ := newFakeGuard()

	tests := []struct {
		name     string
		token    string
		action   Action
		location string
	}{
		{"no cookie renders form", "", Allow, ""},
		{"invalid token renders form", "garbage", Allow, ""},
		{"non-admin renders form", "user-token", Allow, ""},
		{"admin skips login", "admin-token", Redirect, AdminPath},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := g.Decide(LoginPath, tt.token)
			if d.Action != tt.action || d.Location != tt.location {
				t.Errorf("Decide(%q, %q) = %+v", LoginPath, tt.token, d)
			}
		})
	}
}

func TestDecide_LoginPageNeverRedirectsToItself(t *testing.T) {
	g, _ := newFakeGuard()
	for _, tok := range []string{"", "garbage", "user-token", "admin-token"} {
		d := g.Decide(LoginPath, tok)
		if d.IsRedirect() && d.Location == LoginPath {
			t.Errorf("login page redirected to itself for token %q", tok)
		}
	}
}

func TestDecide_Idempotent(t *testing.T) {
	g, _ := newFakeGuard()
	paths := []string{"/", "/admin", "/admin/login", "/admin/photos"}
	tokens := []string{"", "garbage", "user-token", "admin-token"}

	for _, p := range paths {
		for _, tok := range tokens {
			first := g.Decide(p, tok)
			second := g.Decide(p, tok)
			if first.Action != second.Action || first.Location != second.Location || first.Reason != second.Reason {
				t.Errorf("Decide(%q, %q) not idempotent: %+v then %+v", p, tok, first, second)
			}
		}
	}
}

type errVerifier struct{}

func (errVerifier) Verify(string) (*token.Claims, error) {
	return nil, errors.New("secret store unavailable")
}

type nilVerifier struct{}

func (nilVerifier) Verify(string) (*token.Claims, error) { return nil, nil }

func TestDecide_FailsClosed(t *testing.T) {
	for name, g := range map[string]*Guard{
		"verifier error": New(errVerifier{}),
		"nil claims":     New(nilVerifier{}),
		"nil verifier":   New(nil),
	} {
		t.Run(name, func(t *testing.T) {
			d := g.Decide(AdminPath, "anything")
			if d.Action != RedirectAndClearCookie || d.Location != LoginPath {
				t.Errorf("expected fail-closed redirect, got %+v", d)
			}
			if d := g.Decide(LoginPath, "anything"); d.Action != Allow {
				t.Errorf("login page should render when verification fails, got %+v", d)
			}
		})
	}
}

func TestDecide_WithRealTokens(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	m := token.NewManager(token.Config{Secret: "guard-test-secret-guard-test-secret", Now: clock})
	g := New(m)

	admin, err := m.Sign(token.Payload{Role: token.RoleAdmin})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	user, _ := m.Sign(token.Payload{Role: token.RoleUser})

	if d := g.Decide("/admin", admin); d.Action != Allow {
		t.Errorf("admin token should pass, got %+v", d)
	}
	if d := g.Decide("/admin", user); d.Location != HomePath {
		t.Errorf("user token should go home, got %+v", d)
	}

	// Expired: same token, clock moved past the 7 day TTL.
	now = now.Add(token.DefaultTTL + time.Minute)
	if d := g.Decide("/admin", admin); d.Action != RedirectAndClearCookie {
		t.Errorf("expired token should clear cookie, got %+v", d)
	}

	// Empty secret fails closed even for a token that was valid before.
	closed := New(token.NewManager(token.Config{Secret: ""}))
	if d := closed.Decide("/admin", admin); d.Action != RedirectAndClearCookie {
		t.Errorf("missing secret must fail closed, got %+v", d)
	}
}
