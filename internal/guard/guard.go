// Package guard decides, for every inbound page request, whether it may
// proceed, must be redirected, or must be redirected with its session
// cookie removed.
//
// The decision is a pure function of the request path, the auth-token
// cookie value and the token verifier (which carries the secret and the
// clock). The gin adapter in middleware.go is the only part that touches
// the HTTP exchange.
package guard

import (
	"strings"

	"folio/internal/token"
)

const (
	// CookieName is the cookie carrying the signed session token.
	CookieName = "auth-token"

	// AdminPath is the root of the protected area.
	AdminPath = "/admin"
	// LoginPath is the admin login page.
	LoginPath = "/admin/login"
	// HomePath is where authenticated non-admins are sent.
	HomePath = "/"
)

// Class is the guard's view of a request path.
type Class int

const (
	// Public paths are never gated.
	Public Class = iota
	// LoginPage is exactly LoginPath.
	LoginPage
	// Protected is every other path starting with AdminPath.
	Protected
)

func (c Class) String() string {
	switch c {
	case LoginPage:
		return "login_page"
	case Protected:
		return "protected"
	default:
		return "public"
	}
}

// Classify maps a path onto exactly one Class. Matching is case-sensitive
// and prefix based, so "/administrator" is Protected as well.
func Classify(path string) Class {
	switch {
	case path == LoginPath:
		return LoginPage
	case strings.HasPrefix(path, AdminPath):
		return Protected
	default:
		return Public
	}
}

// Action is what the adapter must do with the request.
type Action int

const (
	// Allow forwards the request unchanged.
	Allow Action = iota
	// Redirect answers with a redirect to Decision.Location.
	Redirect
	// RedirectAndClearCookie redirects and deletes the auth-token cookie.
	RedirectAndClearCookie
)

func (a Action) String() string {
	switch a {
	case Redirect:
		return "redirect"
	case RedirectAndClearCookie:
		return "redirect_clear_cookie"
	default:
		return "allow"
	}
}

// Reason labels why a decision was taken. Used for logs and metrics.
type Reason string

const (
	ReasonPublic               Reason = "public"
	ReasonNoToken              Reason = "no_token"
	ReasonInvalidToken         Reason = "invalid_token"
	ReasonInsufficientRole     Reason = "insufficient_role"
	ReasonAdmin                Reason = "admin"
	ReasonLoginForm            Reason = "login_form"
	ReasonAlreadyAuthenticated Reason = "already_authenticated"
)

// Decision is the outcome of Guard.Decide.
type Decision struct {
	Action   Action
	Location string
	Reason   Reason
	// Claims is set when a verified admin token let the request through.
	Claims *token.Claims
}

// IsRedirect reports whether the decision stops the request.
func (d Decision) IsRedirect() bool {
	return d.Action != Allow
}

func allow(reason Reason) Decision {
	return Decision{Action: Allow, Reason: reason}
}

func redirect(location string, reason Reason) Decision {
	return Decision{Action: Redirect, Location: location, Reason: reason}
}

// Guard holds the verifier used to check session tokens. It has no mutable
// state and is safe for concurrent use.
type Guard struct {
	verifier token.Verifier
}

// New creates a guard backed by the given verifier.
func New(verifier token.Verifier) *Guard {
	return &Guard{verifier: verifier}
}

// Decide returns the decision for a request to path carrying tokenValue in
// the auth-token cookie. An empty tokenValue means the cookie is absent.
func (g *Guard) Decide(path, tokenValue string) Decision {
	switch Classify(path) {
	case Protected:
		return g.decideProtected(tokenValue)
	case LoginPage:
		return g.decideLogin(tokenValue)
	default:
		return allow(ReasonPublic)
	}
}

func (g *Guard) decideProtected(tokenValue string) Decision {
	if tokenValue == "" {
		return redirect(LoginPath, ReasonNoToken)
	}

	claims, err := g.verify(tokenValue)
	if err != nil {
		return Decision{
			Action:   RedirectAndClearCookie,
			Location: LoginPath,
			Reason:   ReasonInvalidToken,
		}
	}

	if !claims.IsAdmin() {
		return redirect(HomePath, ReasonInsufficientRole)
	}

	return Decision{Action: Allow, Reason: ReasonAdmin, Claims: claims}
}

func (g *Guard) decideLogin(tokenValue string) Decision {
	if tokenValue == "" {
		return allow(ReasonLoginForm)
	}

	claims, err := g.verify(tokenValue)
	if err == nil && claims.IsAdmin() {
		return redirect(AdminPath, ReasonAlreadyAuthenticated)
	}

	return allow(ReasonLoginForm)
}

// verify treats a nil verifier or a nil result as a failure so that a
// misconfigured guard never lets a request into the admin area.
func (g *Guard) verify(tokenValue string) (*token.Claims, error) {
	if g.verifier == nil {
		return nil, token.ErrMissingSecret
	}
	claims, err := g.verifier.Verify(tokenValue)
	if err != nil {
		return nil, err
	}
	if claims == nil {
		return nil, token.ErrInvalidToken
	}
	return claims, nil
}
