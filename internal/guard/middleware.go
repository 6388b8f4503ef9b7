package guard

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Context keys set by the middleware.
const (
	ContextDecision = "guard_decision"
	ContextClaims   = "claims"
)

// Options controls how the adapter writes cookies.
type Options struct {
	// SecureCookie marks the cleared cookie Secure, matching how login sets it.
	SecureCookie bool
}

// Middleware adapts a Guard to gin. It must be installed globally so that it
// also runs for unmatched routes.
func Middleware(g *Guard, opts Options) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if Excluded(path) {
			c.Next()
			return
		}

		// A missing cookie and an empty one are the same to the guard.
		tokenValue, _ := c.Cookie(CookieName)

		d := g.Decide(path, tokenValue)
		observe(d)
		c.Set(ContextDecision, d)

		switch d.Action {
		case Allow:
			if d.Claims != nil {
				c.Set(ContextClaims, d.Claims)
				c.Set("user_id", d.Claims.Subject)
				c.Set("email", d.Claims.Email)
			}
			c.Next()

		case RedirectAndClearCookie:
			slog.Warn("Rejected invalid session token",
				"path", path,
				"request_id", c.GetString("request_id"),
			)
			ClearCookie(c, opts.SecureCookie)
			redirectTo(c, d)

		default:
			slog.Debug("Route guard redirect",
				"path", path,
				"location", d.Location,
				"reason", string(d.Reason),
				"request_id", c.GetString("request_id"),
			)
			redirectTo(c, d)
		}
	}
}

// ClearCookie deletes the auth-token cookie on the response.
func ClearCookie(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, "", -1, "/", "", secure, true)
}

func redirectTo(c *gin.Context, d Decision) {
	c.Redirect(http.StatusTemporaryRedirect, d.Location)
	c.Abort()
}
