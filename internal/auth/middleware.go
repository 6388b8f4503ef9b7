package auth

import (
	"log/slog"
	"net/http"

	"folio/internal/guard"
	"folio/internal/token"

	"github.com/gin-gonic/gin"
)

// RequireAdmin protects the admin JSON API. The route guard skips /api, so
// API handlers check the same cookie here and answer with JSON instead of a
// redirect.
func RequireAdmin(verifier token.Verifier, secureCookie bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, _ := c.Cookie(guard.CookieName)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Success: false,
				Error:   "unauthorized: no session cookie",
			})
			return
		}

		claims, err := verifier.Verify(raw)
		if err != nil || claims == nil {
			slog.Warn("Invalid session token on admin API",
				"path", c.Request.URL.Path,
				"request_id", c.GetString("request_id"),
			)
			guard.ClearCookie(c, secureCookie)
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Success: false,
				Error:   "unauthorized: invalid session",
			})
			return
		}

		if !claims.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{
				Success: false,
				Error:   "forbidden: admin role required",
			})
			return
		}

		c.Set(guard.ContextClaims, claims)
		c.Set("user_id", claims.Subject)
		c.Set("email", claims.Email)

		c.Next()
	}
}
