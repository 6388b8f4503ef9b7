package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"folio/internal/guard"
	"folio/internal/token"

	"github.com/gin-gonic/gin"
)

// Handler handles authentication-related HTTP requests
type Handler struct {
	service      Service
	verifier     token.Verifier
	secureCookie bool
}

// NewHandler creates a new authentication handler. secureCookie marks the
// auth-token cookie Secure and should be on in production.
func NewHandler(service Service, verifier token.Verifier, secureCookie bool) *Handler {
	return &Handler{
		service:      service,
		verifier:     verifier,
		secureCookie: secureCookie,
	}
}

// Login handles POST /api/auth/login
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Success: false, Error: err.Error()})
		return
	}

	sess, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			slog.Warn("Login rejected", "request_id", c.GetString("request_id"))
			c.JSON(http.StatusUnauthorized, ErrorResponse{Success: false, Error: "invalid email or password"})
			return
		}
		slog.Error("Login failed", "error", err, "request_id", c.GetString("request_id"))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Success: false, Error: "failed to log in"})
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(guard.CookieName, sess.Token, int(sess.TTL.Seconds()), "/", "", h.secureCookie, true)

	resp := LoginResponse{
		Success:   true,
		User:      sess.User,
		ExpiresAt: sess.ExpiresAt.Unix(),
	}
	if sess.User.Role == token.RoleAdmin {
		resp.Redirect = guard.AdminPath
	}
	c.JSON(http.StatusOK, resp)
}

// Logout handles POST /api/auth/logout
func (h *Handler) Logout(c *gin.Context) {
	guard.ClearCookie(c, h.secureCookie)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "logged out successfully"})
}

// Me handles GET /api/auth/me
func (h *Handler) Me(c *gin.Context) {
	raw, _ := c.Cookie(guard.CookieName)
	if raw == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Success: false, Error: "not authenticated"})
		return
	}

	claims, err := h.verifier.Verify(raw)
	if err != nil {
		guard.ClearCookie(c, h.secureCookie)
		c.JSON(http.StatusUnauthorized, ErrorResponse{Success: false, Error: "invalid session"})
		return
	}

	resp := MeResponse{
		Success: true,
		UserID:  claims.Subject,
		Email:   claims.Email,
		Role:    claims.Role,
	}
	if claims.ExpiresAt != nil {
		resp.ExpiresAt = claims.ExpiresAt.Unix()
	}
	c.JSON(http.StatusOK, resp)
}
