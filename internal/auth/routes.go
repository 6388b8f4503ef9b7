package auth

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the public auth endpoints under rg (normally /api/auth).
func RegisterRoutes(rg *gin.RouterGroup, h *Handler) {
	rg.POST("/login", h.Login)
	rg.POST("/logout", h.Logout)
	rg.GET("/me", h.Me)
}
