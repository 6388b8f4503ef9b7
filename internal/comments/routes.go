package comments

import "github.com/gin-gonic/gin"

// RegisterPublicRoutes mounts comment submission and listing under the post
// routes. The parameter name matches the posts package so both can share the
// /posts/:slug prefix.
func RegisterPublicRoutes(api *gin.RouterGroup, h *Handler) {
	api.GET("/posts/:slug/comments", h.List)
	api.POST("/posts/:slug/comments", h.Create)
}

// RegisterAdminRoutes mounts moderation endpoints.
func RegisterAdminRoutes(admin *gin.RouterGroup, h *Handler) {
	g := admin.Group("/comments")
	{
		g.GET("", h.Moderation)
		g.PATCH("/:id/approve", h.Approve)
		g.DELETE("/:id", h.Delete)
	}
}
