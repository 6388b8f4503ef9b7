package posts

import "github.com/gin-gonic/gin"

// RegisterPublicRoutes mounts the read-only blog API on the /api group.
func RegisterPublicRoutes(api *gin.RouterGroup, h *Handler) {
	api.GET("/posts", h.ListPublished)       // GET /api/posts?page=1&page_size=10&category=&tag=
	api.GET("/posts/:slug", h.GetPublished)  // GET /api/posts/:slug
	api.GET("/categories", h.ListCategories) // GET /api/categories
}

// RegisterAdminRoutes mounts post and category management on the
// authenticated /api/admin group.
func RegisterAdminRoutes(admin *gin.RouterGroup, h *Handler) {
	posts := admin.Group("/posts")
	{
		posts.GET("", h.ListAll)
		posts.POST("", h.CreatePost)
		posts.GET("/:id", h.GetPost)
		posts.PATCH("/:id", h.UpdatePost)
		posts.DELETE("/:id", h.DeletePost)
	}

	categories := admin.Group("/categories")
	{
		categories.POST("", h.CreateCategory)
		categories.DELETE("/:id", h.DeleteCategory)
	}
}
