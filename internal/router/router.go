package router

import (
	"github.com/gin-gonic/gin"
	"github.com/tatblog/internal/handler"
)

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(api *handler.API) *gin.Engine {
	r := gin.Default()

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	v1 := r.Group("/api")
	{
		v1.GET("/posts", api.GetPosts)
		v1.GET("/posts/popular", api.GetPopularPosts)
		v1.GET("/posts/archives", api.GetArchives)
		v1.GET("/posts/:year/:month/:slug", api.GetPost)
		v1.PUT("/posts/:id/published", api.TogglePublished)

		v1.GET("/categories", api.GetCategories)
		v1.GET("/categories/paged", api.GetPagedCategories)
		v1.GET("/categories/:slug", api.GetCategoryBySlug)
		v1.POST("/categories", api.SaveCategory)
		v1.DELETE("/categories/:id", api.DeleteCategory)

		v1.GET("/tags", api.GetTags)
		v1.GET("/tags/paged", api.GetPagedTags)
		v1.GET("/tags/:slug", api.GetTagBySlug)
		v1.DELETE("/tags/:id", api.DeleteTag)
	}

	return r
}
