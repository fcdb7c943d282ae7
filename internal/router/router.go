package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/akshay-menon/recipe-flash-generator/internal/api"
	"github.com/akshay-menon/recipe-flash-generator/internal/middleware"
)

// SetupRouter configures the application routes
func SetupRouter(
	authHandler *api.AuthHandler,
	generateHandler *api.GenerateHandler,
	chatHandler *api.ChatHandler,
	recipeHandler *api.RecipeHandler,
	preferenceHandler *api.PreferenceHandler,
	rateLimiter *middleware.RateLimiter,
) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORS())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	{
		authHandler.RegisterRoutes(v1)

		// Generation endpoints are the expensive ones; they alone get
		// rate limited.
		generateHandler.RegisterRoutes(v1, rateLimiter.RateLimitMiddleware())
		chatHandler.RegisterRoutes(v1, rateLimiter.RateLimitMiddleware())

		recipeHandler.RegisterRoutes(v1)
		preferenceHandler.RegisterRoutes(v1)
	}

	return router
}
