package routes

import (
	"net/http"

	"jobmatch_backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires every handler into the /api/v1 group.
func RegisterRoutes(router *gin.Engine, appHandlers *handlers.AppHandlers) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		appHandlers.AuthHandler.RegisterRoutes(api)
		appHandlers.ProfileHandler.RegisterRoutes(api)
		appHandlers.JobHandler.RegisterRoutes(api)
		appHandlers.SearchHandler.RegisterRoutes(api)
		appHandlers.RecommendationHandler.RegisterRoutes(api)
		appHandlers.InterviewHandler.RegisterRoutes(api)
	}
}
