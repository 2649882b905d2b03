package handlers

import (
	"net/http"

	"jobmatch_backend/internal/middleware"
	"jobmatch_backend/internal/models"
	"jobmatch_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type RecommendationHandler struct {
	*BaseHandler
	recommendationService services.RecommendationService
	jwtSecret             string
}

func NewRecommendationHandler(base *BaseHandler, svc services.RecommendationService, jwtSecret string) *RecommendationHandler {
	return &RecommendationHandler{
		BaseHandler:           base,
		recommendationService: svc,
		jwtSecret:             jwtSecret,
	}
}

func (h *RecommendationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	recs := rg.Group("/recommendations")
	recs.Use(middleware.AuthMiddleware(h.jwtSecret), middleware.RequireRoles(models.UserRoleStudent))
	{
		recs.GET("", h.GetRecommendations)
	}
}

func (h *RecommendationHandler) GetRecommendations(c *gin.Context) {
	userID, ok := h.AuthorizedUserID(c)
	if !ok {
		return
	}

	limit := h.ParseQueryInt(c, "limit", 10)
	resp, err := h.recommendationService.GetRecommendations(c.Request.Context(), userID, limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
