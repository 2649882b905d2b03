package handlers

import (
	"net/http"

	"jobmatch_backend/internal/middleware"
	"jobmatch_backend/internal/models"
	"jobmatch_backend/internal/services"
	"jobmatch_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type InterviewHandler struct {
	*BaseHandler
	interviewService services.InterviewService
	jwtSecret        string
}

func NewInterviewHandler(base *BaseHandler, svc services.InterviewService, jwtSecret string) *InterviewHandler {
	return &InterviewHandler{
		BaseHandler:      base,
		interviewService: svc,
		jwtSecret:        jwtSecret,
	}
}

func (h *InterviewHandler) RegisterRoutes(rg *gin.RouterGroup) {
	prep := rg.Group("/interview-prep")
	prep.Use(middleware.AuthMiddleware(h.jwtSecret), middleware.RequireRoles(models.UserRoleStudent))
	{
		prep.POST("", h.Prepare)
	}
}

// Prepare generates interview questions and resume feedback tailored to
// one job posting.
func (h *InterviewHandler) Prepare(c *gin.Context) {
	userID, ok := h.AuthorizedUserID(c)
	if !ok {
		return
	}

	var req dto.InterviewPrepRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.interviewService.PrepareForJob(c.Request.Context(), userID, req.JobID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
