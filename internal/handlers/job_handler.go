package handlers

import (
	"net/http"

	"jobmatch_backend/internal/middleware"
	"jobmatch_backend/internal/models"
	"jobmatch_backend/internal/services"
	"jobmatch_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	*BaseHandler
	jobService services.JobService
	jwtSecret  string
}

func NewJobHandler(base *BaseHandler, jobService services.JobService, jwtSecret string) *JobHandler {
	return &JobHandler{
		BaseHandler: base,
		jobService:  jobService,
		jwtSecret:   jwtSecret,
	}
}

func (h *JobHandler) RegisterRoutes(rg *gin.RouterGroup) {
	jobs := rg.Group("/jobs")
	{
		jobs.GET("/:id", h.GetJob)
	}

	owned := rg.Group("/jobs")
	owned.Use(middleware.AuthMiddleware(h.jwtSecret), middleware.RequireRoles(models.UserRoleEmployer))
	{
		owned.POST("", h.CreateJob)
		owned.PUT("/:id", h.UpdateJob)
		owned.DELETE("/:id", h.DeleteJob)
		owned.GET("", h.ListMyJobs)
	}
}

func (h *JobHandler) CreateJob(c *gin.Context) {
	userID, ok := h.AuthorizedUserID(c)
	if !ok {
		return
	}

	var req dto.CreateJobRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.jobService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *JobHandler) GetJob(c *gin.Context) {
	resp, err := h.jobService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *JobHandler) UpdateJob(c *gin.Context) {
	userID, ok := h.AuthorizedUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateJobRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.jobService.Update(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *JobHandler) DeleteJob(c *gin.Context) {
	userID, ok := h.AuthorizedUserID(c)
	if !ok {
		return
	}

	if err := h.jobService.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Job deleted"})
}

func (h *JobHandler) ListMyJobs(c *gin.Context) {
	userID, ok := h.AuthorizedUserID(c)
	if !ok {
		return
	}

	page, pageSize := h.ParsePagination(c)
	resp, err := h.jobService.ListByEmployer(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
