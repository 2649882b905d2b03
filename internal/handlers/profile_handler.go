package handlers

import (
	"net/http"

	"jobmatch_backend/internal/middleware"
	"jobmatch_backend/internal/models"
	"jobmatch_backend/internal/services"
	"jobmatch_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	*BaseHandler
	profileService services.ProfileService
	jwtSecret      string
}

func NewProfileHandler(base *BaseHandler, profileService services.ProfileService, jwtSecret string) *ProfileHandler {
	return &ProfileHandler{
		BaseHandler:    base,
		profileService: profileService,
		jwtSecret:      jwtSecret,
	}
}

func (h *ProfileHandler) RegisterRoutes(rg *gin.RouterGroup) {
	profile := rg.Group("/profile")
	profile.Use(middleware.AuthMiddleware(h.jwtSecret))
	{
		student := profile.Group("/student")
		student.Use(middleware.RequireRoles(models.UserRoleStudent))
		{
			student.GET("/me", h.GetStudentProfile)
			student.PUT("/me", h.UpdateStudentProfile)
			student.POST("/me/skills/extract", h.ExtractSkills)
		}

		employer := profile.Group("/employer")
		employer.Use(middleware.RequireRoles(models.UserRoleEmployer))
		{
			employer.GET("/me", h.GetEmployerProfile)
			employer.PUT("/me", h.UpdateEmployerProfile)
		}
	}
}

func (h *ProfileHandler) GetStudentProfile(c *gin.Context) {
	userID, ok := h.AuthorizedUserID(c)
	if !ok {
		return
	}

	resp, err := h.profileService.GetStudentProfile(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ProfileHandler) UpdateStudentProfile(c *gin.Context) {
	userID, ok := h.AuthorizedUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateStudentProfileRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.profileService.UpdateStudentProfile(c.Request.Context(), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ExtractSkills pulls known skills out of the stored resume text
// without persisting them, so the client can offer them as suggestions.
func (h *ProfileHandler) ExtractSkills(c *gin.Context) {
	userID, ok := h.AuthorizedUserID(c)
	if !ok {
		return
	}

	extracted, err := h.profileService.ExtractSkillsFromResume(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"skills": extracted})
}

func (h *ProfileHandler) GetEmployerProfile(c *gin.Context) {
	userID, ok := h.AuthorizedUserID(c)
	if !ok {
		return
	}

	resp, err := h.profileService.GetEmployerProfile(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ProfileHandler) UpdateEmployerProfile(c *gin.Context) {
	userID, ok := h.AuthorizedUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateEmployerProfileRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.profileService.UpdateEmployerProfile(c.Request.Context(), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
