package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"jobmatch_backend/internal/middleware"
	"jobmatch_backend/internal/validator"
	"jobmatch_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// BaseHandler bundles the pieces every HTTP handler needs: request
// binding, validation and error translation.
type BaseHandler struct {
	validator *validator.Validator
}

func NewBaseHandler(v *validator.Validator) *BaseHandler {
	return &BaseHandler{validator: v}
}

// BindAndValidateJSON binds the JSON body into obj and validates it.
// On failure it writes the error response and returns false.
func (h *BaseHandler) BindAndValidateJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		apperrors.HandleValidationError(c, err)
		return false
	}
	return h.validate(c, obj)
}

// BindAndValidateQuery binds query parameters into obj and validates it.
func (h *BaseHandler) BindAndValidateQuery(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		apperrors.HandleValidationError(c, err)
		return false
	}
	return h.validate(c, obj)
}

func (h *BaseHandler) validate(c *gin.Context, obj interface{}) bool {
	err := h.validator.Validate(obj)
	if err == nil {
		return true
	}

	var validationErr *validator.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "Validation failed",
			"fields": validationErr.Errors,
		})
		return false
	}

	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal validation error"})
	return false
}

// HandleServiceError maps a service-layer error onto an HTTP response.
func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	apperrors.HandleError(c, err)
}

// AuthorizedUserID returns the user ID set by the auth middleware, or
// aborts with 401 when it is absent.
func (h *BaseHandler) AuthorizedUserID(c *gin.Context) (string, bool) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return "", false
	}
	return userID, true
}

func (h *BaseHandler) ParseQueryInt(c *gin.Context, key string, defaultValue int) int {
	raw := c.Query(key)
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return defaultValue
	}
	return v
}

// ParsePagination reads page/page_size query parameters with sane bounds.
func (h *BaseHandler) ParsePagination(c *gin.Context) (page, pageSize int) {
	page = h.ParseQueryInt(c, "page", 1)
	if page < 1 {
		page = 1
	}
	pageSize = h.ParseQueryInt(c, "page_size", 20)
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}
