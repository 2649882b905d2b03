package handlers

import (
	"net/http"

	"jobmatch_backend/internal/services"
	"jobmatch_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type SearchHandler struct {
	*BaseHandler
	searchService services.SearchService
}

func NewSearchHandler(base *BaseHandler, searchService services.SearchService) *SearchHandler {
	return &SearchHandler{
		BaseHandler:   base,
		searchService: searchService,
	}
}

func (h *SearchHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/search", h.Search)
	rg.POST("/chat/search", h.ChatSearch)
}

func (h *SearchHandler) Search(c *gin.Context) {
	var req dto.SearchRequest
	if !h.BindAndValidateQuery(c, &req) {
		return
	}

	resp, err := h.searchService.Search(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ChatSearch answers a free-form query with a short natural-language
// summary alongside the ranked results.
func (h *SearchHandler) ChatSearch(c *gin.Context) {
	var req dto.ChatRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.searchService.Chat(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
