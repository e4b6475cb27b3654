package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/storefront-pos/internal/application/service"
	"github.com/sangkips/storefront-pos/internal/presentation/http/dto/response"
)

// MenuHandler serves the product grid shown at the till
type MenuHandler struct {
	catalogService *service.CatalogService
}

// NewMenuHandler creates a new menu handler
func NewMenuHandler(catalogService *service.CatalogService) *MenuHandler {
	return &MenuHandler{catalogService: catalogService}
}

// List returns one page of the menu
// @Summary Menu
// @Tags menu
// @Produce json
// @Param category query string false "Category tab"
// @Param page query int false "Page number"
// @Success 200 {object} response.APIResponse
// @Router /menu [get]
func (h *MenuHandler) List(c *gin.Context) {
	result, err := h.catalogService.Menu(c.Request.Context(), c.Query("category"), paginationParams(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, 200, "Menu retrieved successfully", result)
}

// Categories returns the category tabs
func (h *MenuHandler) Categories(c *gin.Context) {
	response.OK(c, "Categories retrieved successfully", h.catalogService.Categories())
}
