package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/storefront-pos/internal/application/service"
	"github.com/sangkips/storefront-pos/internal/presentation/http/dto/request"
	"github.com/sangkips/storefront-pos/internal/presentation/http/dto/response"
	"github.com/sangkips/storefront-pos/pkg/apperror"
	"github.com/shopspring/decimal"
)

// ItemHandler handles admin catalog management
type ItemHandler struct {
	catalogService *service.CatalogService
}

// NewItemHandler creates a new item handler
func NewItemHandler(catalogService *service.CatalogService) *ItemHandler {
	return &ItemHandler{catalogService: catalogService}
}

// List returns every catalog item
func (h *ItemHandler) List(c *gin.Context) {
	items, err := h.catalogService.ListItems(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Items retrieved successfully", items)
}

// Get returns one catalog item
func (h *ItemHandler) Get(c *gin.Context) {
	item, err := h.catalogService.GetItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Item retrieved successfully", item)
}

// Create adds a catalog item
// @Summary Create item
// @Tags admin
// @Accept json
// @Produce json
// @Param request body request.SaveItemRequest true "Item"
// @Success 201 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /admin/items [post]
func (h *ItemHandler) Create(c *gin.Context) {
	input, ok := bindItem(c, "")
	if !ok {
		return
	}

	item, err := h.catalogService.SaveItem(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Item created successfully", item)
}

// Update replaces a catalog item
func (h *ItemHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if _, err := h.catalogService.GetItem(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	input, ok := bindItem(c, id)
	if !ok {
		return
	}

	item, err := h.catalogService.SaveItem(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Item updated successfully", item)
}

// Delete removes a catalog item
func (h *ItemHandler) Delete(c *gin.Context) {
	if err := h.catalogService.DeleteItem(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Item deleted successfully", nil)
}

// PullFromCloud replaces local items and settings with the cloud copy
func (h *ItemHandler) PullFromCloud(c *gin.Context) {
	result, err := h.catalogService.PullFromCloud(c.Request.Context())
	if err != nil {
		response.Error(c, apperror.NewAppError(502, "Cloud pull failed: "+err.Error()))
		return
	}
	response.OK(c, "Catalog pulled from cloud", result)
}

func bindItem(c *gin.Context, id string) (*service.SaveItemInput, bool) {
	var req request.SaveItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return nil, false
	}
	price := decimal.Zero
	if req.Price != nil {
		price = *req.Price
	}
	return &service.SaveItemInput{
		ID:       id,
		Name:     req.Name,
		Category: req.Category,
		Price:    price,
		Stock:    req.Stock,
		ImageSrc: req.ImageSrc,
	}, true
}
