package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/storefront-pos/internal/application/service"
	"github.com/sangkips/storefront-pos/internal/presentation/http/dto/request"
	"github.com/sangkips/storefront-pos/internal/presentation/http/dto/response"
)

// CartHandler handles cart-related HTTP requests
type CartHandler struct {
	cartService *service.CartService
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// Get returns the open cart
// @Summary Cart
// @Tags cart
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /cart [get]
func (h *CartHandler) Get(c *gin.Context) {
	view, err := h.cartService.GetCart(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Cart retrieved successfully", view)
}

// AddLine adds one unit of an item
// @Summary Add item to cart
// @Tags cart
// @Accept json
// @Produce json
// @Param request body request.AddCartLineRequest true "Item"
// @Success 200 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Router /cart/lines [post]
func (h *CartHandler) AddLine(c *gin.Context) {
	var req request.AddCartLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	view, err := h.cartService.AddItem(c.Request.Context(), req.ItemID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Item added to cart", view)
}

// ChangeQuantity adjusts a line by delta
func (h *CartHandler) ChangeQuantity(c *gin.Context) {
	var req request.ChangeQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	view, err := h.cartService.ChangeQuantity(c.Request.Context(), c.Param("item_id"), req.Delta)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Cart updated", view)
}

// OverridePrice sets the price charged for a line
func (h *CartHandler) OverridePrice(c *gin.Context) {
	var req request.OverridePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Price == nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	view, err := h.cartService.OverridePrice(c.Request.Context(), c.Param("item_id"), *req.Price)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Price updated", view)
}

// RemoveLine drops a line from the cart
func (h *CartHandler) RemoveLine(c *gin.Context) {
	view, err := h.cartService.RemoveItem(c.Request.Context(), c.Param("item_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Item removed from cart", view)
}

// Clear empties the cart
func (h *CartHandler) Clear(c *gin.Context) {
	view, err := h.cartService.Clear(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Cart cleared", view)
}

// UpdateDraft stores the customer and discount being typed in
func (h *CartHandler) UpdateDraft(c *gin.Context) {
	var req request.UpdateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	draft, err := h.cartService.UpdateDraft(c.Request.Context(), &service.DraftInput{
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		Discount:      req.Discount,
		ClearDiscount: req.ClearDiscount,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Draft saved", draft)
}
