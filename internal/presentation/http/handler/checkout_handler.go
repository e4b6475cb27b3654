package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/storefront-pos/internal/application/service"
	"github.com/sangkips/storefront-pos/internal/domain/entity"
	"github.com/sangkips/storefront-pos/internal/domain/enum"
	"github.com/sangkips/storefront-pos/internal/presentation/http/dto/request"
	"github.com/sangkips/storefront-pos/internal/presentation/http/dto/response"
	"github.com/sangkips/storefront-pos/pkg/apperror"
)

// CheckoutHandler handles checkout HTTP requests
type CheckoutHandler struct {
	checkoutService *service.CheckoutService
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkoutService *service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

// Checkout commits the open cart as a sale. When a payment is supplied
// the sale is recorded as paid with that method.
// @Summary Checkout
// @Tags checkout
// @Accept json
// @Produce json
// @Param request body request.CheckoutRequest false "Sale metadata"
// @Success 201 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Failure 401 {object} response.APIResponse
// @Router /checkout [post]
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	var req request.CheckoutRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, "Invalid request body")
			return
		}
	}

	input := service.CheckoutInput{
		Timestamp:     req.Timestamp,
		InvoiceNumber: req.InvoiceNumber,
		Discount:      req.Discount,
	}
	if req.Customer != nil {
		input.Customer = &entity.Customer{Name: req.Customer.Name, Phone: req.Customer.Phone}
	}

	var (
		sale *entity.Sale
		err  error
	)
	if req.Payment != nil {
		sale, err = h.checkoutService.MarkPaid(c.Request.Context(), &service.MarkPaidInput{
			Method:        enum.ParsePaymentMethod(req.Payment.Method),
			Reference:     req.Payment.Reference,
			CheckoutInput: input,
		})
	} else {
		sale, err = h.checkoutService.Checkout(c.Request.Context(), &input)
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Sale completed", sale)
}

// LastSale returns the most recent sale and the coordinator state
func (h *CheckoutHandler) LastSale(c *gin.Context) {
	sale := h.checkoutService.LastSale()
	if sale == nil {
		response.Error(c, apperror.NewNotFoundError("Sale"))
		return
	}
	response.OK(c, "Last sale retrieved successfully", gin.H{
		"sale":  sale,
		"state": h.checkoutService.State(),
	})
}
