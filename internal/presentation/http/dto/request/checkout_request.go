package request

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentRequest is the payment chosen in the payment dialog
type PaymentRequest struct {
	Method    string `json:"method" binding:"required,oneof=Cash UPI Card cash upi card"`
	Reference string `json:"reference" binding:"omitempty,max=255"`
}

// CustomerRequest identifies the buyer
type CustomerRequest struct {
	Name  string `json:"name" binding:"omitempty,max=255"`
	Phone string `json:"phone" binding:"omitempty,max=32"`
}

// CheckoutRequest carries optional sale metadata. Anything omitted falls
// back to the checkout draft or the defaults.
type CheckoutRequest struct {
	Timestamp     *time.Time       `json:"timestamp"`
	InvoiceNumber string           `json:"invoice_number" binding:"omitempty,max=64"`
	Discount      *decimal.Decimal `json:"discount"`
	Payment       *PaymentRequest  `json:"payment"`
	Customer      *CustomerRequest `json:"customer"`
}
