package request

import "github.com/shopspring/decimal"

// AddCartLineRequest adds one unit of a catalog item
type AddCartLineRequest struct {
	ItemID string `json:"item_id" binding:"required"`
}

// ChangeQuantityRequest adjusts a line by delta
type ChangeQuantityRequest struct {
	Delta int `json:"delta" binding:"required"`
}

// OverridePriceRequest sets the price charged for a line
type OverridePriceRequest struct {
	Price *decimal.Decimal `json:"price"`
}

// UpdateDraftRequest updates the checkout inputs being typed in. Omitted
// fields are kept; a null discount clears it.
type UpdateDraftRequest struct {
	CustomerName  *string          `json:"customer_name" binding:"omitempty,max=255"`
	CustomerPhone *string          `json:"customer_phone" binding:"omitempty,max=32"`
	Discount      *decimal.Decimal `json:"discount"`
	ClearDiscount bool             `json:"clear_discount"`
}
