package request

import "github.com/shopspring/decimal"

// SaveItemRequest represents the admin item form
type SaveItemRequest struct {
	Name     string           `json:"name" binding:"required,max=255"`
	Category string           `json:"category" binding:"required"`
	Price    *decimal.Decimal `json:"price"`
	Stock    *int             `json:"stock"`
	ImageSrc string           `json:"image_src"`
}

// UpdateSettingsRequest replaces the payment QR image
type UpdateSettingsRequest struct {
	QRSrc string `json:"qr_src"`
}
