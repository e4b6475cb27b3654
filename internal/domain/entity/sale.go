package entity

import (
	"time"

	"github.com/sangkips/storefront-pos/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// WalkInCustomer is the customer name used when none is entered
const WalkInCustomer = "Walk-in Customer"

// SaleLine is a frozen copy of a cart line at checkout time. The stock
// fields are nil for untracked items.
type SaleLine struct {
	ItemID      string          `json:"itemId"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Qty         int             `json:"qty"`
	StockBefore *int            `json:"stockBefore"`
	StockAfter  *int            `json:"stockAfter"`
}

// LineTotal returns price x qty
func (l SaleLine) LineTotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Qty)))
}

// Payment records how the sale was settled
type Payment struct {
	Method    enum.PaymentMethod `json:"method"`
	Reference string             `json:"reference"`
}

// Customer identifies who the sale was made to
type Customer struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// Sale is the immutable record of one completed checkout
type Sale struct {
	ID            string          `json:"id"`
	TimestampISO  string          `json:"timestampISO"`
	InvoiceNumber string          `json:"invoiceNumber"`
	Items         []SaleLine      `json:"items"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Discount      decimal.Decimal `json:"discount"`
	// GrandTotal is absent on records written before discounts existed
	GrandTotal decimal.NullDecimal `json:"grandTotal"`
	Payment    Payment             `json:"payment"`
	Customer   Customer            `json:"customer"`
}

// Timestamp parses TimestampISO
func (s Sale) Timestamp() (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s.TimestampISO)
}

// Total returns the amount due, falling back to the subtotal for legacy
// records without a grand total
func (s Sale) Total() decimal.Decimal {
	if s.GrandTotal.Valid {
		return s.GrandTotal.Decimal
	}
	return s.Subtotal
}

// StockChanges maps each tracked item id to its post-sale stock
func (s Sale) StockChanges() map[string]int {
	changes := make(map[string]int)
	for _, l := range s.Items {
		if l.StockAfter != nil {
			changes[l.ItemID] = *l.StockAfter
		}
	}
	return changes
}

// ClampDiscount bounds a discount to [0, subtotal]
func ClampDiscount(discount, subtotal decimal.Decimal) decimal.Decimal {
	if discount.IsNegative() {
		return decimal.Zero
	}
	if discount.GreaterThan(subtotal) {
		return subtotal
	}
	return discount
}
