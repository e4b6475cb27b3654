package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceiptHeader holds the store header printed at the top of a receipt.
type ReceiptHeader struct {
	StoreName string `json:"store_name"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// ReceiptItem represents a single line item on a receipt.
type ReceiptItem struct {
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`
}

// Receipt is a value object composed from a sale, or from the open cart
// when previewing, at print time.
type Receipt struct {
	Header        ReceiptHeader   `json:"header"`
	Preview       bool            `json:"preview"`
	InvoiceNo     string          `json:"invoice_no"`
	Date          string          `json:"date"`
	Cashier       string          `json:"cashier,omitempty"`
	Customer      string          `json:"customer"`
	CustomerPhone string          `json:"customer_phone,omitempty"`
	PaymentMethod string          `json:"payment_method"`
	PaymentRef    string          `json:"payment_ref,omitempty"`
	Items         []ReceiptItem   `json:"items"`
	SubTotal      decimal.Decimal `json:"sub_total"`
	Discount      decimal.Decimal `json:"discount"`
	Total         decimal.Decimal `json:"total"`
	QRSrc         string          `json:"qr_src,omitempty"`
}

// ReceiptDateLayout is how receipt dates are printed
const ReceiptDateLayout = "02 Jan 2006 15:04"

// NewSaleReceipt composes a receipt from a completed sale
func NewSaleReceipt(header ReceiptHeader, sale *Sale, loc *time.Location) *Receipt {
	r := &Receipt{
		Header:        header,
		InvoiceNo:     sale.InvoiceNumber,
		Customer:      sale.Customer.Name,
		CustomerPhone: sale.Customer.Phone,
		PaymentMethod: sale.Payment.Method.String(),
		PaymentRef:    sale.Payment.Reference,
		SubTotal:      sale.Subtotal,
		Discount:      sale.Discount,
		Total:         sale.Total(),
	}
	if ts, err := sale.Timestamp(); err == nil {
		r.Date = ts.In(loc).Format(ReceiptDateLayout)
	}
	for _, l := range sale.Items {
		r.Items = append(r.Items, ReceiptItem{
			Name:      l.Name,
			Quantity:  l.Qty,
			UnitPrice: l.Price,
			Total:     l.LineTotal(),
		})
	}
	return r
}

// NewPreviewReceipt composes a receipt from the open cart before checkout
func NewPreviewReceipt(header ReceiptHeader, cart *Cart, draft Draft, now time.Time) *Receipt {
	customer := draft.CustomerName
	if customer == "" {
		customer = WalkInCustomer
	}
	subtotal := cart.Subtotal()
	discount := decimal.Zero
	if draft.Discount.Valid {
		discount = ClampDiscount(draft.Discount.Decimal, subtotal)
	}
	r := &Receipt{
		Header:        header,
		Preview:       true,
		InvoiceNo:     "-",
		Date:          now.Format(ReceiptDateLayout),
		Customer:      customer,
		CustomerPhone: draft.CustomerPhone,
		PaymentMethod: "Pending",
		SubTotal:      subtotal,
		Discount:      discount,
		Total:         subtotal.Sub(discount),
	}
	for _, l := range cart.Lines {
		r.Items = append(r.Items, ReceiptItem{
			Name:      l.Name,
			Quantity:  l.Qty,
			UnitPrice: l.Price,
			Total:     l.LineTotal(),
		})
	}
	return r
}
