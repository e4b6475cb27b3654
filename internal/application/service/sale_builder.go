package service

import (
	"strings"
	"time"

	"github.com/sangkips/storefront-pos/internal/domain/entity"
	"github.com/sangkips/storefront-pos/internal/domain/enum"
	"github.com/sangkips/storefront-pos/pkg/apperror"
	"github.com/sangkips/storefront-pos/pkg/utils"
	"github.com/shopspring/decimal"
)

// timestampLayout matches a JavaScript toISOString value
const timestampLayout = "2006-01-02T15:04:05.000Z"

// SaleMeta carries the caller-supplied parts of a sale. Nil or empty
// fields take their defaults.
type SaleMeta struct {
	Timestamp     *time.Time
	InvoiceNumber string
	Discount      *decimal.Decimal
	Payment       *entity.Payment
	Customer      *entity.Customer
}

// WithDraft fills the fields the caller left out from the checkout draft
func (m SaleMeta) WithDraft(draft entity.Draft) SaleMeta {
	if m.Discount == nil && draft.Discount.Valid {
		discount := draft.Discount.Decimal
		m.Discount = &discount
	}
	if m.Customer == nil {
		m.Customer = &entity.Customer{Name: draft.CustomerName, Phone: draft.CustomerPhone}
	}
	return m
}

// BuildSale converts cart lines into a sale using current catalog stock.
// It does not touch any state. A supplied timestamp is read in now's
// location, which is the register's time zone.
func BuildSale(lines []entity.CartLine, catalog entity.CatalogIndex, meta SaleMeta, now time.Time) (*entity.Sale, error) {
	if len(lines) == 0 {
		return nil, apperror.ErrEmptyCart
	}

	ts := now
	if meta.Timestamp != nil {
		ts = meta.Timestamp.In(now.Location())
	}

	subtotal := decimal.Zero
	items := make([]entity.SaleLine, 0, len(lines))
	for _, l := range lines {
		line := entity.SaleLine{
			ItemID: l.ItemID,
			Name:   l.Name,
			Price:  l.Price,
			Qty:    l.Qty,
		}
		if item, ok := catalog.Lookup(l.ItemID); ok {
			if before, tracked := item.StockValue(); tracked {
				after := before - l.Qty
				if after < 0 {
					after = 0
				}
				line.StockBefore = entity.IntPtr(before)
				line.StockAfter = entity.IntPtr(after)
			}
		}
		subtotal = subtotal.Add(line.LineTotal())
		items = append(items, line)
	}

	discount := decimal.Zero
	if meta.Discount != nil {
		discount = entity.ClampDiscount(*meta.Discount, subtotal)
	}

	invoice := strings.TrimSpace(meta.InvoiceNumber)
	if invoice == "" {
		invoice = utils.GenerateInvoiceNo(ts)
	}

	return &entity.Sale{
		ID:            utils.SaleID(ts),
		TimestampISO:  ts.UTC().Format(timestampLayout),
		InvoiceNumber: invoice,
		Items:         items,
		Subtotal:      subtotal,
		Discount:      discount,
		GrandTotal:    decimal.NewNullDecimal(subtotal.Sub(discount)),
		Payment:       resolvePayment(meta.Payment),
		Customer:      resolveCustomer(meta.Customer),
	}, nil
}

func resolvePayment(p *entity.Payment) entity.Payment {
	if p == nil {
		return entity.Payment{Method: enum.PaymentMethodPending}
	}
	return *p
}

func resolveCustomer(c *entity.Customer) entity.Customer {
	if c == nil {
		return entity.Customer{Name: entity.WalkInCustomer}
	}
	out := entity.Customer{
		Name:  strings.TrimSpace(c.Name),
		Phone: strings.TrimSpace(c.Phone),
	}
	if out.Name == "" {
		out.Name = entity.WalkInCustomer
	}
	return out
}
