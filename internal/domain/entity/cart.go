package entity

import (
	"github.com/sangkips/storefront-pos/pkg/apperror"
	"github.com/shopspring/decimal"
)

// CartLine is one item in the cart. Price is a snapshot taken when the
// line was created and may be overridden by the cashier afterwards.
type CartLine struct {
	ItemID string          `json:"itemId"`
	Name   string          `json:"name"`
	Price  decimal.Decimal `json:"price"`
	Qty    int             `json:"qty"`
}

// LineTotal returns price x qty
func (l CartLine) LineTotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Qty)))
}

// Cart is the mutable per-register list of lines. A line never holds a
// quantity below one, and a tracked item's quantity never exceeds its stock.
type Cart struct {
	Lines []CartLine `json:"lines"`
}

// NewCart wraps persisted lines, dropping any with a non-positive quantity
func NewCart(lines []CartLine) *Cart {
	c := &Cart{Lines: make([]CartLine, 0, len(lines))}
	for _, l := range lines {
		if l.Qty > 0 {
			c.Lines = append(c.Lines, l)
		}
	}
	return c
}

func (c *Cart) indexOf(itemID string) int {
	for i := range c.Lines {
		if c.Lines[i].ItemID == itemID {
			return i
		}
	}
	return -1
}

// IsEmpty reports whether the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Line returns the line for itemID
func (c *Cart) Line(itemID string) (CartLine, bool) {
	if i := c.indexOf(itemID); i >= 0 {
		return c.Lines[i], true
	}
	return CartLine{}, false
}

// QuantityOf returns the cart quantity for itemID, zero when absent
func (c *Cart) QuantityOf(itemID string) int {
	if i := c.indexOf(itemID); i >= 0 {
		return c.Lines[i].Qty
	}
	return 0
}

// AddLine adds one unit of item, snapshotting its current price on a new
// line. Tracked items already at their stock level are rejected.
func (c *Cart) AddLine(item CatalogItem) error {
	if stock, tracked := item.StockValue(); tracked && c.QuantityOf(item.ID) >= stock {
		return apperror.NewOutOfStockError(item.Name)
	}
	if i := c.indexOf(item.ID); i >= 0 {
		c.Lines[i].Qty++
		return nil
	}
	c.Lines = append(c.Lines, CartLine{
		ItemID: item.ID,
		Name:   item.Name,
		Price:  item.Price,
		Qty:    1,
	})
	return nil
}

// SetLineQuantity adjusts a line by delta. A result of zero or less
// removes the line. Only increases are checked against stock, so a line
// can always be brought down after its item's stock was lowered. Items
// missing from the catalog are treated as untracked.
func (c *Cart) SetLineQuantity(itemID string, delta int, catalog CatalogIndex) error {
	i := c.indexOf(itemID)
	if i < 0 {
		return apperror.ErrNoSuchLine
	}
	next := c.Lines[i].Qty + delta
	if next <= 0 {
		c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
		return nil
	}
	if item, ok := catalog.Lookup(itemID); ok && delta > 0 {
		if stock, tracked := item.StockValue(); tracked && next > stock {
			return apperror.NewStockExceededError(item.Name, stock)
		}
	}
	c.Lines[i].Qty = next
	return nil
}

// RemoveLine drops the line for itemID; absent lines are ignored
func (c *Cart) RemoveLine(itemID string) {
	if i := c.indexOf(itemID); i >= 0 {
		c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
	}
}

// OverridePrice replaces the snapshotted price on a line. The catalog
// price is untouched.
func (c *Cart) OverridePrice(itemID string, price decimal.Decimal) error {
	i := c.indexOf(itemID)
	if i < 0 {
		return apperror.ErrNoSuchLine
	}
	c.Lines[i].Price = price
	return nil
}

// Clear empties the cart
func (c *Cart) Clear() {
	c.Lines = []CartLine{}
}

// Subtotal sums price x qty over all lines
func (c *Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.Lines {
		total = total.Add(l.LineTotal())
	}
	return total
}

// ItemCount sums the quantities of all lines
func (c *Cart) ItemCount() int {
	n := 0
	for _, l := range c.Lines {
		n += l.Qty
	}
	return n
}
