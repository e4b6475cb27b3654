package entity

import (
	"net/url"
	"strings"

	"github.com/sangkips/storefront-pos/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// CatalogItem represents a sellable item on the menu
type CatalogItem struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Category enum.Category   `json:"category"`
	Price    decimal.Decimal `json:"price"`
	// Stock is nil for untracked items, which are never limited
	Stock    *int   `json:"stock,omitempty"`
	ImageSrc string `json:"imageSrc,omitempty"`
}

// IsTracked reports whether the item carries a finite stock count
func (i CatalogItem) IsTracked() bool {
	return i.Stock != nil
}

// StockValue returns the stock count and whether it is tracked
func (i CatalogItem) StockValue() (int, bool) {
	if i.Stock == nil {
		return 0, false
	}
	return *i.Stock, true
}

// DisplayImage returns the configured image or a generated placeholder
func (i CatalogItem) DisplayImage() string {
	if i.ImageSrc != "" {
		return i.ImageSrc
	}
	return PlaceholderImageFor(i.Name)
}

// CatalogIndex is an id keyed lookup over the catalog, rebuilt from the
// persisted item list whenever it is needed
type CatalogIndex map[string]CatalogItem

// IndexCatalog builds a CatalogIndex from an item list
func IndexCatalog(items []CatalogItem) CatalogIndex {
	idx := make(CatalogIndex, len(items))
	for _, it := range items {
		idx[it.ID] = it
	}
	return idx
}

// Lookup returns the item with the given id
func (idx CatalogIndex) Lookup(id string) (CatalogItem, bool) {
	it, ok := idx[id]
	return it, ok
}

// IntPtr returns a pointer to n, for building tracked stock values
func IntPtr(n int) *int {
	return &n
}

// PlaceholderImageFor renders the item initials into an SVG data URL
func PlaceholderImageFor(name string) string {
	initials := strings.TrimSpace(name)
	if initials == "" {
		initials = "?"
	}
	if r := []rune(initials); len(r) > 2 {
		initials = string(r[:2])
	}
	initials = strings.ToUpper(initials)
	svg := "<svg xmlns='http://www.w3.org/2000/svg' width='400' height='300'>" +
		"<rect width='100%' height='100%' fill='#020617'/>" +
		"<text x='50%' y='50%' dominant-baseline='middle' text-anchor='middle' font-size='48' fill='#9ca3af' font-family='Arial, sans-serif'>" +
		initials +
		"</text></svg>"
	return "data:image/svg+xml;utf8," + url.PathEscape(svg)
}
