package service

import (
	"errors"
	"testing"
	"time"

	"github.com/sangkips/storefront-pos/internal/domain/entity"
	"github.com/sangkips/storefront-pos/internal/domain/enum"
	"github.com/sangkips/storefront-pos/pkg/apperror"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSale_EmptyCart(t *testing.T) {
	_, err := BuildSale(nil, entity.CatalogIndex{}, SaleMeta{}, time.Now())
	assert.True(t, errors.Is(err, apperror.ErrEmptyCart))
}

func TestBuildSale_Defaults(t *testing.T) {
	now := time.Date(2024, 1, 5, 14, 30, 15, 250_000_000, time.UTC)
	lines := []entity.CartLine{
		{ItemID: "a", Name: "Shirt", Price: decimal.NewFromInt(550), Qty: 2},
		{ItemID: "b", Name: "Hoodie", Price: decimal.NewFromInt(400), Qty: 1},
	}
	catalog := entity.IndexCatalog([]entity.CatalogItem{
		item("a", "Shirt", 550, entity.IntPtr(5)),
		item("b", "Hoodie", 400, nil),
	})

	sale, err := BuildSale(lines, catalog, SaleMeta{}, now)
	require.NoError(t, err)

	assert.Equal(t, "1704465015250", sale.ID)
	assert.Equal(t, "2024-01-05T14:30:15.250Z", sale.TimestampISO)
	assert.Equal(t, "ADG-20240105143015", sale.InvoiceNumber)
	assert.Equal(t, entity.WalkInCustomer, sale.Customer.Name)
	assert.Equal(t, enum.PaymentMethodPending, sale.Payment.Method)
	assert.True(t, decimal.NewFromInt(1500).Equal(sale.Subtotal))
	assert.True(t, decimal.Zero.Equal(sale.Discount))
	assert.True(t, decimal.NewFromInt(1500).Equal(sale.Total()))

	require.Len(t, sale.Items, 2)
	assert.Equal(t, 5, *sale.Items[0].StockBefore)
	assert.Equal(t, 3, *sale.Items[0].StockAfter)
	assert.Nil(t, sale.Items[1].StockBefore)
	assert.Nil(t, sale.Items[1].StockAfter)
}

func TestBuildSale_StockAfterNeverNegative(t *testing.T) {
	lines := []entity.CartLine{{ItemID: "a", Name: "Shirt", Price: decimal.NewFromInt(10), Qty: 4}}
	catalog := entity.IndexCatalog([]entity.CatalogItem{item("a", "Shirt", 10, entity.IntPtr(2))})

	sale, err := BuildSale(lines, catalog, SaleMeta{}, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 0, *sale.Items[0].StockAfter)
}

func TestBuildSale_ClampsDiscount(t *testing.T) {
	lines := []entity.CartLine{{ItemID: "a", Name: "Shirt", Price: decimal.NewFromInt(100), Qty: 1}}

	tests := []struct {
		name     string
		discount int64
		want     int64
	}{
		{"within range", 30, 30},
		{"above subtotal", 250, 100},
		{"negative", -5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := decimal.NewFromInt(tt.discount)
			sale, err := BuildSale(lines, entity.CatalogIndex{}, SaleMeta{Discount: &d}, time.Now())
			require.NoError(t, err)
			assert.True(t, decimal.NewFromInt(tt.want).Equal(sale.Discount), sale.Discount.String())
			assert.True(t, sale.Total().GreaterThanOrEqual(decimal.Zero))
		})
	}
}

func TestBuildSale_UsesSuppliedMeta(t *testing.T) {
	ts := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	lines := []entity.CartLine{{ItemID: "a", Name: "Shirt", Price: decimal.NewFromInt(100), Qty: 1}}
	meta := SaleMeta{
		Timestamp:     &ts,
		InvoiceNumber: "INV-1",
		Payment:       &entity.Payment{Method: enum.PaymentMethodUPI, Reference: "UTR123"},
		Customer:      &entity.Customer{Name: "  Asha  ", Phone: " 98765 "},
	}

	sale, err := BuildSale(lines, entity.CatalogIndex{}, meta, time.Now())
	require.NoError(t, err)
	assert.Equal(t, "INV-1", sale.InvoiceNumber)
	assert.Equal(t, "2024-03-01T09:00:00.000Z", sale.TimestampISO)
	assert.Equal(t, entity.Payment{Method: enum.PaymentMethodUPI, Reference: "UTR123"}, sale.Payment)
	assert.Equal(t, entity.Customer{Name: "Asha", Phone: "98765"}, sale.Customer)
}

func TestBuildSale_InvoiceUsesRegisterTimeZone(t *testing.T) {
	kolkata, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)
	ts := time.Date(2024, 3, 1, 20, 0, 0, 0, time.UTC)
	lines := []entity.CartLine{{ItemID: "a", Name: "Shirt", Price: decimal.NewFromInt(100), Qty: 1}}

	sale, err := BuildSale(lines, entity.CatalogIndex{}, SaleMeta{Timestamp: &ts}, time.Now().In(kolkata))
	require.NoError(t, err)
	assert.Equal(t, "ADG-20240302013000", sale.InvoiceNumber)
	assert.Equal(t, "2024-03-01T20:00:00.000Z", sale.TimestampISO)
}

func TestSaleMeta_WithDraft(t *testing.T) {
	draft := entity.Draft{
		CustomerName:  "Ravi",
		CustomerPhone: "123",
		Discount:      decimal.NewNullDecimal(decimal.NewFromInt(20)),
	}

	meta := SaleMeta{}.WithDraft(draft)
	require.NotNil(t, meta.Discount)
	assert.True(t, decimal.NewFromInt(20).Equal(*meta.Discount))
	assert.Equal(t, "Ravi", meta.Customer.Name)

	own := decimal.NewFromInt(5)
	meta = SaleMeta{Discount: &own, Customer: &entity.Customer{Name: "Meera"}}.WithDraft(draft)
	assert.True(t, own.Equal(*meta.Discount))
	assert.Equal(t, "Meera", meta.Customer.Name)
}
