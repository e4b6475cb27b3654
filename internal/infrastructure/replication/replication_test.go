package replication

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sangkips/storefront-pos/internal/domain/entity"
	"github.com/sangkips/storefront-pos/internal/domain/enum"
	"github.com/sangkips/storefront-pos/pkg/apperror"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSale() *entity.Sale {
	return &entity.Sale{
		ID:            "1704448800000",
		TimestampISO:  "2024-01-05T10:00:00Z",
		InvoiceNumber: "ADG-20240105100000",
		Items: []entity.SaleLine{
			{ItemID: "a", Name: "Shirt", Price: decimal.NewFromInt(550), Qty: 2, StockBefore: entity.IntPtr(5), StockAfter: entity.IntPtr(3)},
			{ItemID: "b", Name: "Hoodie", Price: decimal.NewFromInt(400), Qty: 1},
		},
		Subtotal:   decimal.NewFromInt(1500),
		Discount:   decimal.NewFromInt(100),
		GrandTotal: decimal.NewNullDecimal(decimal.NewFromInt(1400)),
		Payment:    entity.Payment{Method: enum.PaymentMethodUPI, Reference: "UTR123"},
		Customer:   entity.Customer{Name: "Ravi", Phone: "98400"},
	}
}

func TestWebhookSink_PostsSaleAsPlainText(t *testing.T) {
	var (
		gotContentType string
		gotBody        map[string]json.RawMessage
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &gotBody)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("<html>ignored</html>"))
	}))
	defer srv.Close()

	sink := NewWebhookSink(srv.URL, 0)
	require.True(t, sink.Enabled())
	require.NoError(t, sink.PushSale(context.Background(), testSale()))

	assert.Equal(t, "text/plain;charset=utf-8", gotContentType)
	assert.JSONEq(t, `"sale"`, string(gotBody["type"]))

	var sale entity.Sale
	require.NoError(t, json.Unmarshal(gotBody["sale"], &sale))
	assert.Equal(t, "ADG-20240105100000", sale.InvoiceNumber)
	assert.True(t, decimal.NewFromInt(1400).Equal(sale.Total()))
}

func TestWebhookSink_SkipsNonHTTPURL(t *testing.T) {
	for _, url := range []string{"", "  ", "ftp://example.com", "script.google.com/exec"} {
		sink := NewWebhookSink(url, 0)
		assert.False(t, sink.Enabled(), url)
		assert.NoError(t, sink.PushSale(context.Background(), testSale()), url)
	}
}

func TestWebhookSink_TransportErrorIsReplicationError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	err := NewWebhookSink(url, 0).PushSale(context.Background(), testSale())
	require.Error(t, err)

	var repErr *apperror.ReplicationError
	require.ErrorAs(t, err, &repErr)
	assert.Equal(t, "webhook", repErr.Sink)
}

func TestNullDocumentStore_RefusesReads(t *testing.T) {
	ctx := context.Background()
	store := NewNullDocumentStore()

	_, err := store.ListItems(ctx)
	assert.ErrorIs(t, err, ErrCloudDisabled)
	_, err = store.GetSettings(ctx)
	assert.ErrorIs(t, err, ErrCloudDisabled)
	assert.NoError(t, store.AppendSale(ctx, testSale()))
}

func TestMemoryDocumentStore_StockUpdateNeedsDocument(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryDocumentStore()

	assert.Error(t, store.UpdateItemStock(ctx, "a", 3))

	require.NoError(t, store.PutItem(ctx, &entity.CatalogItem{ID: "a", Name: "Shirt"}))
	require.NoError(t, store.UpdateItemStock(ctx, "a", 3))

	item, err := store.GetItem(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 3, *item.Stock)
}

func TestSaleToDoc(t *testing.T) {
	doc := saleToDoc(testSale())

	assert.Equal(t, 1400.0, doc.GrandTotal)
	assert.Equal(t, "UPI", doc.Payment["method"])
	require.Len(t, doc.Items, 2)
	assert.Equal(t, int64(3), *doc.Items[0].StockAfter)
	assert.Nil(t, doc.Items[1].StockAfter)
}

func TestItemToDoc(t *testing.T) {
	doc := itemToDoc(&entity.CatalogItem{ID: "a", Name: "Jeans", Category: enum.CategoryJeans, Price: decimal.RequireFromString("749.50"), Stock: entity.IntPtr(4)})

	assert.Equal(t, "Jeans", doc.Category)
	assert.Equal(t, 749.5, doc.Price)
	assert.Equal(t, int64(4), *doc.Stock)
}
