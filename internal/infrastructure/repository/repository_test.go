package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/storefront-pos/internal/domain/entity"
	"github.com/sangkips/storefront-pos/internal/domain/enum"
	domainRepo "github.com/sangkips/storefront-pos/internal/domain/repository"
	"github.com/sangkips/storefront-pos/internal/infrastructure/database"
	"github.com/sangkips/storefront-pos/internal/infrastructure/store"
	"github.com/sangkips/storefront-pos/pkg/pagination"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewSQLiteDB(filepath.Join(t.TempDir(), "repo.db"), false)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return db
}

func TestCatalogRepository_SaveReplaceDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewCatalogRepository(store.NewMemoryStore())

	items, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	shirt := &entity.CatalogItem{ID: "a", Name: "Shirt", Category: enum.CategoryShirts, Price: decimal.NewFromInt(550)}
	require.NoError(t, repo.Save(ctx, shirt))
	shirt.Price = decimal.NewFromInt(500)
	require.NoError(t, repo.Save(ctx, shirt))
	require.NoError(t, repo.Save(ctx, &entity.CatalogItem{ID: "b", Name: "Hoodie", Category: enum.CategoryHoodies, Price: decimal.NewFromInt(400)}))

	items, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.True(t, decimal.NewFromInt(500).Equal(items[0].Price))

	require.NoError(t, repo.Delete(ctx, "a"))
	got, err := repo.GetByID(ctx, "a")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCatalogRepository_SetStockSkipsDeletedItems(t *testing.T) {
	ctx := context.Background()
	repo := NewCatalogRepository(store.NewMemoryStore())
	require.NoError(t, repo.ReplaceAll(ctx, []entity.CatalogItem{
		{ID: "a", Name: "Shirt", Stock: entity.IntPtr(5)},
		{ID: "b", Name: "Hoodie"},
	}))

	require.NoError(t, repo.SetStock(ctx, map[string]int{"a": 2, "gone": 7}))

	items, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, 2, *items[0].Stock)
	assert.Nil(t, items[1].Stock)
}

func TestSaleRepository_LegacyRecordWithoutGrandTotal(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryStore()
	kv.SetRaw(domainRepo.KeySales, []byte(`[{"id":"1","timestampISO":"2024-01-05T10:00:00Z","invoiceNumber":"ADG-20240105100000","items":[],"subtotal":300,"payment":{"method":"Cash","reference":"-"},"customer":{"name":"A","phone":""}}]`))
	repo := NewSaleRepository(kv)

	sales, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.False(t, sales[0].GrandTotal.Valid)
	assert.True(t, decimal.NewFromInt(300).Equal(sales[0].Total()))
	assert.Equal(t, enum.PaymentMethodCash, sales[0].Payment.Method)
}

func TestCheckoutCommitter_Commit(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryStore()
	catalog := NewCatalogRepository(kv)
	carts := NewCartRepository(kv)
	drafts := NewDraftRepository(kv)
	require.NoError(t, catalog.ReplaceAll(ctx, []entity.CatalogItem{{ID: "a", Name: "Shirt", Price: decimal.NewFromInt(100), Stock: entity.IntPtr(5)}}))
	require.NoError(t, carts.Save(ctx, &entity.Cart{Lines: []entity.CartLine{{ItemID: "a", Name: "Shirt", Price: decimal.NewFromInt(100), Qty: 3}}}))
	require.NoError(t, drafts.Save(ctx, entity.Draft{CustomerName: "Ravi"}))

	sale := &entity.Sale{
		ID:            "1",
		TimestampISO:  time.Now().UTC().Format(time.RFC3339Nano),
		InvoiceNumber: "ADG-1",
		Items:         []entity.SaleLine{{ItemID: "a", Name: "Shirt", Price: decimal.NewFromInt(100), Qty: 3, StockBefore: entity.IntPtr(5), StockAfter: entity.IntPtr(2)}},
		Subtotal:      decimal.NewFromInt(300),
	}
	require.NoError(t, NewCheckoutCommitter(kv).Commit(ctx, sale))

	item, err := catalog.GetByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 2, *item.Stock)

	cart, err := carts.Load(ctx)
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())

	draft, err := drafts.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, draft.CustomerName)

	sales, err := NewSaleRepository(kv).List(ctx)
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, "ADG-1", sales[0].InvoiceNumber)
}

func TestSettingsRepository_DefaultsWhenMissing(t *testing.T) {
	ctx := context.Background()
	repo := NewSettingsRepository(store.NewMemoryStore())

	s, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultQRDataURL, s.QRSrc)

	require.NoError(t, repo.Save(ctx, entity.Settings{QRSrc: "data:image/png;base64,AAA"}))
	s, err = repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,AAA", s.QRSrc)
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestDB(t))

	require.NoError(t, repo.Create(ctx, &entity.User{Name: "Asha", Email: "asha@example.com", Role: entity.RoleCashier}))
	require.NoError(t, repo.Create(ctx, &entity.User{Name: "Admin", Email: "admin@example.com", Role: entity.RoleAdmin}))

	u, err := repo.GetByEmail(ctx, "asha@example.com")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.NotEqual(t, uuid.Nil, u.ID)

	missing, err := repo.GetByID(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)

	users, total, err := repo.List(ctx, &pagination.PaginationParams{Page: 1, PerPage: 10}, "ASHA")
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, users, 1)
	assert.Equal(t, "Asha", users[0].Name)
}

func TestIdempotencyRepository_ReserveCompleteRelease(t *testing.T) {
	ctx := context.Background()
	repo := NewIdempotencyRepository(newTestDB(t))
	userID := uuid.New()
	claim := func(key, endpoint string, expires time.Time) *entity.IdempotencyKey {
		return &entity.IdempotencyKey{Key: key, UserID: userID, Endpoint: endpoint, RequestHash: "h", ExpiresAt: expires}
	}
	later := time.Now().Add(time.Hour)

	first, ok, err := repo.Reserve(ctx, claim("k1", "POST /api/v1/checkout", later))
	require.NoError(t, err)
	require.True(t, ok)

	held, ok, err := repo.Reserve(ctx, claim("k1", "POST /api/v1/checkout", later))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, first.ID, held.ID)
	assert.False(t, held.Completed())

	// the same key on another endpoint is a separate scope
	_, ok, err = repo.Reserve(ctx, claim("k1", "POST /api/v1/cart/lines", later))
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, repo.Complete(ctx, first.ID, 201, `{"success":true}`))
	held, _, err = repo.Reserve(ctx, claim("k1", "POST /api/v1/checkout", later))
	require.NoError(t, err)
	assert.Equal(t, 201, held.ResponseCode)
	assert.JSONEq(t, `{"success":true}`, held.ResponseBody)

	failed, ok, err := repo.Reserve(ctx, claim("k2", "POST /api/v1/checkout", later))
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, repo.Release(ctx, failed.ID))
	_, ok, err = repo.Reserve(ctx, claim("k2", "POST /api/v1/checkout", later))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestIdempotencyRepository_ExpiredKeysAreReclaimedAndPurged(t *testing.T) {
	ctx := context.Background()
	repo := NewIdempotencyRepository(newTestDB(t))
	userID := uuid.New()

	stale, ok, err := repo.Reserve(ctx, &entity.IdempotencyKey{
		Key: "old", UserID: userID, Endpoint: "POST /api/v1/checkout", ExpiresAt: time.Now().Add(-time.Hour),
	})
	require.NoError(t, err)
	require.True(t, ok)

	fresh, ok, err := repo.Reserve(ctx, &entity.IdempotencyKey{
		Key: "old", UserID: userID, Endpoint: "POST /api/v1/checkout", ExpiresAt: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NotEqual(t, stale.ID, fresh.ID)

	_, _, err = repo.Reserve(ctx, &entity.IdempotencyKey{
		Key: "gone", UserID: userID, Endpoint: "POST /api/v1/checkout", ExpiresAt: time.Now().Add(-time.Hour),
	})
	require.NoError(t, err)
	require.NoError(t, repo.DeleteExpired(ctx))
	_, ok, err = repo.Reserve(ctx, &entity.IdempotencyKey{
		Key: "gone", UserID: userID, Endpoint: "POST /api/v1/checkout", ExpiresAt: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)
	assert.True(t, ok)
}
