package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/storefront-pos/internal/domain/entity"
	"github.com/sangkips/storefront-pos/internal/domain/enum"
	domainRepo "github.com/sangkips/storefront-pos/internal/domain/repository"
	"github.com/sangkips/storefront-pos/internal/infrastructure/replication"
	"github.com/sangkips/storefront-pos/internal/infrastructure/repository"
	"github.com/sangkips/storefront-pos/internal/infrastructure/store"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// rig wires the services over an in-memory store and document store
type rig struct {
	kv       *store.MemoryStore
	catalog  domainRepo.CatalogRepository
	cart     domainRepo.CartRepository
	draft    domainRepo.DraftRepository
	sales    domainRepo.SaleRepository
	settings domainRepo.SettingsRepository
	cloud    *replication.MemoryDocumentStore

	register *Register
	cartSvc  *CartService
	checkout *CheckoutService
	catSvc   *CatalogService
}

func newRig(t *testing.T, webhookURL string) *rig {
	t.Helper()
	kv := store.NewMemoryStore()
	r := &rig{
		kv:       kv,
		catalog:  repository.NewCatalogRepository(kv),
		cart:     repository.NewCartRepository(kv),
		draft:    repository.NewDraftRepository(kv),
		sales:    repository.NewSaleRepository(kv),
		settings: repository.NewSettingsRepository(kv),
		cloud:    replication.NewMemoryDocumentStore(),
		register: NewRegister(),
	}
	r.cartSvc = NewCartService(r.register, r.cart, r.draft, r.catalog)
	r.checkout = NewCheckoutService(
		r.register, r.cart, r.draft, r.catalog,
		repository.NewCheckoutCommitter(kv),
		replication.NewWebhookSink(webhookURL, time.Second),
		r.cloud, time.UTC,
	)
	r.catSvc = NewCatalogService(r.register, r.catalog, r.settings, r.cloud)
	t.Cleanup(r.checkout.Wait)
	return r
}

func (r *rig) stock(t *testing.T, items ...entity.CatalogItem) {
	t.Helper()
	require.NoError(t, r.catalog.ReplaceAll(context.Background(), items))
}

func signedIn() context.Context {
	return WithSession(context.Background(), Session{UserID: uuid.New(), Email: "cashier@example.com", Role: entity.RoleCashier})
}

func item(id, name string, price int64, stock *int) entity.CatalogItem {
	return entity.CatalogItem{
		ID:       id,
		Name:     name,
		Category: enum.CategoryShirts,
		Price:    decimal.NewFromInt(price),
		Stock:    stock,
	}
}
