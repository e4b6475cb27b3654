package repository

import (
	"context"

	"github.com/sangkips/storefront-pos/internal/domain/entity"
)

// SaleSink receives a copy of every committed sale
type SaleSink interface {
	Name() string
	PushSale(ctx context.Context, sale *entity.Sale) error
}

// DocumentStore is the cloud mirror of the catalog, settings and ledger.
// It is never authoritative; local state wins.
type DocumentStore interface {
	Name() string
	ListItems(ctx context.Context) ([]entity.CatalogItem, error)
	// GetItem returns nil, nil when the document does not exist
	GetItem(ctx context.Context, id string) (*entity.CatalogItem, error)
	PutItem(ctx context.Context, item *entity.CatalogItem) error
	DeleteItem(ctx context.Context, id string) error
	UpdateItemStock(ctx context.Context, id string, stock int) error
	// GetSettings returns nil, nil when no settings have been mirrored
	GetSettings(ctx context.Context) (*entity.Settings, error)
	PutSettings(ctx context.Context, settings entity.Settings) error
	AppendSale(ctx context.Context, sale *entity.Sale) error
}
