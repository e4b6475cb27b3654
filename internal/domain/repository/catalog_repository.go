package repository

import (
	"context"

	"github.com/sangkips/storefront-pos/internal/domain/entity"
)

// CatalogRepository defines the interface for catalog data operations
type CatalogRepository interface {
	List(ctx context.Context) ([]entity.CatalogItem, error)
	GetByID(ctx context.Context, id string) (*entity.CatalogItem, error)
	// Save creates the item or replaces the existing one with the same id
	Save(ctx context.Context, item *entity.CatalogItem) error
	Delete(ctx context.Context, id string) error
	ReplaceAll(ctx context.Context, items []entity.CatalogItem) error
	// SetStock overwrites the stock of every listed item that still
	// exists. Unknown ids are ignored.
	SetStock(ctx context.Context, stock map[string]int) error
}
