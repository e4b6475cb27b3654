package replication

import (
	"context"
	"errors"

	"github.com/sangkips/storefront-pos/internal/domain/entity"
	domainRepo "github.com/sangkips/storefront-pos/internal/domain/repository"
)

// ErrCloudDisabled is returned by reads against the null document store so
// a pull never wipes local state
var ErrCloudDisabled = errors.New("cloud document store is not configured")

// NullDocumentStore accepts writes and discards them
type NullDocumentStore struct{}

// NewNullDocumentStore creates a document store that does nothing
func NewNullDocumentStore() *NullDocumentStore {
	return &NullDocumentStore{}
}

var _ domainRepo.DocumentStore = (*NullDocumentStore)(nil)

func (NullDocumentStore) Name() string { return "none" }

func (NullDocumentStore) ListItems(context.Context) ([]entity.CatalogItem, error) {
	return nil, ErrCloudDisabled
}

func (NullDocumentStore) GetItem(context.Context, string) (*entity.CatalogItem, error) {
	return nil, ErrCloudDisabled
}

func (NullDocumentStore) PutItem(context.Context, *entity.CatalogItem) error { return nil }

func (NullDocumentStore) DeleteItem(context.Context, string) error { return nil }

func (NullDocumentStore) UpdateItemStock(context.Context, string, int) error { return nil }

func (NullDocumentStore) GetSettings(context.Context) (*entity.Settings, error) {
	return nil, ErrCloudDisabled
}

func (NullDocumentStore) PutSettings(context.Context, entity.Settings) error { return nil }

func (NullDocumentStore) AppendSale(context.Context, *entity.Sale) error { return nil }
