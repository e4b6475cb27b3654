package repository

import (
	"context"

	"github.com/sangkips/storefront-pos/internal/domain/entity"
)

// SaleRepository is the append-only sales ledger
type SaleRepository interface {
	Append(ctx context.Context, sale *entity.Sale) error
	// List returns every sale in commit order
	List(ctx context.Context) ([]entity.Sale, error)
}

// CheckoutCommitter applies a built sale to local state in one step:
// stock overwrite, ledger append, cart and draft reset
type CheckoutCommitter interface {
	Commit(ctx context.Context, sale *entity.Sale) error
}
