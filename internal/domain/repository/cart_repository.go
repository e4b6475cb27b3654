package repository

import (
	"context"

	"github.com/sangkips/storefront-pos/internal/domain/entity"
)

// CartRepository defines the interface for the register's open cart
type CartRepository interface {
	Load(ctx context.Context) (*entity.Cart, error)
	Save(ctx context.Context, cart *entity.Cart) error
}

// DraftRepository stores the checkout inputs being filled in
type DraftRepository interface {
	Get(ctx context.Context) (entity.Draft, error)
	Save(ctx context.Context, draft entity.Draft) error
	Clear(ctx context.Context) error
}
