package repository

import (
	"context"
	"fmt"

	"github.com/sangkips/storefront-pos/internal/domain/entity"
	domainRepo "github.com/sangkips/storefront-pos/internal/domain/repository"
)

type cartRepository struct {
	kv domainRepo.KeyValueStore
}

// NewCartRepository creates a cart repository over the cart key
func NewCartRepository(kv domainRepo.KeyValueStore) domainRepo.CartRepository {
	return &cartRepository{kv: kv}
}

func (r *cartRepository) Load(ctx context.Context) (*entity.Cart, error) {
	var lines []entity.CartLine
	found, err := r.kv.Get(ctx, domainRepo.KeyCart, &lines)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if !found {
		lines = nil
	}
	return entity.NewCart(lines), nil
}

func (r *cartRepository) Save(ctx context.Context, cart *entity.Cart) error {
	lines := cart.Lines
	if lines == nil {
		lines = []entity.CartLine{}
	}
	if err := r.kv.Set(ctx, domainRepo.KeyCart, lines); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

type draftRepository struct {
	kv domainRepo.KeyValueStore
}

// NewDraftRepository creates a repository for the in-progress checkout inputs
func NewDraftRepository(kv domainRepo.KeyValueStore) domainRepo.DraftRepository {
	return &draftRepository{kv: kv}
}

func (r *draftRepository) Get(ctx context.Context) (entity.Draft, error) {
	var draft entity.Draft
	found, err := r.kv.Get(ctx, domainRepo.KeyCheckoutDraft, &draft)
	if err != nil {
		return entity.Draft{}, fmt.Errorf("failed to load checkout draft: %w", err)
	}
	if !found {
		return entity.Draft{}, nil
	}
	return draft, nil
}

func (r *draftRepository) Save(ctx context.Context, draft entity.Draft) error {
	return r.kv.Set(ctx, domainRepo.KeyCheckoutDraft, draft)
}

func (r *draftRepository) Clear(ctx context.Context) error {
	return r.kv.Delete(ctx, domainRepo.KeyCheckoutDraft)
}
