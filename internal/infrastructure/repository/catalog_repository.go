package repository

import (
	"context"
	"fmt"

	"github.com/sangkips/storefront-pos/internal/domain/entity"
	domainRepo "github.com/sangkips/storefront-pos/internal/domain/repository"
)

type catalogRepository struct {
	kv domainRepo.KeyValueStore
}

// NewCatalogRepository creates a catalog repository over the menuItems key
func NewCatalogRepository(kv domainRepo.KeyValueStore) domainRepo.CatalogRepository {
	return &catalogRepository{kv: kv}
}

func (r *catalogRepository) List(ctx context.Context) ([]entity.CatalogItem, error) {
	var items []entity.CatalogItem
	found, err := r.kv.Get(ctx, domainRepo.KeyMenuItems, &items)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	if !found || items == nil {
		return []entity.CatalogItem{}, nil
	}
	return items, nil
}

func (r *catalogRepository) GetByID(ctx context.Context, id string) (*entity.CatalogItem, error) {
	items, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}
	return nil, nil
}

func (r *catalogRepository) Save(ctx context.Context, item *entity.CatalogItem) error {
	items, err := r.List(ctx)
	if err != nil {
		return err
	}
	replaced := false
	for i := range items {
		if items[i].ID == item.ID {
			items[i] = *item
			replaced = true
			break
		}
	}
	if !replaced {
		items = append(items, *item)
	}
	return r.ReplaceAll(ctx, items)
}

func (r *catalogRepository) Delete(ctx context.Context, id string) error {
	items, err := r.List(ctx)
	if err != nil {
		return err
	}
	kept := items[:0]
	for _, it := range items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	return r.ReplaceAll(ctx, kept)
}

func (r *catalogRepository) ReplaceAll(ctx context.Context, items []entity.CatalogItem) error {
	if items == nil {
		items = []entity.CatalogItem{}
	}
	if err := r.kv.Set(ctx, domainRepo.KeyMenuItems, items); err != nil {
		return fmt.Errorf("failed to save catalog: %w", err)
	}
	return nil
}

func (r *catalogRepository) SetStock(ctx context.Context, stock map[string]int) error {
	if len(stock) == 0 {
		return nil
	}
	items, err := r.List(ctx)
	if err != nil {
		return err
	}
	for i := range items {
		if s, ok := stock[items[i].ID]; ok {
			items[i].Stock = entity.IntPtr(s)
		}
	}
	return r.ReplaceAll(ctx, items)
}
