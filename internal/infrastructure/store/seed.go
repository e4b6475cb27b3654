package store

import (
	"context"
	"fmt"
	"log"

	"github.com/sangkips/storefront-pos/internal/domain/entity"
	"github.com/sangkips/storefront-pos/internal/domain/enum"
	domainRepo "github.com/sangkips/storefront-pos/internal/domain/repository"
	"github.com/sangkips/storefront-pos/pkg/utils"
	"github.com/shopspring/decimal"
)

// SampleCatalog returns the garments a fresh register starts with. None
// of them is stock-tracked.
func SampleCatalog() []entity.CatalogItem {
	sample := []struct {
		name     string
		category enum.Category
		price    int64
		image    string
	}{
		{"Drop Shoulder T-Shirt", enum.CategoryTShirts, 400, "drop.jpg"},
		{"Shirt", enum.CategoryShirts, 550, "shirt.webp"},
		{"Sports T-Shirt", enum.CategoryTShirts, 300, "sports.webp"},
		{"Collar T-shirt", enum.CategoryTShirts, 400, "collar.png"},
		{"Hoodie", enum.CategoryHoodies, 400, "hoodie.png"},
		{"Denim Jeans", enum.CategoryJeans, 750, "jeans.png"},
		{"Formal Pant", enum.CategoryFormalPants, 750, "formal.png"},
		{"Track Pant", enum.CategoryTrackPants, 300, "track.png"},
	}

	items := make([]entity.CatalogItem, 0, len(sample))
	for _, s := range sample {
		items = append(items, entity.CatalogItem{
			ID:       utils.NewItemID(),
			Name:     s.name,
			Category: s.category,
			Price:    decimal.NewFromInt(s.price),
			ImageSrc: s.image,
		})
	}
	return items
}

// Seed initialises an empty store once. It reports whether anything was
// written.
func Seed(ctx context.Context, kv domainRepo.KeyValueStore, withCatalog bool) (bool, error) {
	var seeded bool
	found, err := kv.Get(ctx, domainRepo.KeySeeded, &seeded)
	if err != nil {
		return false, err
	}
	if found && seeded {
		return false, nil
	}

	catalog := []entity.CatalogItem{}
	if withCatalog {
		catalog = SampleCatalog()
	}

	err = kv.Transaction(ctx, func(tx domainRepo.KeyValueStore) error {
		writes := []struct {
			key   string
			value any
		}{
			{domainRepo.KeyMenuItems, catalog},
			{domainRepo.KeyCart, []entity.CartLine{}},
			{domainRepo.KeySales, []entity.Sale{}},
			{domainRepo.KeySettings, entity.DefaultSettings()},
			{domainRepo.KeySeeded, true},
		}
		for _, w := range writes {
			if err := tx.Set(ctx, w.key, w.value); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to seed store: %w", err)
	}

	log.Printf("[store] seeded register with %d catalog items", len(catalog))
	return true, nil
}
