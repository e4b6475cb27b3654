package repository

import (
	"context"
	"fmt"

	"github.com/sangkips/storefront-pos/internal/domain/entity"
	domainRepo "github.com/sangkips/storefront-pos/internal/domain/repository"
)

type saleRepository struct {
	kv domainRepo.KeyValueStore
}

// NewSaleRepository creates the sales ledger over the sales key
func NewSaleRepository(kv domainRepo.KeyValueStore) domainRepo.SaleRepository {
	return &saleRepository{kv: kv}
}

func (r *saleRepository) List(ctx context.Context) ([]entity.Sale, error) {
	var sales []entity.Sale
	found, err := r.kv.Get(ctx, domainRepo.KeySales, &sales)
	if err != nil {
		return nil, fmt.Errorf("failed to load sales: %w", err)
	}
	if !found || sales == nil {
		return []entity.Sale{}, nil
	}
	return sales, nil
}

func (r *saleRepository) Append(ctx context.Context, sale *entity.Sale) error {
	sales, err := r.List(ctx)
	if err != nil {
		return err
	}
	sales = append(sales, *sale)
	if err := r.kv.Set(ctx, domainRepo.KeySales, sales); err != nil {
		return fmt.Errorf("failed to append sale %s: %w", sale.InvoiceNumber, err)
	}
	return nil
}

type checkoutCommitter struct {
	kv domainRepo.KeyValueStore
}

// NewCheckoutCommitter creates a committer that applies a sale inside a
// single store transaction
func NewCheckoutCommitter(kv domainRepo.KeyValueStore) domainRepo.CheckoutCommitter {
	return &checkoutCommitter{kv: kv}
}

func (c *checkoutCommitter) Commit(ctx context.Context, sale *entity.Sale) error {
	return c.kv.Transaction(ctx, func(tx domainRepo.KeyValueStore) error {
		if err := NewCatalogRepository(tx).SetStock(ctx, sale.StockChanges()); err != nil {
			return err
		}
		if err := NewSaleRepository(tx).Append(ctx, sale); err != nil {
			return err
		}
		if err := NewCartRepository(tx).Save(ctx, &entity.Cart{}); err != nil {
			return err
		}
		return NewDraftRepository(tx).Clear(ctx)
	})
}
