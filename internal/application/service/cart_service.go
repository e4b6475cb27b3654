package service

import (
	"context"
	"strings"

	"github.com/sangkips/storefront-pos/internal/domain/entity"
	"github.com/sangkips/storefront-pos/internal/domain/repository"
	"github.com/sangkips/storefront-pos/pkg/apperror"
	"github.com/shopspring/decimal"
)

// CartService applies cashier actions to the persisted cart
type CartService struct {
	register    *Register
	cartRepo    repository.CartRepository
	draftRepo   repository.DraftRepository
	catalogRepo repository.CatalogRepository
}

// NewCartService creates a new cart service
func NewCartService(
	register *Register,
	cartRepo repository.CartRepository,
	draftRepo repository.DraftRepository,
	catalogRepo repository.CatalogRepository,
) *CartService {
	return &CartService{
		register:    register,
		cartRepo:    cartRepo,
		draftRepo:   draftRepo,
		catalogRepo: catalogRepo,
	}
}

// CartView is the cart as shown at the till
type CartView struct {
	Lines     []entity.CartLine `json:"lines"`
	Subtotal  decimal.Decimal   `json:"subtotal"`
	ItemCount int               `json:"itemCount"`
	Draft     entity.Draft      `json:"draft"`
}

// DraftInput updates the in-progress checkout inputs. Nil fields are kept.
type DraftInput struct {
	CustomerName  *string
	CustomerPhone *string
	Discount      *decimal.Decimal
	ClearDiscount bool
}

// GetCart returns the current cart
func (s *CartService) GetCart(ctx context.Context) (*CartView, error) {
	cart, err := s.cartRepo.Load(ctx)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, cart)
}

// AddItem adds one unit of a catalog item
func (s *CartService) AddItem(ctx context.Context, itemID string) (*CartView, error) {
	return s.mutate(ctx, func(cart *entity.Cart, catalog entity.CatalogIndex) error {
		item, ok := catalog.Lookup(itemID)
		if !ok {
			return apperror.NewNotFoundError("Item")
		}
		return cart.AddLine(item)
	})
}

// ChangeQuantity adjusts a line by delta; reaching zero removes it
func (s *CartService) ChangeQuantity(ctx context.Context, itemID string, delta int) (*CartView, error) {
	return s.mutate(ctx, func(cart *entity.Cart, catalog entity.CatalogIndex) error {
		return cart.SetLineQuantity(itemID, delta, catalog)
	})
}

// OverridePrice sets the price charged for a line
func (s *CartService) OverridePrice(ctx context.Context, itemID string, price decimal.Decimal) (*CartView, error) {
	if price.IsNegative() {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "price", Message: "Price cannot be negative"},
		})
	}
	return s.mutate(ctx, func(cart *entity.Cart, _ entity.CatalogIndex) error {
		return cart.OverridePrice(itemID, price)
	})
}

// RemoveItem drops a line; removing an absent line is not an error
func (s *CartService) RemoveItem(ctx context.Context, itemID string) (*CartView, error) {
	return s.mutate(ctx, func(cart *entity.Cart, _ entity.CatalogIndex) error {
		cart.RemoveLine(itemID)
		return nil
	})
}

// Clear empties the cart
func (s *CartService) Clear(ctx context.Context) (*CartView, error) {
	return s.mutate(ctx, func(cart *entity.Cart, _ entity.CatalogIndex) error {
		cart.Clear()
		return nil
	})
}

// UpdateDraft stores the customer and discount being typed in
func (s *CartService) UpdateDraft(ctx context.Context, input *DraftInput) (entity.Draft, error) {
	var draft entity.Draft
	err := s.register.Do(func() error {
		current, err := s.draftRepo.Get(ctx)
		if err != nil {
			return err
		}
		if input.CustomerName != nil {
			current.CustomerName = strings.TrimSpace(*input.CustomerName)
		}
		if input.CustomerPhone != nil {
			current.CustomerPhone = strings.TrimSpace(*input.CustomerPhone)
		}
		switch {
		case input.ClearDiscount:
			current.Discount = decimal.NullDecimal{}
		case input.Discount != nil:
			current.Discount = decimal.NewNullDecimal(*input.Discount)
		}
		if err := s.draftRepo.Save(ctx, current); err != nil {
			return err
		}
		draft = current
		return nil
	})
	return draft, err
}

// mutate loads the cart and catalog, applies fn and persists the cart
// only when fn succeeds
func (s *CartService) mutate(ctx context.Context, fn func(cart *entity.Cart, catalog entity.CatalogIndex) error) (*CartView, error) {
	var cart *entity.Cart
	err := s.register.Do(func() error {
		var err error
		cart, err = s.cartRepo.Load(ctx)
		if err != nil {
			return err
		}
		items, err := s.catalogRepo.List(ctx)
		if err != nil {
			return err
		}
		if err := fn(cart, entity.IndexCatalog(items)); err != nil {
			return err
		}
		return s.cartRepo.Save(ctx, cart)
	})
	if err != nil {
		return nil, err
	}
	return s.view(ctx, cart)
}

func (s *CartService) view(ctx context.Context, cart *entity.Cart) (*CartView, error) {
	draft, err := s.draftRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	lines := cart.Lines
	if lines == nil {
		lines = []entity.CartLine{}
	}
	return &CartView{
		Lines:     lines,
		Subtotal:  cart.Subtotal(),
		ItemCount: cart.ItemCount(),
		Draft:     draft,
	}, nil
}
