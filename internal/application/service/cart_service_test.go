package service

import (
	"context"
	"errors"
	"testing"

	"github.com/sangkips/storefront-pos/internal/domain/entity"
	"github.com/sangkips/storefront-pos/pkg/apperror"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartService_AddAndChangeQuantity(t *testing.T) {
	ctx := context.Background()
	r := newRig(t, "")
	r.stock(t, item("a", "Shirt", 550, entity.IntPtr(2)), item("b", "Hoodie", 400, nil))

	view, err := r.cartSvc.AddItem(ctx, "a")
	require.NoError(t, err)
	view, err = r.cartSvc.AddItem(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 2, view.ItemCount)

	_, err = r.cartSvc.AddItem(ctx, "a")
	assert.True(t, errors.Is(err, apperror.ErrOutOfStock))

	_, err = r.cartSvc.ChangeQuantity(ctx, "a", 1)
	assert.True(t, errors.Is(err, apperror.ErrStockExceeded))

	view, err = r.cartSvc.ChangeQuantity(ctx, "a", -2)
	require.NoError(t, err)
	assert.Empty(t, view.Lines)

	_, err = r.cartSvc.ChangeQuantity(ctx, "missing", 1)
	assert.True(t, errors.Is(err, apperror.ErrNoSuchLine))
}

func TestCartService_FailedActionLeavesCartUntouched(t *testing.T) {
	ctx := context.Background()
	r := newRig(t, "")
	r.stock(t, item("a", "Shirt", 550, entity.IntPtr(1)))

	_, err := r.cartSvc.AddItem(ctx, "a")
	require.NoError(t, err)
	_, err = r.cartSvc.AddItem(ctx, "a")
	require.Error(t, err)

	cart, err := r.cart.Load(ctx)
	require.NoError(t, err)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 1, cart.Lines[0].Qty)
}

func TestCartService_UnknownItem(t *testing.T) {
	r := newRig(t, "")
	_, err := r.cartSvc.AddItem(context.Background(), "ghost")
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestCartService_OverridePriceAndRemove(t *testing.T) {
	ctx := context.Background()
	r := newRig(t, "")
	r.stock(t, item("a", "Shirt", 550, nil))

	_, err := r.cartSvc.AddItem(ctx, "a")
	require.NoError(t, err)

	_, err = r.cartSvc.OverridePrice(ctx, "a", decimal.NewFromInt(-1))
	require.Error(t, err)

	view, err := r.cartSvc.OverridePrice(ctx, "a", decimal.NewFromInt(499))
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(499).Equal(view.Subtotal))

	_, err = r.cartSvc.OverridePrice(ctx, "zzz", decimal.NewFromInt(1))
	assert.True(t, errors.Is(err, apperror.ErrNoSuchLine))

	view, err = r.cartSvc.RemoveItem(ctx, "a")
	require.NoError(t, err)
	assert.Empty(t, view.Lines)

	_, err = r.cartSvc.RemoveItem(ctx, "a")
	assert.NoError(t, err)
}

func TestCartService_UpdateDraft(t *testing.T) {
	ctx := context.Background()
	r := newRig(t, "")

	name := "  Asha "
	discount := decimal.NewFromInt(50)
	draft, err := r.cartSvc.UpdateDraft(ctx, &DraftInput{CustomerName: &name, Discount: &discount})
	require.NoError(t, err)
	assert.Equal(t, "Asha", draft.CustomerName)
	assert.True(t, draft.Discount.Valid)

	draft, err = r.cartSvc.UpdateDraft(ctx, &DraftInput{ClearDiscount: true})
	require.NoError(t, err)
	assert.Equal(t, "Asha", draft.CustomerName)
	assert.False(t, draft.Discount.Valid)

	view, err := r.cartSvc.GetCart(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Asha", view.Draft.CustomerName)
}
