package enum

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategory_JSON(t *testing.T) {
	data, err := json.Marshal(CategoryFormalPants)
	require.NoError(t, err)
	assert.Equal(t, `"Formal Pants"`, string(data))

	var c Category
	require.NoError(t, json.Unmarshal([]byte(`"Track Pants"`), &c))
	assert.Equal(t, CategoryTrackPants, c)

	require.NoError(t, json.Unmarshal([]byte(`2`), &c))
	assert.Equal(t, CategoryHoodies, c)

	assert.Error(t, json.Unmarshal([]byte(`"Socks"`), &c))
}

func TestCategoryTabs(t *testing.T) {
	assert.Equal(t, []string{"All", "Shirts", "T-Shirts", "Hoodies", "Jeans", "Formal Pants", "Track Pants"}, CategoryTabs())
	assert.Len(t, Categories(), 6)
	assert.False(t, Category(6).IsValid())
}

func TestParsePaymentMethod(t *testing.T) {
	assert.Equal(t, PaymentMethodUPI, ParsePaymentMethod("upi"))
	assert.Equal(t, PaymentMethodCash, ParsePaymentMethod(" Cash "))
	assert.Equal(t, PaymentMethodPending, ParsePaymentMethod("cheque"))
	assert.Equal(t, "Card", PaymentMethodCard.String())
}

func TestCheckoutState_Transitions(t *testing.T) {
	assert.True(t, CheckoutStateIdle.CanTransition(CheckoutStateValidating))
	assert.True(t, CheckoutStateIdle.CanTransition(CheckoutStateRejected))
	assert.True(t, CheckoutStateValidating.CanTransition(CheckoutStateRejected))
	assert.True(t, CheckoutStateValidating.CanTransition(CheckoutStateCommitting))
	assert.True(t, CheckoutStateCommitting.CanTransition(CheckoutStateReplicating))
	assert.True(t, CheckoutStateReplicating.CanTransition(CheckoutStateDone))

	assert.False(t, CheckoutStateIdle.CanTransition(CheckoutStateCommitting))
	assert.False(t, CheckoutStateRejected.CanTransition(CheckoutStateCommitting))
	assert.False(t, CheckoutStateReplicating.CanTransition(CheckoutStateIdle))
}
