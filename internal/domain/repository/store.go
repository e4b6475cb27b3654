package repository

import "context"

// Persisted store keys
const (
	KeyMenuItems     = "menuItems"
	KeyCart          = "cart"
	KeySales         = "sales"
	KeySettings      = "settings"
	KeySeeded        = "__seeded"
	KeyCheckoutDraft = "checkoutDraft"
)

// KeyValueStore is the device-local mapping of named JSON values.
// Every Get decodes afresh from storage; nothing is cached.
type KeyValueStore interface {
	// Get decodes the value at key into dst. It reports false when the key
	// is absent or the stored value cannot be decoded.
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
	// Transaction runs fn against a store whose writes become visible
	// together, or not at all when fn returns an error
	Transaction(ctx context.Context, fn func(tx KeyValueStore) error) error
}
