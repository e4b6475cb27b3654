package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/storefront-pos/internal/domain/entity"
)

// IdempotencyRepository stores replayable responses keyed by
// (user, endpoint, key)
type IdempotencyRepository interface {
	// Reserve claims ikey's scope. It reports true when the claim is new;
	// otherwise it returns the record already holding the scope. Claiming
	// is atomic, so of two concurrent retries only one runs the handler.
	Reserve(ctx context.Context, ikey *entity.IdempotencyKey) (*entity.IdempotencyKey, bool, error)
	// Complete records the response for a reserved key
	Complete(ctx context.Context, id uuid.UUID, code int, body string) error
	// Release drops a reservation whose request did not succeed, so the
	// client may retry with the same key
	Release(ctx context.Context, id uuid.UUID) error
	// DeleteExpired purges keys past their expiry
	DeleteExpired(ctx context.Context) error
}
