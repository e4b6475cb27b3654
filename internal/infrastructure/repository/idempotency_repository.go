package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/storefront-pos/internal/domain/entity"
	domainRepo "github.com/sangkips/storefront-pos/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type idempotencyRepository struct {
	db *gorm.DB
}

// NewIdempotencyRepository creates a new idempotency repository
func NewIdempotencyRepository(db *gorm.DB) domainRepo.IdempotencyRepository {
	return &idempotencyRepository{db: db}
}

func (r *idempotencyRepository) Reserve(ctx context.Context, ikey *entity.IdempotencyKey) (*entity.IdempotencyKey, bool, error) {
	// a second pass runs only after an expired holder was removed
	for attempt := 0; attempt < 2; attempt++ {
		res := r.db.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(ikey)
		if res.Error != nil {
			return nil, false, fmt.Errorf("reserve idempotency key: %w", res.Error)
		}
		if res.RowsAffected == 1 {
			return ikey, true, nil
		}

		var existing entity.IdempotencyKey
		err := r.db.WithContext(ctx).
			Where("user_id = ? AND endpoint = ? AND key = ?", ikey.UserID, ikey.Endpoint, ikey.Key).
			First(&existing).Error
		if err != nil {
			return nil, false, fmt.Errorf("load idempotency key: %w", err)
		}
		if !existing.IsExpired() {
			return &existing, false, nil
		}
		if err := r.Release(ctx, existing.ID); err != nil {
			return nil, false, err
		}
		ikey.ID = uuid.Nil
	}
	return nil, false, fmt.Errorf("reserve idempotency key %q: still held", ikey.Key)
}

func (r *idempotencyRepository) Complete(ctx context.Context, id uuid.UUID, code int, body string) error {
	err := r.db.WithContext(ctx).
		Model(&entity.IdempotencyKey{}).
		Where("id = ?", id).
		Updates(map[string]any{"response_code": code, "response_body": body}).Error
	if err != nil {
		return fmt.Errorf("complete idempotency key: %w", err)
	}
	return nil
}

func (r *idempotencyRepository) Release(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&entity.IdempotencyKey{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("release idempotency key: %w", err)
	}
	return nil
}

func (r *idempotencyRepository) DeleteExpired(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Where("expires_at < ?", time.Now()).
		Delete(&entity.IdempotencyKey{}).Error
}
