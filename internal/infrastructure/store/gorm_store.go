package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/sangkips/storefront-pos/internal/domain/entity"
	domainRepo "github.com/sangkips/storefront-pos/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a key/value store over the store_entries table
func NewGormStore(db *gorm.DB) domainRepo.KeyValueStore {
	return &gormStore{db: db}
}

func (s *gormStore) Get(ctx context.Context, key string, dst any) (bool, error) {
	var entry entity.StoreEntry
	err := s.db.WithContext(ctx).First(&entry, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return decode(key, []byte(entry.Value), dst), nil
}

func (s *gormStore) Set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	entry := entity.StoreEntry{Key: key, Value: string(data)}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (s *gormStore) Delete(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).Delete(&entity.StoreEntry{}, "key = ?", key).Error
}

func (s *gormStore) Transaction(ctx context.Context, fn func(tx domainRepo.KeyValueStore) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}

// decode treats an unreadable value like a missing one so callers fall
// back to their defaults
func decode(key string, data []byte, dst any) bool {
	if len(data) == 0 || string(data) == "null" {
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		log.Printf("[store] discarding undecodable value at %s: %v", key, err)
		return false
	}
	return true
}
