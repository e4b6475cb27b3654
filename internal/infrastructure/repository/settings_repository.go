package repository

import (
	"context"
	"fmt"

	"github.com/sangkips/storefront-pos/internal/domain/entity"
	domainRepo "github.com/sangkips/storefront-pos/internal/domain/repository"
)

type settingsRepository struct {
	kv domainRepo.KeyValueStore
}

// NewSettingsRepository creates a repository for the settings singleton
func NewSettingsRepository(kv domainRepo.KeyValueStore) domainRepo.SettingsRepository {
	return &settingsRepository{kv: kv}
}

func (r *settingsRepository) Get(ctx context.Context) (entity.Settings, error) {
	var settings entity.Settings
	found, err := r.kv.Get(ctx, domainRepo.KeySettings, &settings)
	if err != nil {
		return entity.Settings{}, fmt.Errorf("failed to load settings: %w", err)
	}
	if !found {
		return entity.DefaultSettings(), nil
	}
	return settings, nil
}

func (r *settingsRepository) Save(ctx context.Context, settings entity.Settings) error {
	if err := r.kv.Set(ctx, domainRepo.KeySettings, settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
