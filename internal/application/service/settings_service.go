package service

import (
	"context"
	"log"
	"strings"

	"github.com/sangkips/storefront-pos/internal/domain/entity"
	"github.com/sangkips/storefront-pos/internal/domain/repository"
)

// SettingsService handles the store-wide settings
type SettingsService struct {
	register     *Register
	settingsRepo repository.SettingsRepository
	cloud        repository.DocumentStore
}

// NewSettingsService creates a new settings service
func NewSettingsService(register *Register, settingsRepo repository.SettingsRepository, cloud repository.DocumentStore) *SettingsService {
	return &SettingsService{
		register:     register,
		settingsRepo: settingsRepo,
		cloud:        cloud,
	}
}

// GetSettings retrieves the settings, falling back to defaults
func (s *SettingsService) GetSettings(ctx context.Context) (entity.Settings, error) {
	return s.settingsRepo.Get(ctx)
}

// UpdateSettingsInput represents the input for updating settings
type UpdateSettingsInput struct {
	QRSrc string
}

// UpdateSettings saves the settings. An empty QR image keeps the current
// one.
func (s *SettingsService) UpdateSettings(ctx context.Context, input *UpdateSettingsInput) (entity.Settings, error) {
	var settings entity.Settings
	err := s.register.Do(func() error {
		current, err := s.settingsRepo.Get(ctx)
		if err != nil {
			return err
		}
		if qr := strings.TrimSpace(input.QRSrc); qr != "" {
			current.QRSrc = qr
		}
		if err := s.settingsRepo.Save(ctx, current); err != nil {
			return err
		}
		settings = current
		return nil
	})
	if err != nil {
		return entity.Settings{}, err
	}

	if err := s.cloud.PutSettings(ctx, settings); err != nil {
		log.Printf("[settings] %v", replicationError(s.cloud.Name(), "put settings", err))
	}
	return settings, nil
}
