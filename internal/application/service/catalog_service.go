package service

import (
	"context"
	"log"
	"strings"

	"github.com/sangkips/storefront-pos/internal/domain/entity"
	"github.com/sangkips/storefront-pos/internal/domain/enum"
	"github.com/sangkips/storefront-pos/internal/domain/repository"
	"github.com/sangkips/storefront-pos/pkg/apperror"
	"github.com/sangkips/storefront-pos/pkg/pagination"
	"github.com/sangkips/storefront-pos/pkg/utils"
	"github.com/shopspring/decimal"
)

// CatalogService handles the menu and admin item management
type CatalogService struct {
	register     *Register
	catalogRepo  repository.CatalogRepository
	settingsRepo repository.SettingsRepository
	cloud        repository.DocumentStore
}

// NewCatalogService creates a new catalog service
func NewCatalogService(
	register *Register,
	catalogRepo repository.CatalogRepository,
	settingsRepo repository.SettingsRepository,
	cloud repository.DocumentStore,
) *CatalogService {
	return &CatalogService{
		register:     register,
		catalogRepo:  catalogRepo,
		settingsRepo: settingsRepo,
		cloud:        cloud,
	}
}

// MenuItem is a catalog item as shown on the menu grid
type MenuItem struct {
	entity.CatalogItem
	Image string `json:"image"`
}

// Menu returns one page of the items in category. An empty category or
// "All" lists everything.
func (s *CatalogService) Menu(ctx context.Context, category string, params *pagination.PaginationParams) (*pagination.PaginatedResult[MenuItem], error) {
	items, err := s.catalogRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	filter := strings.TrimSpace(category)
	if filter != "" && filter != enum.CategoryAll {
		c, err := enum.ParseCategory(filter)
		if err != nil {
			return nil, apperror.NewBadRequestError("Unknown category: " + filter)
		}
		filtered := items[:0]
		for _, item := range items {
			if item.Category == c {
				filtered = append(filtered, item)
			}
		}
		items = filtered
	}

	menu := make([]MenuItem, len(items))
	for i, item := range items {
		menu[i] = MenuItem{CatalogItem: item, Image: item.DisplayImage()}
	}
	return pagination.Paginate(menu, params), nil
}

// Categories returns the menu tabs, starting with All
func (s *CatalogService) Categories() []string {
	return enum.CategoryTabs()
}

// ListItems returns every catalog item
func (s *CatalogService) ListItems(ctx context.Context) ([]entity.CatalogItem, error) {
	return s.catalogRepo.List(ctx)
}

// GetItem returns a catalog item by id
func (s *CatalogService) GetItem(ctx context.Context, id string) (*entity.CatalogItem, error) {
	item, err := s.catalogRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Item")
	}
	return item, nil
}

// SaveItemInput represents the admin item form
type SaveItemInput struct {
	ID       string
	Name     string
	Category string
	Price    decimal.Decimal
	Stock    *int
	ImageSrc string
}

// SaveItem creates or replaces an item and mirrors it to the cloud
func (s *CatalogService) SaveItem(ctx context.Context, input *SaveItemInput) (*entity.CatalogItem, error) {
	item, err := validateItem(input)
	if err != nil {
		return nil, err
	}

	err = s.register.Do(func() error {
		return s.catalogRepo.Save(ctx, item)
	})
	if err != nil {
		return nil, err
	}
	log.Printf("[catalog] saved item %s (%s)", item.ID, item.Name)

	if err := s.cloud.PutItem(ctx, item); err != nil {
		log.Printf("[catalog] %v", replicationError(s.cloud.Name(), "put item "+item.ID, err))
	}
	return item, nil
}

// DeleteItem removes an item locally and from the cloud
func (s *CatalogService) DeleteItem(ctx context.Context, id string) error {
	err := s.register.Do(func() error {
		existing, err := s.catalogRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return apperror.NewNotFoundError("Item")
		}
		return s.catalogRepo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	log.Printf("[catalog] deleted item %s", id)

	if err := s.cloud.DeleteItem(ctx, id); err != nil {
		log.Printf("[catalog] %v", replicationError(s.cloud.Name(), "delete item "+id, err))
	}
	return nil
}

// PullResult summarises a cloud pull
type PullResult struct {
	Items       int  `json:"items"`
	SettingsSet bool `json:"settings_set"`
}

// PullFromCloud replaces the local catalog, and the settings when the
// cloud has any, with the cloud copy. Nothing is merged.
func (s *CatalogService) PullFromCloud(ctx context.Context) (*PullResult, error) {
	items, err := s.cloud.ListItems(ctx)
	if err != nil {
		return nil, replicationError(s.cloud.Name(), "list items", err)
	}
	settings, err := s.cloud.GetSettings(ctx)
	if err != nil {
		return nil, replicationError(s.cloud.Name(), "get settings", err)
	}

	err = s.register.Do(func() error {
		if err := s.catalogRepo.ReplaceAll(ctx, items); err != nil {
			return err
		}
		if settings != nil {
			return s.settingsRepo.Save(ctx, *settings)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[catalog] pulled %d items from %s", len(items), s.cloud.Name())
	return &PullResult{Items: len(items), SettingsSet: settings != nil}, nil
}

func validateItem(input *SaveItemInput) (*entity.CatalogItem, error) {
	var fieldErrors []apperror.FieldError

	name := strings.TrimSpace(input.Name)
	if name == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "name", Message: "Name is required"})
	}
	category, err := enum.ParseCategory(strings.TrimSpace(input.Category))
	if err != nil {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "category", Message: "Choose a valid category"})
	}
	if input.Price.IsNegative() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "price", Message: "Price cannot be negative"})
	}
	if input.Stock != nil && *input.Stock < 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "stock", Message: "Stock cannot be negative"})
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	id := strings.TrimSpace(input.ID)
	if id == "" {
		id = utils.NewItemID()
	}
	image := strings.TrimSpace(input.ImageSrc)
	if image == "" {
		image = entity.PlaceholderImageFor(name)
	}

	return &entity.CatalogItem{
		ID:       id,
		Name:     name,
		Category: category,
		Price:    input.Price,
		Stock:    input.Stock,
		ImageSrc: image,
	}, nil
}
