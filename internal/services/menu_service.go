package services

import (
	"errors"
	"fmt"
	"strings"

	"hotel_pos_backend/internal/models"
	"hotel_pos_backend/internal/repositories"

	"github.com/rs/zerolog/log"
)

// MenuCache is a read-through cache for menu listings. Implementations must be
// safe to call when the backing store is down; a miss is always acceptable.
type MenuCache interface {
	GetMenu(key string) ([]models.MenuItem, bool)
	SetMenu(key string, items []models.MenuItem)
	InvalidateMenu()
}

// noopMenuCache is used when no cache is configured.
type noopMenuCache struct{}

func (noopMenuCache) GetMenu(string) ([]models.MenuItem, bool) { return nil, false }
func (noopMenuCache) SetMenu(string, []models.MenuItem)        {}
func (noopMenuCache) InvalidateMenu()                          {}

// CreateMenuItemRequest adds a catalogue entry.
type CreateMenuItemRequest struct {
	Name        string  `json:"name" binding:"required" validate:"required,max=255"`
	Category    string  `json:"category" binding:"required" validate:"required,max=100"`
	Price       float64 `json:"price" validate:"gte=0"`
	Available   *bool   `json:"available"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}

// UpdateMenuItemRequest changes a catalogue entry. Absent fields are left alone.
type UpdateMenuItemRequest struct {
	Name        *string  `json:"name" validate:"omitempty,min=1,max=255"`
	Category    *string  `json:"category" validate:"omitempty,min=1,max=100"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Available   *bool    `json:"available"`
	Description *string  `json:"description" validate:"omitempty,max=2000"`
}

// MenuService manages the menu catalogue.
type MenuService interface {
	GetMenuItems(filters repositories.MenuFilters) ([]models.MenuItem, error)
	GetMenuItem(itemID int64) (*models.MenuItem, error)
	CreateMenuItem(req CreateMenuItemRequest) (*models.MenuItem, error)
	UpdateMenuItem(itemID int64, req UpdateMenuItemRequest) (*models.MenuItem, error)
	ToggleAvailability(itemID int64) (*models.MenuItem, error)
	DeleteMenuItem(itemID int64) error
}

type menuService struct {
	runner   repositories.TxRunner
	menuRepo repositories.MenuRepository
	cache    MenuCache
}

// NewMenuService creates a new instance of MenuService. cache may be nil.
func NewMenuService(runner repositories.TxRunner, menuRepo repositories.MenuRepository, cache MenuCache) MenuService {
	if cache == nil {
		cache = noopMenuCache{}
	}
	return &menuService{runner: runner, menuRepo: menuRepo, cache: cache}
}

// cacheKey is empty for filters that should bypass the cache.
func cacheKey(filters repositories.MenuFilters) string {
	if filters.SearchTerm != nil && *filters.SearchTerm != "" {
		return ""
	}
	category := ""
	if filters.Category != nil {
		category = strings.ToLower(*filters.Category)
	}
	return fmt.Sprintf("category=%s:available=%t", category, filters.AvailableOnly)
}

func (s *menuService) GetMenuItems(filters repositories.MenuFilters) ([]models.MenuItem, error) {
	key := cacheKey(filters)
	if key != "" {
		if items, ok := s.cache.GetMenu(key); ok {
			return items, nil
		}
	}

	items, err := s.menuRepo.GetMenuItems(s.runner.Executor(), filters)
	if err != nil {
		return nil, repoError(err, nil, "listing menu items")
	}
	if key != "" {
		s.cache.SetMenu(key, items)
	}
	return items, nil
}

func (s *menuService) GetMenuItem(itemID int64) (*models.MenuItem, error) {
	item, err := s.menuRepo.GetMenuItemByID(s.runner.Executor(), itemID)
	if err != nil {
		return nil, repoError(err, ErrMenuItemNotFound, "getting menu item")
	}
	return item, nil
}

func (s *menuService) CreateMenuItem(req CreateMenuItemRequest) (*models.MenuItem, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	item := &models.MenuItem{
		Name:        strings.TrimSpace(req.Name),
		Category:    strings.TrimSpace(req.Category),
		Price:       req.Price,
		Available:   req.Available == nil || *req.Available,
		Description: req.Description,
	}
	if err := s.menuRepo.CreateMenuItem(s.runner.Executor(), item); err != nil {
		return nil, repoError(err, nil, "creating menu item")
	}
	s.cache.InvalidateMenu()
	log.Info().Int64("menu_item_id", item.ID).Str("name", item.Name).Msg("Menu item created")
	return item, nil
}

func (s *menuService) UpdateMenuItem(itemID int64, req UpdateMenuItemRequest) (*models.MenuItem, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	return s.mutate(itemID, func(item *models.MenuItem) {
		if req.Name != nil {
			item.Name = strings.TrimSpace(*req.Name)
		}
		if req.Category != nil {
			item.Category = strings.TrimSpace(*req.Category)
		}
		if req.Price != nil {
			item.Price = *req.Price
		}
		if req.Available != nil {
			item.Available = *req.Available
		}
		if req.Description != nil {
			item.Description = req.Description
		}
	})
}

func (s *menuService) ToggleAvailability(itemID int64) (*models.MenuItem, error) {
	return s.mutate(itemID, func(item *models.MenuItem) {
		item.Available = !item.Available
	})
}

func (s *menuService) mutate(itemID int64, apply func(item *models.MenuItem)) (*models.MenuItem, error) {
	var item *models.MenuItem
	err := s.runner.WithinTx(func(tx repositories.SQLExecutor) error {
		var err error
		item, err = s.menuRepo.GetMenuItemByID(tx, itemID)
		if err != nil {
			return err
		}
		apply(item)
		return s.menuRepo.UpdateMenuItem(tx, item)
	})
	if err != nil {
		return nil, repoError(err, ErrMenuItemNotFound, "updating menu item")
	}
	s.cache.InvalidateMenu()
	log.Info().Int64("menu_item_id", item.ID).Bool("available", item.Available).Msg("Menu item updated")
	return item, nil
}

func (s *menuService) DeleteMenuItem(itemID int64) error {
	err := s.menuRepo.DeleteMenuItem(s.runner.Executor(), itemID)
	if err != nil {
		if errors.Is(err, repositories.ErrReferenced) {
			return fmt.Errorf("%w: menu item %d", ErrMenuItemInUse, itemID)
		}
		return repoError(err, ErrMenuItemNotFound, "deleting menu item")
	}
	s.cache.InvalidateMenu()
	log.Info().Int64("menu_item_id", itemID).Msg("Menu item deleted")
	return nil
}
