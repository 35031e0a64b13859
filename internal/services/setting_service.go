package services

import (
	"errors"
	"fmt"
	"strconv"

	"hotel_pos_backend/internal/models"
	"hotel_pos_backend/internal/repositories"

	"github.com/rs/zerolog/log"
)

// UpdateSettingsRequest changes the shared settings. Absent fields are left alone.
type UpdateSettingsRequest struct {
	RestaurantOpen *bool  `json:"restaurantOpen"`
	LastInvoiceNo  *int64 `json:"lastInvoiceNo" validate:"omitempty,min=0"`
}

// SettingsService owns the process-wide flags every device shares.
type SettingsService interface {
	GetSettings() (*models.Settings, error)
	UpdateSettings(req UpdateSettingsRequest) (*models.Settings, error)
}

type settingsService struct {
	runner      repositories.TxRunner
	settingRepo repositories.SettingRepository
}

// NewSettingsService creates a new instance of SettingsService.
func NewSettingsService(runner repositories.TxRunner, settingRepo repositories.SettingRepository) SettingsService {
	return &settingsService{runner: runner, settingRepo: settingRepo}
}

func (s *settingsService) GetSettings() (*models.Settings, error) {
	return loadSettings(s.runner.Executor(), s.settingRepo)
}

func (s *settingsService) UpdateSettings(req UpdateSettingsRequest) (*models.Settings, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	var settings *models.Settings
	err := s.runner.WithinTx(func(tx repositories.SQLExecutor) error {
		if req.RestaurantOpen != nil {
			if err := s.settingRepo.UpsertSetting(tx, models.SettingKeyRestaurantOpen, strconv.FormatBool(*req.RestaurantOpen)); err != nil {
				return err
			}
		}
		if req.LastInvoiceNo != nil {
			// An explicit value may also move the counter back, e.g. at the start of a financial year.
			if err := s.settingRepo.UpsertSetting(tx, models.SettingKeyLastInvoiceNo, strconv.FormatInt(*req.LastInvoiceNo, 10)); err != nil {
				return err
			}
		}
		var err error
		settings, err = loadSettings(tx, s.settingRepo)
		return err
	})
	if err != nil {
		return nil, repoError(err, nil, "updating settings")
	}

	log.Info().Bool("restaurant_open", settings.RestaurantOpen).Int64("last_invoice_no", settings.LastInvoiceNo).Msg("Settings updated")
	return settings, nil
}

// loadSettings reads the settings rows. Missing rows fall back to an open
// restaurant and an invoice counter of zero.
func loadSettings(executor repositories.SQLExecutor, repo repositories.SettingRepository) (*models.Settings, error) {
	open, err := restaurantOpen(executor, repo)
	if err != nil {
		return nil, err
	}

	var last int64
	row, err := repo.GetSetting(executor, models.SettingKeyLastInvoiceNo)
	switch {
	case errors.Is(err, repositories.ErrNotFound):
	case err != nil:
		return nil, fmt.Errorf("reading last invoice number: %w", err)
	case row.SettingValue != nil && *row.SettingValue != "":
		last, err = strconv.ParseInt(*row.SettingValue, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("malformed %s setting %q: %w", models.SettingKeyLastInvoiceNo, *row.SettingValue, err)
		}
	}

	return &models.Settings{RestaurantOpen: open, LastInvoiceNo: last, NextInvoiceNo: last + 1}, nil
}

func restaurantOpen(executor repositories.SQLExecutor, repo repositories.SettingRepository) (bool, error) {
	row, err := repo.GetSetting(executor, models.SettingKeyRestaurantOpen)
	if errors.Is(err, repositories.ErrNotFound) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading restaurant open flag: %w", err)
	}
	if row.SettingValue == nil {
		return true, nil
	}
	open, err := strconv.ParseBool(*row.SettingValue)
	if err != nil {
		return false, fmt.Errorf("malformed %s setting %q: %w", models.SettingKeyRestaurantOpen, *row.SettingValue, err)
	}
	return open, nil
}
