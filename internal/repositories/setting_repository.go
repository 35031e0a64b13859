package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"hotel_pos_backend/internal/models"
)

// SettingRepository defines the database operations for the key/value rows
// backing the shared settings.
type SettingRepository interface {
	GetSettings(executor SQLExecutor) ([]models.ApplicationSetting, error)
	GetSetting(executor SQLExecutor, key string) (*models.ApplicationSetting, error)
	UpsertSetting(executor SQLExecutor, key, value string) error
	// AllocateInvoiceNumber increments the invoice counter and returns the new value.
	AllocateInvoiceNumber(executor SQLExecutor) (int64, error)
	// AdvanceInvoiceNumber raises the invoice counter to at least n.
	AdvanceInvoiceNumber(executor SQLExecutor, n int64) error
}

type settingRepository struct{}

// NewSettingRepository creates a new instance of SettingRepository.
func NewSettingRepository() SettingRepository {
	return &settingRepository{}
}

func scanSetting(row scanner) (*models.ApplicationSetting, error) {
	var s models.ApplicationSetting
	var value, description sql.NullString
	if err := row.Scan(&s.ID, &s.SettingKey, &value, &description, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	s.SettingValue = nullStringPtr(value)
	s.Description = nullStringPtr(description)
	return &s, nil
}

func (r *settingRepository) GetSettings(executor SQLExecutor) ([]models.ApplicationSetting, error) {
	rows, err := executor.Query(`SELECT id, setting_key, setting_value, description, created_at, updated_at
	                             FROM application_settings ORDER BY setting_key`)
	if err != nil {
		return nil, fmt.Errorf("%w: querying application settings: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	settings := []models.ApplicationSetting{}
	for rows.Next() {
		s, err := scanSetting(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning application setting: %v", ErrDatabaseError, err)
		}
		settings = append(settings, *s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating application setting rows: %v", ErrDatabaseError, err)
	}
	return settings, nil
}

func (r *settingRepository) GetSetting(executor SQLExecutor, key string) (*models.ApplicationSetting, error) {
	query := `SELECT id, setting_key, setting_value, description, created_at, updated_at
	          FROM application_settings WHERE setting_key = $1`
	s, err := scanSetting(executor.QueryRow(query, key))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting application setting %s: %v", ErrDatabaseError, key, err)
	}
	return s, nil
}

func (r *settingRepository) UpsertSetting(executor SQLExecutor, key, value string) error {
	now := time.Now()
	query := `
	    INSERT INTO application_settings (setting_key, setting_value, created_at, updated_at)
	    VALUES ($1, $2, $3, $4)
	    ON CONFLICT (setting_key)
	    DO UPDATE SET setting_value = EXCLUDED.setting_value, updated_at = EXCLUDED.updated_at`
	if _, err := executor.Exec(query, key, value, now, now); err != nil {
		return fmt.Errorf("%w: upserting application setting %s: %v", ErrDatabaseError, key, err)
	}
	return nil
}

func (r *settingRepository) AllocateInvoiceNumber(executor SQLExecutor) (int64, error) {
	query := `
	    INSERT INTO application_settings (setting_key, setting_value, created_at, updated_at)
	    VALUES ($1, '1', $2, $2)
	    ON CONFLICT (setting_key)
	    DO UPDATE SET setting_value = (COALESCE(NULLIF(application_settings.setting_value, ''), '0')::BIGINT + 1)::TEXT,
	                  updated_at = EXCLUDED.updated_at
	    RETURNING setting_value::BIGINT`
	var n int64
	if err := executor.QueryRow(query, models.SettingKeyLastInvoiceNo, time.Now()).Scan(&n); err != nil {
		return 0, fmt.Errorf("%w: allocating invoice number: %v", ErrDatabaseError, err)
	}
	return n, nil
}

func (r *settingRepository) AdvanceInvoiceNumber(executor SQLExecutor, n int64) error {
	query := `
	    INSERT INTO application_settings (setting_key, setting_value, created_at, updated_at)
	    VALUES ($1, $2::BIGINT::TEXT, $3, $3)
	    ON CONFLICT (setting_key)
	    DO UPDATE SET setting_value = GREATEST(COALESCE(NULLIF(application_settings.setting_value, ''), '0')::BIGINT, $2::BIGINT)::TEXT,
	                  updated_at = EXCLUDED.updated_at`
	if _, err := executor.Exec(query, models.SettingKeyLastInvoiceNo, n, time.Now()); err != nil {
		return fmt.Errorf("%w: advancing invoice number to %d: %v", ErrDatabaseError, n, err)
	}
	return nil
}
