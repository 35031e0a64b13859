package models

import "time"

// Keys of the rows backing the Settings aggregate.
const (
	SettingKeyRestaurantOpen = "restaurant_open"
	SettingKeyLastInvoiceNo  = "last_invoice_no"
)

// ApplicationSetting represents a key-value pair for application configuration
type ApplicationSetting struct {
	ID           int64     `json:"id" db:"id"`
	SettingKey   string    `json:"settingKey" db:"setting_key"`
	SettingValue *string   `json:"settingValue,omitempty" db:"setting_value"`
	Description  *string   `json:"description,omitempty" db:"description"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// Settings is the process-wide state shared by every device.
type Settings struct {
	RestaurantOpen bool  `json:"restaurantOpen"`
	LastInvoiceNo  int64 `json:"lastInvoiceNo"`
	NextInvoiceNo  int64 `json:"nextInvoiceNo"`
}
