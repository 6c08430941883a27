package types

import "time"

// SettingsID is the primary key of the single AppSettings row.
const SettingsID = "default"

// Default settings written on first read.
const (
	DefaultCurrency   = "USD"
	DefaultDateFormat = "2006-01-02"
	DefaultTheme      = "system"
	DefaultLanguage   = "en"
)

// AppSettings holds user preferences read at startup by formatting caches.
type AppSettings struct {
	ID                   string    `json:"id"`
	Currency             string    `json:"currency"`
	DateFormat           string    `json:"date_format"`
	Theme                string    `json:"theme"`
	Language             string    `json:"language"`
	NotificationsEnabled bool      `json:"notifications_enabled"`
	BiometricEnabled     bool      `json:"biometric_enabled"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// AppSettingsPatch lists the settings Update may change.
type AppSettingsPatch struct {
	Currency             *string
	DateFormat           *string
	Theme                *string
	Language             *string
	NotificationsEnabled *bool
	BiometricEnabled     *bool
}
