package driving

import "github.com/custodia-labs/medlens/internal/core/domain"

// SettingsService reads and updates medlens settings.
type SettingsService interface {
	// Get returns the current settings, defaults filled in for unset keys.
	Get() (*domain.Settings, error)

	// Save validates and persists settings.
	Save(settings *domain.Settings) error

	// Set parses a string value for a dotted key and persists it.
	Set(key, value string) error

	// Keys lists every recognised settings key.
	Keys() []string

	// GetDefaults returns the built-in defaults.
	GetDefaults() domain.Settings
}
