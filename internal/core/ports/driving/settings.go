package driving

import "github.com/custodia-labs/leadscout/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetAPI validates and stores the lead API settings.
	SetAPI(api domain.APISettings) error

	// SetValue updates a single setting by its dot-notation key.
	SetValue(key, value string) error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings

	// ConfigPath returns the path of the backing config file.
	ConfigPath() string
}
