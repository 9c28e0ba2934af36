package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/leadscout/internal/core/domain"
	"github.com/custodia-labs/leadscout/internal/core/ports/driven"
	"github.com/custodia-labs/leadscout/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	KeyAPIBaseURL = "api.base_url"
	KeyAPIToken   = "api.token"
	KeyAPITimeout = "api.timeout_seconds"
)

// SettingsKeys lists the keys accepted by SetValue.
var SettingsKeys = []string{KeyAPIBaseURL, KeyAPIToken, KeyAPITimeout}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	timeout := defaults.API.Timeout
	if secs := s.configStore.GetInt(KeyAPITimeout); secs > 0 {
		timeout = time.Duration(secs) * time.Second
	}

	settings := &domain.AppSettings{
		API: domain.APISettings{
			BaseURL: s.getString(KeyAPIBaseURL, defaults.API.BaseURL),
			Token:   s.configStore.GetString(KeyAPIToken),
			Timeout: timeout,
		},
	}
	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if settings == nil {
		return domain.ErrInvalidInput
	}
	return s.SetAPI(settings.API)
}

// SetAPI validates and stores the lead API settings.
// An empty token removes the stored token.
func (s *SettingsService) SetAPI(api domain.APISettings) error {
	api.BaseURL = strings.TrimRight(strings.TrimSpace(api.BaseURL), "/")
	if err := api.Validate(); err != nil {
		return err
	}

	if err := s.configStore.Set(KeyAPIBaseURL, api.BaseURL); err != nil {
		return fmt.Errorf("save api base_url: %w", err)
	}
	if err := s.configStore.Set(KeyAPITimeout, int(api.Timeout/time.Second)); err != nil {
		return fmt.Errorf("save api timeout: %w", err)
	}
	if api.Token == "" {
		if err := s.configStore.Delete(KeyAPIToken); err != nil {
			return fmt.Errorf("clear api token: %w", err)
		}
		return nil
	}
	if err := s.configStore.Set(KeyAPIToken, api.Token); err != nil {
		return fmt.Errorf("save api token: %w", err)
	}
	return nil
}

// SetValue updates a single setting by key.
func (s *SettingsService) SetValue(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	api := settings.API

	switch key {
	case KeyAPIBaseURL:
		api.BaseURL = value
	case KeyAPIToken:
		api.Token = value
	case KeyAPITimeout:
		secs, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: timeout %q is not a number of seconds", domain.ErrInvalidInput, value)
		}
		api.Timeout = time.Duration(secs) * time.Second
	default:
		return fmt.Errorf("%w: unknown setting %q (valid: %s)",
			domain.ErrInvalidInput, key, strings.Join(SettingsKeys, ", "))
	}
	return s.SetAPI(api)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// ConfigPath returns the path of the backing config file.
func (s *SettingsService) ConfigPath() string {
	return s.configStore.Path()
}

func (s *SettingsService) getString(key, defaultVal string) string {
	if v := s.configStore.GetString(key); v != "" {
		return v
	}
	return defaultVal
}
