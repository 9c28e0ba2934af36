package domain

import (
	"fmt"
	"net/url"
	"time"
)

// DefaultAPIBaseURL is the lead API used when none is configured.
const DefaultAPIBaseURL = "http://localhost:8000/api"

// DefaultAPITimeout is the HTTP timeout used when none is configured.
const DefaultAPITimeout = 30 * time.Second

// APISettings configures the lead API client.
type APISettings struct {
	// BaseURL is the API root, e.g. http://localhost:8000/api.
	BaseURL string
	// Token is passed through as a bearer token. Empty disables auth headers.
	Token string
	// Timeout bounds each HTTP request.
	Timeout time.Duration
}

// HasToken returns true if a bearer token is configured.
func (s APISettings) HasToken() bool {
	return s.Token != ""
}

// Validate checks the settings are usable.
func (s APISettings) Validate() error {
	u, err := url.Parse(s.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: base url %q", ErrInvalidInput, s.BaseURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: base url scheme %q", ErrInvalidInput, u.Scheme)
	}
	if s.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive", ErrInvalidInput)
	}
	return nil
}

// AppSettings holds all user-configurable settings.
type AppSettings struct {
	API APISettings
}

// DefaultAppSettings returns settings with default values.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		API: APISettings{
			BaseURL: DefaultAPIBaseURL,
			Timeout: DefaultAPITimeout,
		},
	}
}
