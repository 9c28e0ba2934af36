package tui

import "errors"

// ErrMissingSourceService is returned when the source config service is not provided.
var ErrMissingSourceService = errors.New("tui: source config service is required")

// ErrMissingConfigurationService is returned when the configuration service is not provided.
var ErrMissingConfigurationService = errors.New("tui: configuration service is required")
