// Package tui provides an interactive terminal user interface for leadscout.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/leadscout/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Sources exposes source state and selection.
	Sources driving.SourceConfigService

	// Configuration opens wizards and role selectors.
	Configuration driving.ConfigurationService

	// Leads runs lead searches. Optional; the leads view reports it missing.
	Leads driving.LeadService
}

// NewPorts creates a new Ports instance with the given services.
func NewPorts(
	sources driving.SourceConfigService,
	configuration driving.ConfigurationService,
	leads driving.LeadService,
) *Ports {
	return &Ports{
		Sources:       sources,
		Configuration: configuration,
		Leads:         leads,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Sources == nil {
		return ErrMissingSourceService
	}
	if p.Configuration == nil {
		return ErrMissingConfigurationService
	}
	return nil
}
