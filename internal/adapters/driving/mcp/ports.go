package mcp

import (
	"github.com/custodia-labs/leadscout/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Sources exposes source descriptors and configuration.
	Sources driving.SourceConfigService

	// Leads runs lead searches. Optional; lead tools fail without it.
	Leads driving.LeadService

	// Configuration opens wizards and role selectors. Optional; the
	// configure_source and save_roles tools fail without it.
	Configuration driving.ConfigurationService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Sources == nil {
		return ErrMissingSourceService
	}
	return nil
}
