package services

import (
	"github.com/custodia-labs/leadscout/internal/core/domain"
	"github.com/custodia-labs/leadscout/internal/core/ports/driven"
	"github.com/custodia-labs/leadscout/internal/core/ports/driving"
)

// Ensure ConfigurationService implements the interface.
var _ driving.ConfigurationService = (*ConfigurationService)(nil)

// ConfigurationService opens wizards and role selectors.
type ConfigurationService struct {
	registry driving.SourceRegistry
	configs  driving.SourceConfigService
	sources  driven.SourceAPI
	roles    driven.RoleAPI
	roleOpts []RoleSelectorOption
}

// NewConfigurationService creates a configuration service.
func NewConfigurationService(
	registry driving.SourceRegistry,
	configs driving.SourceConfigService,
	sources driven.SourceAPI,
	roles driven.RoleAPI,
	roleOpts ...RoleSelectorOption,
) *ConfigurationService {
	return &ConfigurationService{
		registry: registry,
		configs:  configs,
		sources:  sources,
		roles:    roles,
		roleOpts: roleOpts,
	}
}

// OpenWizard starts a wizard for a source.
// The role-based source returns domain.ErrRoleSelectionFlow; use
// OpenRoleSelector instead.
func (s *ConfigurationService) OpenWizard(sourceID string) (driving.Wizard, error) {
	d, err := s.registry.Get(sourceID)
	if err != nil {
		return nil, err
	}
	if d.Flow == domain.FlowRoleSelection {
		return nil, domain.ErrRoleSelectionFlow
	}
	w, err := NewWizard(d, s.configs, s.sources)
	if err != nil {
		return nil, err
	}
	return w, nil
}

// OpenRoleSelector starts a role selector.
func (s *ConfigurationService) OpenRoleSelector() driving.RoleSelector {
	return NewRoleSelector(s.roles, s.configs, s.roleOpts...)
}
