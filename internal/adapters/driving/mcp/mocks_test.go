package mcp

import (
	"context"

	"github.com/custodia-labs/leadscout/internal/core/domain"
)

// mockSourceConfigService is a mock implementation of driving.SourceConfigService.
type mockSourceConfigService struct {
	states  []domain.SourceState
	configs map[string]domain.SourceConfig
	err     error
}

func (m *mockSourceConfigService) Get(_ context.Context, sourceID string) (domain.SourceConfig, error) {
	if m.err != nil {
		return domain.SourceConfig{}, m.err
	}
	cfg, ok := m.configs[sourceID]
	if !ok {
		return domain.SourceConfig{}, &domain.UnknownSourceError{ID: sourceID}
	}
	return cfg, nil
}

func (m *mockSourceConfigService) Update(
	_ context.Context, _ string, _ domain.SourceConfigPatch,
) (domain.SourceConfig, error) {
	return domain.SourceConfig{}, m.err
}

func (m *mockSourceConfigService) IsConfigured(_ context.Context, sourceID string) bool {
	return m.configs[sourceID].IsConfigured()
}

func (m *mockSourceConfigService) SetSelection(_ context.Context, _ []string) error {
	return m.err
}

func (m *mockSourceConfigService) Selection(_ context.Context) ([]string, error) {
	return nil, m.err
}

func (m *mockSourceConfigService) Toggle(_ context.Context, _ string) (bool, error) {
	return false, m.err
}

func (m *mockSourceConfigService) List(_ context.Context) ([]domain.SourceState, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.states, nil
}

// mockLeadService is a mock implementation of driving.LeadService.
type mockLeadService struct {
	page       domain.LeadPage
	saved      []domain.SavedLead
	err        error
	lastParams domain.LeadSearchParams
	lastSource string
}

func (m *mockLeadService) Search(_ context.Context, params domain.LeadSearchParams) (domain.LeadPage, error) {
	m.lastParams = params
	if m.err != nil {
		return domain.LeadPage{}, m.err
	}
	return m.page, nil
}

func (m *mockLeadService) Save(_ context.Context, _ []domain.Lead) error {
	return m.err
}

func (m *mockLeadService) Saved(_ context.Context, sourceID string) ([]domain.SavedLead, error) {
	m.lastSource = sourceID
	if m.err != nil {
		return nil, m.err
	}
	return m.saved, nil
}

func (m *mockLeadService) ClearSaved(_ context.Context, _ string) (int, error) {
	return 0, m.err
}

func (m *mockLeadService) Sync(_ context.Context, _ string) (domain.SyncResult, error) {
	return domain.SyncResult{}, m.err
}

func (m *mockLeadService) Stats(_ context.Context, _ string) (domain.SourceStats, error) {
	return domain.SourceStats{}, m.err
}

func (m *mockLeadService) Filters(_ context.Context, _ string) (domain.SourceFilterOptions, error) {
	return domain.SourceFilterOptions{}, m.err
}

func testStates() []domain.SourceState {
	return []domain.SourceState{
		{
			Descriptor: domain.Descriptor{
				ID:           domain.SourceLinkedIn,
				Name:         "LinkedIn",
				Availability: domain.AvailabilityActive,
				Capabilities: []string{"Company profiles"},
			},
			Config:   domain.SourceConfig{Status: domain.StatusConfigured},
			Selected: true,
		},
		{
			Descriptor: domain.Descriptor{
				ID:           domain.SourceGoogle,
				Name:         "Google My Business",
				Availability: domain.AvailabilityLimited,
			},
			Config: domain.SourceConfig{Status: domain.StatusUnconfigured},
		},
	}
}
