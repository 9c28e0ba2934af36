package services

import (
	"context"
	"fmt"
	"slices"

	"github.com/custodia-labs/leadscout/internal/core/domain"
	"github.com/custodia-labs/leadscout/internal/core/ports/driven"
	"github.com/custodia-labs/leadscout/internal/core/ports/driving"
	"github.com/custodia-labs/leadscout/internal/logger"
)

// Ensure SourceConfigService implements the interface.
var _ driving.SourceConfigService = (*SourceConfigService)(nil)

// SourceConfigService holds the in-session configuration of every known
// source. Entries are created once from the registry defaults and are only
// changed through Update.
type SourceConfigService struct {
	registry driving.SourceRegistry
	store    driven.SourceConfigStore
}

// NewSourceConfigService creates the service and seeds one default
// configuration per registry entry.
func NewSourceConfigService(
	ctx context.Context,
	registry driving.SourceRegistry,
	store driven.SourceConfigStore,
) (*SourceConfigService, error) {
	if registry == nil || store == nil {
		return nil, domain.ErrNotImplemented
	}
	for _, d := range registry.List() {
		if err := store.Save(ctx, d.ID, d.DefaultConfig()); err != nil {
			return nil, fmt.Errorf("seed %s: %w", d.ID, err)
		}
	}
	return &SourceConfigService{
		registry: registry,
		store:    store,
	}, nil
}

// Get returns the current configuration of a source.
func (s *SourceConfigService) Get(ctx context.Context, sourceID string) (domain.SourceConfig, error) {
	if _, err := s.registry.Get(sourceID); err != nil {
		return domain.SourceConfig{}, err
	}
	return s.store.Get(ctx, sourceID)
}

// Update merges patch into the source's configuration one level deep.
func (s *SourceConfigService) Update(
	ctx context.Context,
	sourceID string,
	patch domain.SourceConfigPatch,
) (domain.SourceConfig, error) {
	if _, err := s.registry.Get(sourceID); err != nil {
		return domain.SourceConfig{}, err
	}
	if patch.Status != nil && !patch.Status.IsValid() {
		return domain.SourceConfig{}, fmt.Errorf("%w: status %q", domain.ErrInvalidInput, *patch.Status)
	}

	cfg, err := s.store.Modify(ctx, sourceID, patch.Apply)
	if err != nil {
		return domain.SourceConfig{}, err
	}
	logger.Debug("source %s: status=%s", sourceID, cfg.Status)
	return cfg, nil
}

// IsConfigured returns true if the source's status is configured.
// Unknown sources are never configured.
func (s *SourceConfigService) IsConfigured(ctx context.Context, sourceID string) bool {
	cfg, err := s.Get(ctx, sourceID)
	if err != nil {
		return false
	}
	return cfg.IsConfigured()
}

// SetSelection replaces the set of selected sources.
// The selection is left unchanged if any id is unknown.
func (s *SourceConfigService) SetSelection(ctx context.Context, sourceIDs []string) error {
	unique := make([]string, 0, len(sourceIDs))
	for _, id := range sourceIDs {
		if _, err := s.registry.Get(id); err != nil {
			return err
		}
		if !slices.Contains(unique, id) {
			unique = append(unique, id)
		}
	}
	return s.store.SetSelection(ctx, unique)
}

// Selection returns the selected sources, sorted.
func (s *SourceConfigService) Selection(ctx context.Context) ([]string, error) {
	return s.store.Selection(ctx)
}

// List returns every source's descriptor, configuration and selection flag
// in registry order.
func (s *SourceConfigService) List(ctx context.Context) ([]domain.SourceState, error) {
	selected, err := s.store.Selection(ctx)
	if err != nil {
		return nil, fmt.Errorf("selection: %w", err)
	}

	descriptors := s.registry.List()
	states := make([]domain.SourceState, 0, len(descriptors))
	for _, d := range descriptors {
		cfg, err := s.store.Get(ctx, d.ID)
		if err != nil {
			return nil, fmt.Errorf("get %s: %w", d.ID, err)
		}
		states = append(states, domain.SourceState{
			Descriptor: d,
			Config:     cfg,
			Selected:   slices.Contains(selected, d.ID),
		})
	}
	return states, nil
}

// Toggle flips whether a source is selected and returns the new state.
func (s *SourceConfigService) Toggle(ctx context.Context, sourceID string) (bool, error) {
	if _, err := s.registry.Get(sourceID); err != nil {
		return false, err
	}
	selected, err := s.store.Selection(ctx)
	if err != nil {
		return false, err
	}
	if i := slices.Index(selected, sourceID); i >= 0 {
		return false, s.store.SetSelection(ctx, slices.Delete(selected, i, i+1))
	}
	return true, s.store.SetSelection(ctx, append(selected, sourceID))
}
