package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/custodia-labs/leadscout/internal/core/domain"
	"github.com/custodia-labs/leadscout/internal/core/ports/driven"
)

// Ensure SourceConfigStore implements the interface.
var _ driven.SourceConfigStore = (*SourceConfigStore)(nil)

// SourceConfigStore is an in-memory implementation of driven.SourceConfigStore.
// Its contents live as long as the process.
type SourceConfigStore struct {
	mu        sync.RWMutex
	configs   map[string]domain.SourceConfig
	selection map[string]struct{}
}

// NewSourceConfigStore creates a new in-memory source config store.
func NewSourceConfigStore() *SourceConfigStore {
	return &SourceConfigStore{
		configs:   make(map[string]domain.SourceConfig),
		selection: make(map[string]struct{}),
	}
}

// Save stores or replaces the configuration for a source.
func (s *SourceConfigStore) Save(_ context.Context, sourceID string, cfg domain.SourceConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.configs[sourceID] = cfg.Clone()
	return nil
}

// Get retrieves the configuration for a source.
func (s *SourceConfigStore) Get(_ context.Context, sourceID string) (domain.SourceConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cfg, ok := s.configs[sourceID]
	if !ok {
		return domain.SourceConfig{}, &domain.UnknownSourceError{ID: sourceID}
	}
	return cfg.Clone(), nil
}

// Modify applies fn to the stored configuration under the write lock.
func (s *SourceConfigStore) Modify(
	_ context.Context,
	sourceID string,
	fn func(domain.SourceConfig) domain.SourceConfig,
) (domain.SourceConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cfg, ok := s.configs[sourceID]
	if !ok {
		return domain.SourceConfig{}, &domain.UnknownSourceError{ID: sourceID}
	}
	updated := fn(cfg.Clone())
	s.configs[sourceID] = updated.Clone()
	return updated, nil
}

// SetSelection replaces the selection set.
func (s *SourceConfigStore) SetSelection(_ context.Context, sourceIDs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection = make(map[string]struct{}, len(sourceIDs))
	for _, id := range sourceIDs {
		s.selection[id] = struct{}{}
	}
	return nil
}

// Selection returns the selection set, sorted.
func (s *SourceConfigStore) Selection(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]string, 0, len(s.selection))
	for id := range s.selection {
		result = append(result, id)
	}
	slices.Sort(result)
	return result, nil
}
