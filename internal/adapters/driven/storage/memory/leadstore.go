package memory

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/leadscout/internal/core/domain"
	"github.com/custodia-labs/leadscout/internal/core/ports/driven"
)

// Ensure LeadStore implements the interface.
var _ driven.LeadStore = (*LeadStore)(nil)

// LeadStore is an in-memory implementation of driven.LeadStore.
// Used when no data directory is available and in tests.
type LeadStore struct {
	mu    sync.RWMutex
	leads map[string]domain.SavedLead
	now   func() time.Time
}

// NewLeadStore creates a new in-memory lead store.
func NewLeadStore() *LeadStore {
	return &LeadStore{
		leads: make(map[string]domain.SavedLead),
		now:   time.Now,
	}
}

// SaveLeads stores or updates leads keyed by ID.
func (s *LeadStore) SaveLeads(_ context.Context, leads []domain.Lead) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for _, lead := range leads {
		if lead.ID == "" {
			return domain.ErrInvalidInput
		}
		s.leads[lead.ID] = domain.SavedLead{Lead: lead, SavedAt: now}
	}
	return nil
}

// ListLeads returns saved leads, newest first then by company name.
func (s *LeadStore) ListLeads(_ context.Context, sourceID string) ([]domain.SavedLead, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.SavedLead, 0, len(s.leads))
	for _, lead := range s.leads {
		if sourceID == "" || lead.Source == sourceID {
			result = append(result, lead)
		}
	}
	slices.SortFunc(result, func(a, b domain.SavedLead) int {
		if c := b.SavedAt.Compare(a.SavedAt); c != 0 {
			return c
		}
		return strings.Compare(a.CompanyName, b.CompanyName)
	})
	return result, nil
}

// DeleteLeads removes saved leads for a source. An empty sourceID clears all.
func (s *LeadStore) DeleteLeads(_ context.Context, sourceID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, lead := range s.leads {
		if sourceID == "" || lead.Source == sourceID {
			delete(s.leads, id)
			n++
		}
	}
	return n, nil
}
