package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/leadscout/internal/core/domain"
	"github.com/custodia-labs/leadscout/internal/core/ports/driven"
	"github.com/custodia-labs/leadscout/internal/core/ports/driving"
	"github.com/custodia-labs/leadscout/internal/logger"
)

// Ensure LeadService implements the interface.
var _ driving.LeadService = (*LeadService)(nil)

// Search paging defaults.
const (
	DefaultSearchLimit = 20
	MaxSearchLimit     = 100
)

// retryAfterError is implemented by API errors that carry a server backoff.
type retryAfterError interface {
	RetryAfter() time.Duration
}

// LeadService searches the lead API and keeps a local cache of saved leads.
// Requests to each source are paced by that source's configured rate limit.
type LeadService struct {
	api     driven.SourceAPI
	configs driving.SourceConfigService
	store   driven.LeadStore
	now     func() time.Time

	mu       sync.Mutex
	limiters map[string]*rateLimiter
}

// NewLeadService creates a lead service. store may be nil, in which case
// Save and Saved return domain.ErrNotImplemented.
func NewLeadService(
	api driven.SourceAPI,
	configs driving.SourceConfigService,
	store driven.LeadStore,
) *LeadService {
	return &LeadService{
		api:      api,
		configs:  configs,
		store:    store,
		now:      time.Now,
		limiters: make(map[string]*rateLimiter),
	}
}

// Search queries every selected source that is configured.
// When the role-based source is among them and no roles are given, its
// saved roles are used.
func (s *LeadService) Search(ctx context.Context, params domain.LeadSearchParams) (domain.LeadPage, error) {
	targets, err := s.targets(ctx)
	if err != nil {
		return domain.LeadPage{}, err
	}
	if len(targets) == 0 {
		return domain.LeadPage{}, domain.ErrNoConfiguredSources
	}

	ids := make([]string, 0, len(targets))
	for _, t := range targets {
		ids = append(ids, t.Descriptor.ID)
		if t.Descriptor.ID == domain.SourceRoleBased && len(params.Roles) == 0 && t.Config.Filters != nil {
			params.Roles = t.Config.Filters.Roles
		}
	}
	params = normalizeSearchParams(params)

	g, gctx := errgroup.WithContext(ctx)
	for _, t := range targets {
		g.Go(func() error {
			return s.limiter(t.Descriptor.ID, t.Config.RateLimit).Wait(gctx)
		})
	}
	if err := g.Wait(); err != nil {
		return domain.LeadPage{}, fmt.Errorf("rate limit: %w", err)
	}

	logger.Debug("searching %v page=%d limit=%d", ids, params.Page, params.Limit)
	page, err := s.api.SearchLeads(ctx, ids, params)
	if err != nil {
		s.recordBackoff(ids, err)
		return domain.LeadPage{}, fmt.Errorf("search leads: %w", err)
	}
	for i := range page.Leads {
		if page.Leads[i].ID == "" {
			page.Leads[i].ID = uuid.NewString()
		}
	}
	return page, nil
}

// targets returns the selected, configured sources in registry order.
func (s *LeadService) targets(ctx context.Context) ([]domain.SourceState, error) {
	states, err := s.configs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sources: %w", err)
	}
	var targets []domain.SourceState
	for _, st := range states {
		if st.Selected && st.Config.IsConfigured() {
			targets = append(targets, st)
		}
	}
	return targets, nil
}

func normalizeSearchParams(params domain.LeadSearchParams) domain.LeadSearchParams {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.Limit < 1 {
		params.Limit = DefaultSearchLimit
	}
	if params.Limit > MaxSearchLimit {
		params.Limit = MaxSearchLimit
	}
	return params
}

// limiter returns the source's limiter, rebuilt if its rate limit changed.
func (s *LeadService) limiter(sourceID string, limit *domain.RateLimit) *rateLimiter {
	var rl domain.RateLimit
	if limit != nil {
		rl = *limit
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.limiters[sourceID]
	if !ok {
		l = newRateLimiter(rl)
		s.limiters[sourceID] = l
		return l
	}
	l.mu.Lock()
	if l.limit != rl {
		l.reset(rl)
	}
	l.mu.Unlock()
	return l
}

// recordBackoff applies a server backoff to each source's limiter.
func (s *LeadService) recordBackoff(sourceIDs []string, err error) {
	var limited retryAfterError
	if !errors.As(err, &limited) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range sourceIDs {
		if l, ok := s.limiters[id]; ok {
			l.RecordRateLimitError(limited.RetryAfter())
		}
	}
}

// Save stores leads in the local cache. Leads without an ID are given one.
func (s *LeadService) Save(ctx context.Context, leads []domain.Lead) error {
	if s.store == nil {
		return domain.ErrNotImplemented
	}
	for i := range leads {
		if leads[i].ID == "" {
			leads[i].ID = uuid.NewString()
		}
		if leads[i].Source == "" {
			return fmt.Errorf("%w: lead %s has no source", domain.ErrInvalidInput, leads[i].ID)
		}
	}
	return s.store.SaveLeads(ctx, leads)
}

// Saved lists cached leads. An empty sourceID lists all.
func (s *LeadService) Saved(ctx context.Context, sourceID string) ([]domain.SavedLead, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	if sourceID != "" {
		if _, err := s.configs.Get(ctx, sourceID); err != nil {
			return nil, err
		}
	}
	return s.store.ListLeads(ctx, sourceID)
}

// ClearSaved removes cached leads. An empty sourceID clears all.
func (s *LeadService) ClearSaved(ctx context.Context, sourceID string) (int, error) {
	if s.store == nil {
		return 0, domain.ErrNotImplemented
	}
	if sourceID != "" {
		if _, err := s.configs.Get(ctx, sourceID); err != nil {
			return 0, err
		}
	}
	n, err := s.store.DeleteLeads(ctx, sourceID)
	if err != nil {
		return 0, fmt.Errorf("clear saved leads: %w", err)
	}
	logger.Debug("cleared %d saved leads", n)
	return n, nil
}

// Sync triggers a server-side sync and records the sync time.
func (s *LeadService) Sync(ctx context.Context, sourceID string) (domain.SyncResult, error) {
	cfg, err := s.requireConfigured(ctx, sourceID)
	if err != nil {
		return domain.SyncResult{}, err
	}
	if err := s.limiter(sourceID, cfg.RateLimit).Wait(ctx); err != nil {
		return domain.SyncResult{}, fmt.Errorf("rate limit: %w", err)
	}

	result, err := s.api.SyncSource(ctx, sourceID)
	if err != nil {
		s.recordBackoff([]string{sourceID}, err)
		return domain.SyncResult{}, fmt.Errorf("sync %s: %w", sourceID, err)
	}

	now := s.now()
	if _, err := s.configs.Update(ctx, sourceID, domain.SourceConfigPatch{LastSync: &now}); err != nil {
		return domain.SyncResult{}, err
	}
	logger.Info("synced %s: %s", sourceID, result.Status)
	return result, nil
}

// Stats returns usage statistics for a source.
func (s *LeadService) Stats(ctx context.Context, sourceID string) (domain.SourceStats, error) {
	if _, err := s.configs.Get(ctx, sourceID); err != nil {
		return domain.SourceStats{}, err
	}
	stats, err := s.api.GetSourceStats(ctx, sourceID)
	if err != nil {
		return domain.SourceStats{}, fmt.Errorf("stats %s: %w", sourceID, err)
	}
	return stats, nil
}

// Filters returns the filter values a source accepts.
func (s *LeadService) Filters(ctx context.Context, sourceID string) (domain.SourceFilterOptions, error) {
	if _, err := s.configs.Get(ctx, sourceID); err != nil {
		return domain.SourceFilterOptions{}, err
	}
	opts, err := s.api.GetSourceFilters(ctx, sourceID)
	if err != nil {
		return domain.SourceFilterOptions{}, fmt.Errorf("filters %s: %w", sourceID, err)
	}
	return opts, nil
}

func (s *LeadService) requireConfigured(ctx context.Context, sourceID string) (domain.SourceConfig, error) {
	cfg, err := s.configs.Get(ctx, sourceID)
	if err != nil {
		return domain.SourceConfig{}, err
	}
	if !cfg.IsConfigured() {
		return domain.SourceConfig{}, fmt.Errorf("%w: %s", domain.ErrSourceNotConfigured, sourceID)
	}
	return cfg, nil
}
