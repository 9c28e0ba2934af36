package services

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/bep/debounce"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/leadscout/internal/core/domain"
	"github.com/custodia-labs/leadscout/internal/core/ports/driven"
	"github.com/custodia-labs/leadscout/internal/core/ports/driving"
	"github.com/custodia-labs/leadscout/internal/logger"
)

// Ensure RoleSelector implements the interface.
var _ driving.RoleSelector = (*RoleSelector)(nil)

// DefaultSearchDelay is the quiet period before a role search is sent.
const DefaultSearchDelay = 300 * time.Millisecond

// LoadFailureBanner is shown when role data cannot be loaded.
const LoadFailureBanner = "Failed to load role data"

// RoleSelectorOption configures a RoleSelector.
type RoleSelectorOption func(*RoleSelector)

// WithSearchDelay overrides the search debounce delay.
func WithSearchDelay(d time.Duration) RoleSelectorOption {
	return func(r *RoleSelector) {
		r.delay = d
	}
}

// RoleSelector builds the target role list for the role-based source.
//
// Search input is debounced. Each dispatched search gets a sequence number
// and cancels the previous in-flight search, so only the latest query's
// results are ever applied.
type RoleSelector struct {
	api     driven.RoleAPI
	configs driving.SourceConfigService
	delay   time.Duration

	debounced func(f func())
	updates   chan domain.SearchUpdate

	ctx    context.Context
	cancel context.CancelFunc

	mu           sync.Mutex
	categories   []domain.RoleCategory
	popular      []string
	banner       string
	results      []string
	selected     []string
	seq          uint64
	cancelSearch context.CancelFunc
	saving       bool
	closed       bool
}

// NewRoleSelector creates a role selector.
func NewRoleSelector(
	api driven.RoleAPI,
	configs driving.SourceConfigService,
	opts ...RoleSelectorOption,
) *RoleSelector {
	r := &RoleSelector{
		api:      api,
		configs:  configs,
		delay:    DefaultSearchDelay,
		updates:  make(chan domain.SearchUpdate, 1),
		selected: []string{},
	}
	for _, opt := range opts {
		opt(r)
	}
	r.debounced = debounce.New(r.delay)
	r.ctx, r.cancel = context.WithCancel(context.Background())
	return r
}

// Load fetches role categories and popular roles concurrently. Both must
// succeed for either to be applied.
func (r *RoleSelector) Load(ctx context.Context) error {
	var (
		categories []domain.RoleCategory
		popular    []string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		categories, err = r.api.GetRoleCategories(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		popular, err = r.api.GetPopularRoles(gctx)
		return err
	})

	err := g.Wait()

	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		logger.Warn("load role data: %v", err)
		r.banner = LoadFailureBanner
		return fmt.Errorf("load role data: %w", err)
	}
	r.categories = categories
	r.popular = popular
	r.banner = ""
	return nil
}

// Banner returns the load failure message, if any.
func (r *RoleSelector) Banner() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.banner
}

// Categories returns the loaded role categories.
func (r *RoleSelector) Categories() []domain.RoleCategory {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.categories)
}

// Popular returns the loaded popular roles.
func (r *RoleSelector) Popular() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.popular)
}

// Input receives the search box contents. Every call restarts the debounce
// timer; when it fires, a search is sent only if the trimmed input is longer
// than domain.RoleSearchMinLength.
func (r *RoleSelector) Input(query string) {
	r.mu.Lock()
	closed := r.closed
	r.mu.Unlock()
	if closed {
		return
	}

	r.debounced(func() {
		r.dispatch(strings.TrimSpace(query))
	})
}

// dispatch runs one search and applies its results if it is still the
// latest one.
func (r *RoleSelector) dispatch(query string) {
	if len(query) <= domain.RoleSearchMinLength {
		return
	}

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.seq++
	seq := r.seq
	if r.cancelSearch != nil {
		r.cancelSearch()
	}
	ctx, cancel := context.WithCancel(r.ctx)
	r.cancelSearch = cancel
	r.mu.Unlock()
	defer cancel()

	logger.Debug("role search %d: %q", seq, query)
	roles, err := r.api.SearchRoles(ctx, query)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed || seq != r.seq {
		logger.Debug("role search %d: superseded", seq)
		return
	}
	r.cancelSearch = nil
	if err != nil {
		logger.Warn("role search %q: %v", query, err)
	} else {
		r.results = roles
	}
	r.publish(domain.SearchUpdate{Query: query, Roles: slices.Clone(r.results), Err: err})
}

// publish replaces any unread update with u (caller must hold lock).
func (r *RoleSelector) publish(u domain.SearchUpdate) {
	select {
	case <-r.updates:
	default:
	}
	select {
	case r.updates <- u:
	default:
	}
}

// Results returns the latest applied search results.
func (r *RoleSelector) Results() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.results)
}

// Updates delivers the latest applied search result. Unread updates are
// replaced by newer ones.
func (r *RoleSelector) Updates() <-chan domain.SearchUpdate {
	return r.updates
}

// AddRole adds a role to the selection.
// Adding a role already selected is a no-op.
func (r *RoleSelector) AddRole(role string) {
	role = strings.TrimSpace(role)
	if role == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if !slices.Contains(r.selected, role) {
		r.selected = append(r.selected, role)
	}
}

// RemoveRole removes a role from the selection.
func (r *RoleSelector) RemoveRole(role string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.selected = slices.DeleteFunc(r.selected, func(s string) bool {
		return s == role
	})
}

// Selected returns the selected roles in insertion order.
func (r *RoleSelector) Selected() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.selected)
}

// CanSave returns true if at least one role is selected and no save is
// in flight.
func (r *RoleSelector) CanSave() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.selected) > 0 && !r.saving && !r.closed
}

// Save fetches statistics for the selected roles and then marks the
// role-based source configured with the selection as its role filter.
// Nothing is committed if the statistics request fails.
func (r *RoleSelector) Save(ctx context.Context) (domain.RoleStats, error) {
	r.mu.Lock()
	switch {
	case r.closed:
		r.mu.Unlock()
		return domain.RoleStats{}, domain.ErrWizardClosed
	case len(r.selected) == 0:
		r.mu.Unlock()
		return domain.RoleStats{}, domain.ErrNoRolesSelected
	case r.saving:
		r.mu.Unlock()
		return domain.RoleStats{}, domain.ErrSubmitInProgress
	}
	r.saving = true
	roles := slices.Clone(r.selected)
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		r.saving = false
		r.mu.Unlock()
	}()

	stats, err := r.api.GetRoleStats(ctx, roles)
	if err != nil {
		return domain.RoleStats{}, fmt.Errorf("role stats: %w", err)
	}

	status := domain.StatusConfigured
	if _, err := r.configs.Update(ctx, domain.SourceRoleBased, domain.SourceConfigPatch{
		Status:  &status,
		Filters: &domain.Filters{Roles: roles},
	}); err != nil {
		return domain.RoleStats{}, fmt.Errorf("save roles: %w", err)
	}
	logger.Info("role-based source configured with %d roles", len(roles))
	return stats, nil
}

// Close stops pending and in-flight searches and closes the Updates channel.
func (r *RoleSelector) Close() {
	r.debounced(func() {})

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.closed = true
	close(r.updates)
	if r.cancelSearch != nil {
		r.cancelSearch()
		r.cancelSearch = nil
	}
	r.cancel()
}
