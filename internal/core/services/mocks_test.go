package services

import (
	"context"
	"slices"
	"sync"

	"github.com/custodia-labs/leadscout/internal/core/domain"
	"github.com/custodia-labs/leadscout/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockLeadAPI implements driven.SourceAPI and driven.RoleAPI for testing.
type mockLeadAPI struct {
	mu sync.Mutex

	configureResult domain.SourceConfigPatch
	configureErr    error
	configureCalls  []domain.SourceConfigPatch
	// configureHook runs before ConfigureSource returns.
	configureHook func(ctx context.Context) error

	test      domain.ConnectionTest
	testErr   error
	testCalls int

	searchPage    domain.LeadPage
	searchErr     error
	searchSources [][]string

	stats    domain.SourceStats
	statsErr error

	syncResult domain.SyncResult
	syncErr    error

	filters    domain.SourceFilterOptions
	filtersErr error

	categories    []domain.RoleCategory
	categoriesErr error
	popular       []string
	popularErr    error

	roleResults map[string][]string
	roleErr     error
	roleQueries []string
	// roleHook runs before SearchRoles returns.
	roleHook func(ctx context.Context, query string)

	roleStats      domain.RoleStats
	roleStatsErr   error
	roleStatsCalls [][]string
}

var (
	_ driven.SourceAPI = (*mockLeadAPI)(nil)
	_ driven.RoleAPI   = (*mockLeadAPI)(nil)
)

func newMockLeadAPI() *mockLeadAPI {
	return &mockLeadAPI{
		test:        domain.ConnectionTest{Success: true},
		roleResults: make(map[string][]string),
	}
}

func (m *mockLeadAPI) ConfigureSource(
	ctx context.Context,
	_ string,
	patch domain.SourceConfigPatch,
) (domain.SourceConfigPatch, error) {
	m.mu.Lock()
	m.configureCalls = append(m.configureCalls, patch)
	hook := m.configureHook
	result, err := m.configureResult, m.configureErr
	m.mu.Unlock()

	if hook != nil {
		if herr := hook(ctx); herr != nil {
			return domain.SourceConfigPatch{}, herr
		}
	}
	return result, err
}

func (m *mockLeadAPI) TestSourceConnection(_ context.Context, _ string) (domain.ConnectionTest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.testCalls++
	return m.test, m.testErr
}

func (m *mockLeadAPI) SearchLeads(
	_ context.Context,
	sourceIDs []string,
	_ domain.LeadSearchParams,
) (domain.LeadPage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.searchSources = append(m.searchSources, slices.Clone(sourceIDs))
	return m.searchPage, m.searchErr
}

func (m *mockLeadAPI) GetSourceStats(_ context.Context, _ string) (domain.SourceStats, error) {
	return m.stats, m.statsErr
}

func (m *mockLeadAPI) SyncSource(_ context.Context, _ string) (domain.SyncResult, error) {
	return m.syncResult, m.syncErr
}

func (m *mockLeadAPI) GetSourceFilters(_ context.Context, _ string) (domain.SourceFilterOptions, error) {
	return m.filters, m.filtersErr
}

func (m *mockLeadAPI) GetRoleCategories(_ context.Context) ([]domain.RoleCategory, error) {
	return m.categories, m.categoriesErr
}

func (m *mockLeadAPI) GetPopularRoles(_ context.Context) ([]string, error) {
	return m.popular, m.popularErr
}

func (m *mockLeadAPI) SearchRoles(ctx context.Context, query string) ([]string, error) {
	m.mu.Lock()
	m.roleQueries = append(m.roleQueries, query)
	hook := m.roleHook
	results, err := m.roleResults[query], m.roleErr
	m.mu.Unlock()

	if hook != nil {
		hook(ctx, query)
	}
	return results, err
}

func (m *mockLeadAPI) GetRoleStats(_ context.Context, roles []string) (domain.RoleStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.roleStatsCalls = append(m.roleStatsCalls, slices.Clone(roles))
	return m.roleStats, m.roleStatsErr
}

func (m *mockLeadAPI) queries() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.roleQueries)
}
