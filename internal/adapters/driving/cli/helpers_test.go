package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/custodia-labs/leadscout/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/leadscout/internal/core/domain"
	"github.com/custodia-labs/leadscout/internal/core/services"
)

// fakeAPI serves both the source and role surfaces of the lead API.
type fakeAPI struct {
	mu         sync.Mutex
	test       domain.ConnectionTest
	page       domain.LeadPage
	searched   [][]string
	configured map[string]map[string]string
	roles      []string
	stats      domain.RoleStats
	statsErr   error
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		test:       domain.ConnectionTest{Success: true},
		configured: make(map[string]map[string]string),
		roles:      []string{"Chief Technology Officer", "CTO Office Lead"},
		stats: domain.RoleStats{
			TotalLeads:       1200,
			AverageSeniority: "Senior",
			TopIndustries:    []domain.IndustryCount{{Industry: "Software", Count: 400}},
			RoleDistribution: []domain.RoleShare{{Role: "CTO", Percentage: 62.5}},
		},
	}
}

func (f *fakeAPI) ConfigureSource(
	_ context.Context, sourceID string, patch domain.SourceConfigPatch,
) (domain.SourceConfigPatch, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.configured[sourceID] = patch.Credentials
	return domain.SourceConfigPatch{Credentials: patch.Credentials}, nil
}

func (f *fakeAPI) TestSourceConnection(context.Context, string) (domain.ConnectionTest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.test, nil
}

func (f *fakeAPI) SearchLeads(_ context.Context, ids []string, _ domain.LeadSearchParams) (domain.LeadPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searched = append(f.searched, ids)
	return f.page, nil
}

func (f *fakeAPI) GetSourceStats(context.Context, string) (domain.SourceStats, error) {
	return domain.SourceStats{TotalLeads: 42, RequestsRemaining: 90, RequestsLimit: 100}, nil
}

func (f *fakeAPI) SyncSource(context.Context, string) (domain.SyncResult, error) {
	return domain.SyncResult{Status: "success", Message: "Sync started"}, nil
}

func (f *fakeAPI) GetSourceFilters(context.Context, string) (domain.SourceFilterOptions, error) {
	return domain.SourceFilterOptions{Locations: []string{"Berlin", "London"}}, nil
}

func (f *fakeAPI) GetRoleCategories(context.Context) ([]domain.RoleCategory, error) {
	return []domain.RoleCategory{
		{ID: "executive", Name: "Executive", Roles: []string{"CEO", "CTO"}},
	}, nil
}

func (f *fakeAPI) GetPopularRoles(context.Context) ([]string, error) {
	return []string{"CEO", "Head of Sales"}, nil
}

func (f *fakeAPI) SearchRoles(context.Context, string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.roles...), nil
}

func (f *fakeAPI) GetRoleStats(context.Context, []string) (domain.RoleStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stats, f.statsErr
}

// setupTestServices wires real services over memory stores and a fake API.
func setupTestServices(t *testing.T) *fakeAPI {
	t.Helper()

	api := newFakeAPI()
	registry := services.NewSourceRegistry()
	configs, err := services.NewSourceConfigService(context.Background(), registry, memory.NewSourceConfigStore())
	if err != nil {
		t.Fatalf("source config service: %v", err)
	}

	SetServices(Services{
		Registry: registry,
		Sources:  configs,
		Configuration: services.NewConfigurationService(registry, configs, api, api,
			services.WithSearchDelay(time.Millisecond)),
		Leads:    services.NewLeadService(api, configs, memory.NewLeadStore()),
		Settings: services.NewSettingsService(memory.NewConfigStore()),
	})
	t.Cleanup(func() { SetServices(Services{}) })
	return api
}

// execute runs the root command with args and returns its output.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}
