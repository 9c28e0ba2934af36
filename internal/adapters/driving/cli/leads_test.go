package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/leadscout/internal/core/domain"
)

func configureAndSelect(t *testing.T, id string) {
	t.Helper()
	_, err := execute(t, "", "configure", id, "--set", "apiKey=k")
	require.NoError(t, err)
	_, err = execute(t, "", "sources", "toggle", id)
	require.NoError(t, err)
}

func TestLeadsSearch_NoConfiguredSources(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "", "leads", "search", "fintech")

	require.ErrorIs(t, err, domain.ErrNoConfiguredSources)
	assert.Contains(t, err.Error(), "leadscout shell")
}

func TestLeadsSearch_PrintsTable(t *testing.T) {
	api := setupTestServices(t)
	configureAndSelect(t, domain.SourceGoogle)
	api.page = domain.LeadPage{
		Leads: []domain.Lead{{
			ID: "l1", Source: domain.SourceGoogle, CompanyName: "Acme Corp", Industry: "Software",
			Confidence: 0.87, Contacts: []domain.Contact{{Name: "Jane Doe"}},
		}},
		Total: 12,
	}

	out, err := execute(t, "", "leads", "search", "acme")

	require.NoError(t, err)
	assert.Contains(t, out, "Acme Corp")
	assert.Contains(t, out, "Jane Doe")
	assert.Contains(t, out, "87%")
	assert.Contains(t, out, "1 of 12 leads")
	assert.Equal(t, [][]string{{domain.SourceGoogle}}, api.searched)
}

func TestLeadsSearch_SaveThenSaved(t *testing.T) {
	api := setupTestServices(t)
	configureAndSelect(t, domain.SourceBing)
	api.page = domain.LeadPage{
		Leads: []domain.Lead{{ID: "l1", Source: domain.SourceBing, CompanyName: "Globex"}},
		Total: 1,
	}

	out, err := execute(t, "", "leads", "search", "--save")
	require.NoError(t, err)
	assert.Contains(t, out, "Saved 1 leads.")

	out, err = execute(t, "", "leads", "saved", domain.SourceBing)
	require.NoError(t, err)
	assert.Contains(t, out, "Globex")
}

func TestLeadsSaved_Clear(t *testing.T) {
	api := setupTestServices(t)
	configureAndSelect(t, domain.SourceBing)
	api.page = domain.LeadPage{
		Leads: []domain.Lead{
			{ID: "l1", Source: domain.SourceBing, CompanyName: "Globex"},
			{ID: "l2", Source: domain.SourceBing, CompanyName: "Initech"},
		},
		Total: 2,
	}
	_, err := execute(t, "", "leads", "search", "--save")
	require.NoError(t, err)

	out, err := execute(t, "", "leads", "saved", domain.SourceBing, "--clear")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed 2 saved leads.")

	out, err = execute(t, "", "leads", "saved")
	require.NoError(t, err)
	assert.Contains(t, out, "No saved leads.")
}

func TestLeadsSaved_ClearUnknownSource(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "", "leads", "saved", "myspace", "--clear")

	assert.ErrorIs(t, err, domain.ErrUnknownSource)
}

func TestLeadsSaved_Empty(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "", "leads", "saved")

	require.NoError(t, err)
	assert.Contains(t, out, "No saved leads.")
}

func TestLeadsSearch_NoResults(t *testing.T) {
	setupTestServices(t)
	configureAndSelect(t, domain.SourceGoogle)

	out, err := execute(t, "", "leads", "search")

	require.NoError(t, err)
	assert.Contains(t, out, "No leads found.")
}

func TestSync_RequiresConfiguredSource(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "", "sync", domain.SourceGoogle)

	assert.ErrorIs(t, err, domain.ErrSourceNotConfigured)
}

func TestSync_ConfiguredSource(t *testing.T) {
	setupTestServices(t)
	configureAndSelect(t, domain.SourceGoogle)

	out, err := execute(t, "", "sync", domain.SourceGoogle)

	require.NoError(t, err)
	assert.Contains(t, out, "Status: success")
	cfg, err := sourceConfigService.Get(t.Context(), domain.SourceGoogle)
	require.NoError(t, err)
	assert.NotNil(t, cfg.LastSync)
}

func TestStats_PrintsUsage(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "", "stats", domain.SourceLinkedIn)

	require.NoError(t, err)
	assert.Contains(t, out, "42")
	assert.Contains(t, out, "90 of 100")
	assert.Contains(t, out, "never")
}
