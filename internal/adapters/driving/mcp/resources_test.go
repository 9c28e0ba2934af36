package mcp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/leadscout/internal/core/domain"
)

func TestExtractSourceID(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{name: "valid URI", uri: "leadscout://sources/linkedin/leads", expected: "linkedin"},
		{name: "dashed id", uri: "leadscout://sources/yellow-pages/leads", expected: "yellow-pages"},
		{name: "missing suffix", uri: "leadscout://sources/linkedin", expected: ""},
		{name: "wrong scheme", uri: "other://sources/linkedin/leads", expected: ""},
		{name: "sources list", uri: "leadscout://sources", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractSourceID(tt.uri))
		})
	}
}

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestServer_handleSourcesResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns sources as JSON", func(t *testing.T) {
		server, err := NewServer(&Ports{Sources: &mockSourceConfigService{states: testStates()}})
		require.NoError(t, err)

		result, err := server.handleSourcesResource(ctx, makeReadResourceRequest("leadscout://sources"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)
		assert.Contains(t, result.Contents[0].Text, `"id": "linkedin"`)
		assert.Contains(t, result.Contents[0].Text, `"status": "unconfigured"`)
	})

	t.Run("empty registry renders empty array", func(t *testing.T) {
		server, err := NewServer(&Ports{Sources: &mockSourceConfigService{}})
		require.NoError(t, err)

		result, err := server.handleSourcesResource(ctx, makeReadResourceRequest("leadscout://sources"))

		require.NoError(t, err)
		assert.Equal(t, "[]", result.Contents[0].Text)
	})

	t.Run("returns error on list failure", func(t *testing.T) {
		server, err := NewServer(&Ports{Sources: &mockSourceConfigService{err: errors.New("store error")}})
		require.NoError(t, err)

		_, err = server.handleSourcesResource(ctx, makeReadResourceRequest("leadscout://sources"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "listing sources")
	})
}

func TestServer_handleSavedLeadsResource(t *testing.T) {
	ctx := context.Background()

	t.Run("nil lead service returns not found", func(t *testing.T) {
		server, err := NewServer(&Ports{Sources: &mockSourceConfigService{}})
		require.NoError(t, err)

		_, err = server.handleSavedLeadsResource(ctx, makeReadResourceRequest("leadscout://sources/linkedin/leads"))
		require.Error(t, err)
	})

	t.Run("invalid URI returns not found", func(t *testing.T) {
		server, err := NewServer(&Ports{Sources: &mockSourceConfigService{}, Leads: &mockLeadService{}})
		require.NoError(t, err)

		_, err = server.handleSavedLeadsResource(ctx, makeReadResourceRequest("leadscout://invalid/uri"))
		require.Error(t, err)
	})

	t.Run("returns saved leads", func(t *testing.T) {
		leads := &mockLeadService{
			saved: []domain.SavedLead{{
				Lead: domain.Lead{
					ID:          "l-1",
					Source:      "linkedin",
					CompanyName: "Acme Corp",
					Industry:    "Software",
				},
				SavedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
			}},
		}
		server, err := NewServer(&Ports{Sources: &mockSourceConfigService{}, Leads: leads})
		require.NoError(t, err)

		result, err := server.handleSavedLeadsResource(ctx, makeReadResourceRequest("leadscout://sources/linkedin/leads"))

		require.NoError(t, err)
		assert.Equal(t, "linkedin", leads.lastSource)
		assert.Contains(t, result.Contents[0].Text, "Acme Corp")
		assert.Contains(t, result.Contents[0].Text, "2026-01-02T03:04:05Z")
	})

	t.Run("returns error on list failure", func(t *testing.T) {
		leads := &mockLeadService{err: errors.New("db closed")}
		server, err := NewServer(&Ports{Sources: &mockSourceConfigService{}, Leads: leads})
		require.NoError(t, err)

		_, err = server.handleSavedLeadsResource(ctx, makeReadResourceRequest("leadscout://sources/linkedin/leads"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "listing saved leads")
	})
}
