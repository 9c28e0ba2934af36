package mcp

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/leadscout/internal/core/domain"
)

// ListSourcesInput is the input schema for the list_sources tool.
type ListSourcesInput struct {
	SelectedOnly bool `json:"selected_only,omitempty" jsonschema:"only return sources selected for lead search"`
}

// ListSourcesOutput is the output schema for the list_sources tool.
type ListSourcesOutput struct {
	Sources []SourceSummary `json:"sources"`
	Count   int             `json:"count"`
}

// SourceSummary describes one source.
type SourceSummary struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Availability string   `json:"availability"`
	Status       string   `json:"status"`
	Selected     bool     `json:"selected"`
	Capabilities []string `json:"capabilities,omitempty"`
}

// SourceConfigInput is the input schema for the source_config tool.
type SourceConfigInput struct {
	SourceID string `json:"source_id" jsonschema:"the source identifier, e.g. linkedin"`
}

// SourceConfigOutput is the output schema for the source_config tool.
// Credential values are never returned, only which keys are set.
type SourceConfigOutput struct {
	SourceID       string            `json:"source_id"`
	Status         string            `json:"status"`
	Error          string            `json:"error,omitempty"`
	CredentialKeys []string          `json:"credential_keys,omitempty"`
	Filters        *domain.Filters   `json:"filters,omitempty"`
	RateLimit      *domain.RateLimit `json:"rate_limit,omitempty"`
	LastSync       string            `json:"last_sync,omitempty"`
}

// SearchLeadsInput is the input schema for the search_leads tool.
type SearchLeadsInput struct {
	Query    string   `json:"query,omitempty" jsonschema:"free-text query"`
	Location []string `json:"location,omitempty" jsonschema:"locations to filter by"`
	Industry []string `json:"industry,omitempty" jsonschema:"industries to filter by"`
	Roles    []string `json:"roles,omitempty" jsonschema:"job titles to filter contacts by"`
	Page     int      `json:"page,omitempty" jsonschema:"result page, starting at 1"`
	Limit    int      `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 10)"`
}

// SearchLeadsOutput is the output schema for the search_leads tool.
type SearchLeadsOutput struct {
	Leads []domain.Lead `json:"leads"`
	Count int           `json:"count"`
	Total int           `json:"total"`
}

// SelectSourcesInput is the input schema for the select_sources tool.
type SelectSourcesInput struct {
	SourceIDs []string `json:"source_ids" jsonschema:"sources to search, replacing the current selection; empty clears it"`
}

// SelectSourcesOutput is the output schema for the select_sources tool.
type SelectSourcesOutput struct {
	Selected []string `json:"selected"`
}

// ConfigureSourceInput is the input schema for the configure_source tool.
type ConfigureSourceInput struct {
	SourceID    string            `json:"source_id" jsonschema:"the source identifier, e.g. google"`
	Credentials map[string]string `json:"credentials" jsonschema:"credential values keyed by field, e.g. apiKey"`
}

// ConfigureSourceOutput is the output schema for the configure_source tool.
type ConfigureSourceOutput struct {
	SourceID string `json:"source_id"`
	Success  bool   `json:"success"`
	Status   string `json:"status"`
	Message  string `json:"message,omitempty"`
}

// SaveRolesInput is the input schema for the save_roles tool.
type SaveRolesInput struct {
	Roles []string `json:"roles" jsonschema:"job titles to target with the role-based source"`
}

// SaveRolesOutput is the output schema for the save_roles tool.
type SaveRolesOutput struct {
	Roles []string         `json:"roles"`
	Stats domain.RoleStats `json:"stats"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_sources",
		Description: "List lead sources with their configuration status",
	}, s.handleListSources)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "source_config",
		Description: "Show the configuration of one lead source",
	}, s.handleSourceConfig)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_leads",
		Description: "Search company leads across the selected, configured sources",
	}, s.handleSearchLeads)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "select_sources",
		Description: "Choose which sources lead searches run against",
	}, s.handleSelectSources)

	mcp.AddTool(s.server, &mcp.Tool{
		Name: "configure_source",
		Description: "Submit credentials for a source and test the connection. " +
			"The role-based source is configured with save_roles",
	}, s.handleConfigureSource)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "save_roles",
		Description: "Configure the role-based source with target job titles",
	}, s.handleSaveRoles)
}

func (s *Server) handleListSources(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListSourcesInput,
) (*mcp.CallToolResult, ListSourcesOutput, error) {
	states, err := s.ports.Sources.List(ctx)
	if err != nil {
		return nil, ListSourcesOutput{}, err
	}

	output := ListSourcesOutput{Sources: []SourceSummary{}}
	for _, st := range states {
		if input.SelectedOnly && !st.Selected {
			continue
		}
		output.Sources = append(output.Sources, SourceSummary{
			ID:           st.Descriptor.ID,
			Name:         st.Descriptor.Name,
			Description:  st.Descriptor.Description,
			Availability: string(st.Descriptor.Availability),
			Status:       st.Config.Status.String(),
			Selected:     st.Selected,
			Capabilities: st.Descriptor.Capabilities,
		})
	}
	output.Count = len(output.Sources)
	return nil, output, nil
}

func (s *Server) handleSourceConfig(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SourceConfigInput,
) (*mcp.CallToolResult, SourceConfigOutput, error) {
	cfg, err := s.ports.Sources.Get(ctx, input.SourceID)
	if err != nil {
		return nil, SourceConfigOutput{}, err
	}

	output := SourceConfigOutput{
		SourceID:  input.SourceID,
		Status:    cfg.Status.String(),
		Error:     cfg.Error,
		Filters:   cfg.Filters,
		RateLimit: cfg.RateLimit,
	}
	for key, value := range cfg.Credentials {
		if value != "" {
			output.CredentialKeys = append(output.CredentialKeys, key)
		}
	}
	slices.Sort(output.CredentialKeys)
	if cfg.LastSync != nil {
		output.LastSync = cfg.LastSync.Format(time.RFC3339)
	}
	return nil, output, nil
}

func (s *Server) handleSearchLeads(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchLeadsInput,
) (*mcp.CallToolResult, SearchLeadsOutput, error) {
	if s.ports.Leads == nil {
		return nil, SearchLeadsOutput{}, ErrLeadsUnavailable
	}

	limit := input.Limit
	if limit <= 0 {
		limit = 10
	}

	page, err := s.ports.Leads.Search(ctx, domain.LeadSearchParams{
		Query:    input.Query,
		Location: input.Location,
		Industry: input.Industry,
		Roles:    input.Roles,
		Page:     input.Page,
		Limit:    limit,
	})
	if err != nil {
		return nil, SearchLeadsOutput{}, err
	}

	leads := page.Leads
	if leads == nil {
		leads = []domain.Lead{}
	}
	return nil, SearchLeadsOutput{
		Leads: leads,
		Count: len(leads),
		Total: page.Total,
	}, nil
}

func (s *Server) handleSelectSources(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SelectSourcesInput,
) (*mcp.CallToolResult, SelectSourcesOutput, error) {
	if err := s.ports.Sources.SetSelection(ctx, input.SourceIDs); err != nil {
		return nil, SelectSourcesOutput{}, err
	}
	selected, err := s.ports.Sources.Selection(ctx)
	if err != nil {
		return nil, SelectSourcesOutput{}, err
	}
	if selected == nil {
		selected = []string{}
	}
	return nil, SelectSourcesOutput{Selected: selected}, nil
}

// handleConfigureSource fills the wizard from the given credentials and
// advances it through every step. A failed connection test is reported in
// the output, not as a tool error.
func (s *Server) handleConfigureSource(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ConfigureSourceInput,
) (*mcp.CallToolResult, ConfigureSourceOutput, error) {
	if s.ports.Configuration == nil {
		return nil, ConfigureSourceOutput{}, ErrConfigurationUnavailable
	}

	w, err := s.ports.Configuration.OpenWizard(input.SourceID)
	if errors.Is(err, domain.ErrRoleSelectionFlow) {
		return nil, ConfigureSourceOutput{}, fmt.Errorf("%s is configured with save_roles: %w", input.SourceID, err)
	}
	if err != nil {
		return nil, ConfigureSourceOutput{}, err
	}
	defer w.Close()

	d := w.Descriptor()
	for key, value := range input.Credentials {
		if !d.HasField(key) {
			return nil, ConfigureSourceOutput{}, fmt.Errorf("%w: %s has no field %q",
				domain.ErrInvalidInput, input.SourceID, key)
		}
		if err := w.SetField(key, value); err != nil {
			return nil, ConfigureSourceOutput{}, err
		}
	}

	var outcome domain.Outcome
	for range d.Steps {
		outcome, err = w.Next(ctx)
		if err != nil {
			return nil, ConfigureSourceOutput{}, err
		}
		if outcome.Submitted() {
			break
		}
	}

	return nil, ConfigureSourceOutput{
		SourceID: input.SourceID,
		Success:  outcome.Phase == domain.PhaseSucceeded,
		Status:   outcome.Config.Status.String(),
		Message:  outcome.Message,
	}, nil
}

func (s *Server) handleSaveRoles(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SaveRolesInput,
) (*mcp.CallToolResult, SaveRolesOutput, error) {
	if s.ports.Configuration == nil {
		return nil, SaveRolesOutput{}, ErrConfigurationUnavailable
	}

	sel := s.ports.Configuration.OpenRoleSelector()
	defer sel.Close()
	for _, role := range input.Roles {
		sel.AddRole(role)
	}

	stats, err := sel.Save(ctx)
	if err != nil {
		return nil, SaveRolesOutput{}, err
	}
	return nil, SaveRolesOutput{Roles: sel.Selected(), Stats: stats}, nil
}
