package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for LeadScout resources.
	uriScheme = "leadscout://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "sources",
		Name:        "sources",
		Description: "All lead sources with their configuration status",
		MIMEType:    "application/json",
	}, s.handleSourcesResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "sources/{sourceId}/leads",
		Name:        "saved-leads",
		Description: "Leads saved locally from a specific source",
		MIMEType:    "application/json",
	}, s.handleSavedLeadsResource)
}

// handleSourcesResource returns every source and its status.
func (s *Server) handleSourcesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	_, output, err := s.handleListSources(ctx, nil, ListSourcesInput{})
	if err != nil {
		return nil, fmt.Errorf("listing sources: %w", err)
	}
	return jsonResource(req.Params.URI, output.Sources)
}

// handleSavedLeadsResource returns the saved leads of one source.
func (s *Server) handleSavedLeadsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Leads == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	sourceID := extractSourceID(req.Params.URI)
	if sourceID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	saved, err := s.ports.Leads.Saved(ctx, sourceID)
	if err != nil {
		return nil, fmt.Errorf("listing saved leads: %w", err)
	}

	type leadInfo struct {
		ID          string `json:"id"`
		CompanyName string `json:"company_name"`
		Industry    string `json:"industry,omitempty"`
		Location    string `json:"location,omitempty"`
		Website     string `json:"website,omitempty"`
		SavedAt     string `json:"saved_at"`
	}

	infos := make([]leadInfo, len(saved))
	for i := range saved {
		infos[i] = leadInfo{
			ID:          saved[i].ID,
			CompanyName: saved[i].CompanyName,
			Industry:    saved[i].Industry,
			Location:    saved[i].Location,
			Website:     saved[i].Website,
			SavedAt:     saved[i].SavedAt.UTC().Format("2006-01-02T15:04:05Z"),
		}
	}
	return jsonResource(req.Params.URI, infos)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractSourceID extracts the source ID from a URI like leadscout://sources/{sourceId}/leads.
func extractSourceID(uri string) string {
	const prefix = uriScheme + "sources/"
	const suffix = "/leads"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	uri = strings.TrimPrefix(uri, prefix)
	if !strings.HasSuffix(uri, suffix) {
		return ""
	}

	return strings.TrimSuffix(uri, suffix)
}
