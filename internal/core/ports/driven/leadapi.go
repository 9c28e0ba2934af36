package driven

import (
	"context"

	"github.com/custodia-labs/leadscout/internal/core/domain"
)

// SourceAPI is the remote lead API's per-source surface.
// The API owns persistence; this interface only describes the calls.
type SourceAPI interface {
	// ConfigureSource submits configuration for a source and returns the
	// fields the server stored.
	ConfigureSource(ctx context.Context, sourceID string, patch domain.SourceConfigPatch) (domain.SourceConfigPatch, error)

	// TestSourceConnection asks the server to verify the source's credentials.
	TestSourceConnection(ctx context.Context, sourceID string) (domain.ConnectionTest, error)

	// SearchLeads searches the given sources.
	SearchLeads(ctx context.Context, sourceIDs []string, params domain.LeadSearchParams) (domain.LeadPage, error)

	// GetSourceStats returns usage statistics for a source.
	GetSourceStats(ctx context.Context, sourceID string) (domain.SourceStats, error)

	// SyncSource triggers a server-side sync.
	SyncSource(ctx context.Context, sourceID string) (domain.SyncResult, error)

	// GetSourceFilters returns the filter values a source accepts.
	GetSourceFilters(ctx context.Context, sourceID string) (domain.SourceFilterOptions, error)
}

// RoleAPI is the remote lead API's role-targeting surface.
type RoleAPI interface {
	// GetRoleCategories returns the role categories for browsing.
	GetRoleCategories(ctx context.Context) ([]domain.RoleCategory, error)

	// GetPopularRoles returns frequently targeted roles.
	GetPopularRoles(ctx context.Context) ([]string, error)

	// SearchRoles returns roles matching a query fragment.
	SearchRoles(ctx context.Context, query string) ([]string, error)

	// GetRoleStats returns aggregate statistics for a set of roles.
	GetRoleStats(ctx context.Context, roles []string) (domain.RoleStats, error)
}
