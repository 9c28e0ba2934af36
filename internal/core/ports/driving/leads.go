package driving

import (
	"context"

	"github.com/custodia-labs/leadscout/internal/core/domain"
)

// LeadService runs lead searches and source maintenance against the API.
type LeadService interface {
	// Search queries the selected, configured sources.
	Search(ctx context.Context, params domain.LeadSearchParams) (domain.LeadPage, error)

	// Save stores leads in the local lead cache.
	Save(ctx context.Context, leads []domain.Lead) error

	// Saved lists cached leads. An empty sourceID lists all.
	Saved(ctx context.Context, sourceID string) ([]domain.SavedLead, error)

	// ClearSaved removes cached leads and returns how many were removed.
	// An empty sourceID clears all.
	ClearSaved(ctx context.Context, sourceID string) (int, error)

	// Sync triggers a sync of a configured source.
	Sync(ctx context.Context, sourceID string) (domain.SyncResult, error)

	// Stats returns usage statistics for a source.
	Stats(ctx context.Context, sourceID string) (domain.SourceStats, error)

	// Filters returns the filter values a source accepts.
	Filters(ctx context.Context, sourceID string) (domain.SourceFilterOptions, error)
}
