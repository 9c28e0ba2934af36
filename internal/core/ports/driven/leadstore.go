package driven

import (
	"context"

	"github.com/custodia-labs/leadscout/internal/core/domain"
)

// LeadStore keeps leads returned by searches so they can be reviewed later.
type LeadStore interface {
	// SaveLeads stores or updates leads, keyed by lead ID.
	SaveLeads(ctx context.Context, leads []domain.Lead) error

	// ListLeads returns saved leads. An empty sourceID lists all sources.
	ListLeads(ctx context.Context, sourceID string) ([]domain.SavedLead, error)

	// DeleteLeads removes saved leads for a source. An empty sourceID clears all.
	DeleteLeads(ctx context.Context, sourceID string) (int, error)
}
