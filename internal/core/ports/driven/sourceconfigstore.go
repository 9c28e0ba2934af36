package driven

import (
	"context"

	"github.com/custodia-labs/leadscout/internal/core/domain"
)

// SourceConfigStore holds source configurations and the selection set for
// the lifetime of the session.
type SourceConfigStore interface {
	// Save stores or replaces the configuration for a source.
	Save(ctx context.Context, sourceID string, cfg domain.SourceConfig) error

	// Get retrieves the configuration for a source.
	// Returns domain.ErrUnknownSource if nothing is stored under sourceID.
	Get(ctx context.Context, sourceID string) (domain.SourceConfig, error)

	// Modify applies fn to the stored configuration atomically and stores
	// the result. Returns domain.ErrUnknownSource if nothing is stored.
	Modify(ctx context.Context, sourceID string, fn func(domain.SourceConfig) domain.SourceConfig) (domain.SourceConfig, error)

	// SetSelection replaces the selection set.
	SetSelection(ctx context.Context, sourceIDs []string) error

	// Selection returns the selection set.
	Selection(ctx context.Context) ([]string, error)
}
