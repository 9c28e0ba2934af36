package driving

import (
	"context"

	"github.com/custodia-labs/leadscout/internal/core/domain"
)

// SourceConfigService is the authoritative in-session source configuration.
type SourceConfigService interface {
	// Get returns the current configuration of a source.
	Get(ctx context.Context, sourceID string) (domain.SourceConfig, error)

	// Update merges patch into the source's configuration and returns the result.
	Update(ctx context.Context, sourceID string, patch domain.SourceConfigPatch) (domain.SourceConfig, error)

	// IsConfigured returns true if the source's status is configured.
	IsConfigured(ctx context.Context, sourceID string) bool

	// SetSelection replaces the set of selected sources.
	SetSelection(ctx context.Context, sourceIDs []string) error

	// Selection returns the selected sources, sorted.
	Selection(ctx context.Context) ([]string, error)

	// Toggle flips whether a source is selected and returns the new state.
	Toggle(ctx context.Context, sourceID string) (bool, error)

	// List returns every source's descriptor, configuration and selection flag.
	List(ctx context.Context) ([]domain.SourceState, error)
}
