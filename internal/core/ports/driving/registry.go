package driving

import "github.com/custodia-labs/leadscout/internal/core/domain"

// SourceRegistry provides the static table of supported sources.
type SourceRegistry interface {
	// Get returns the descriptor for a source.
	// Returns a *domain.UnknownSourceError for ids outside the table.
	Get(id string) (domain.Descriptor, error)

	// List returns every descriptor in table order.
	List() []domain.Descriptor

	// IDs returns every source id in table order.
	IDs() []string
}
