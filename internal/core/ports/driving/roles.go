package driving

import (
	"context"

	"github.com/custodia-labs/leadscout/internal/core/domain"
)

// RoleSelector builds the set of target roles for the role-based source.
type RoleSelector interface {
	// Load fetches role categories and popular roles. Failures are
	// non-fatal: the error is returned and Banner is set.
	Load(ctx context.Context) error

	// Banner returns the non-fatal load failure message, if any.
	Banner() string

	// Categories returns the loaded role categories.
	Categories() []domain.RoleCategory

	// Popular returns the loaded popular roles.
	Popular() []string

	// Input records the search box contents and schedules a debounced search.
	Input(query string)

	// Results returns the latest applied search results.
	Results() []string

	// Updates delivers each applied search result. It is closed by Close.
	Updates() <-chan domain.SearchUpdate

	// AddRole adds a role to the selection. Adding twice is a no-op.
	AddRole(role string)

	// RemoveRole removes a role from the selection. Absent roles are ignored.
	RemoveRole(role string)

	// Selected returns the selected roles in insertion order.
	Selected() []string

	// CanSave returns true if Save would be attempted.
	CanSave() bool

	// Save fetches statistics for the selection and commits it.
	Save(ctx context.Context) (domain.RoleStats, error)

	// Close stops pending searches. Further calls are no-ops.
	Close()
}
