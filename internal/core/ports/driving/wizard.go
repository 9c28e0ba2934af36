package driving

import (
	"context"

	"github.com/custodia-labs/leadscout/internal/core/domain"
)

// Wizard walks one source through its configuration steps.
type Wizard interface {
	// SourceID returns the source being configured.
	SourceID() string

	// Descriptor returns the source's descriptor.
	Descriptor() domain.Descriptor

	// Step returns the current step index.
	Step() int

	// IsLastStep returns true on the final step, where Next submits.
	IsLastStep() bool

	// Phase returns the wizard state.
	Phase() domain.Phase

	// Message returns the last failure message, if any.
	Message() string

	// Field returns the value entered for a credential field.
	Field(key string) string

	// SetField records a credential value.
	SetField(key, value string) error

	// Back moves to the previous step. It is a no-op on the first step.
	Back() error

	// Next moves to the next step, or submits on the last step.
	Next(ctx context.Context) (domain.Outcome, error)

	// Close cancels any in-flight submission and retires the wizard.
	Close()
}

// ConfigurationService opens configuration flows for sources.
type ConfigurationService interface {
	// OpenWizard starts a wizard for a wizard-flow source.
	// Returns domain.ErrRoleSelectionFlow for role-selection sources.
	OpenWizard(sourceID string) (Wizard, error)

	// OpenRoleSelector starts a role selector for the role-based source.
	OpenRoleSelector() RoleSelector
}
