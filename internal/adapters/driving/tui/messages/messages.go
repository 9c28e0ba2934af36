// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/leadscout/internal/core/domain"
	"github.com/custodia-labs/leadscout/internal/core/ports/driving"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewSources lists sources with their status and selection.
	ViewSources
	// ViewWizard is the step wizard for one source.
	ViewWizard
	// ViewRoles is the role selector for the role-based source.
	ViewRoles
	// ViewLeads is the lead search view.
	ViewLeads
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewSources:
		return "sources"
	case ViewWizard:
		return "wizard"
	case ViewRoles:
		return "roles"
	case ViewLeads:
		return "leads"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// SourcesLoaded carries the current state of every source.
type SourcesLoaded struct {
	Sources []domain.SourceState
	Err     error
}

// SourceToggled signals a source was added to or removed from the selection.
type SourceToggled struct {
	SourceID string
	Selected bool
	Err      error
}

// ConfigureRequested asks the app to open the configuration flow for a source.
type ConfigureRequested struct {
	Descriptor domain.Descriptor
}

// WizardSubmitted carries the outcome of a wizard submission.
type WizardSubmitted struct {
	SourceID string
	Outcome  domain.Outcome
	Err      error
}

// RolesLoaded signals the role selector finished its initial load.
// Err is non-fatal.
type RolesLoaded struct {
	Err error
}

// RoleSearchUpdated carries an applied role search.
type RoleSearchUpdated struct {
	// Selector is the selector the update came from.
	Selector driving.RoleSelector
	Update   domain.SearchUpdate
}

// RolesSaved signals the role selection was saved.
type RolesSaved struct {
	Stats domain.RoleStats
	Err   error
}

// LeadsFound carries the results of a lead search.
type LeadsFound struct {
	Query string
	Page  domain.LeadPage
	Err   error
}

// ConfigurationDone signals a configuration flow finished and the user
// returned to the sources list.
type ConfigurationDone struct {
	SourceID string
}
