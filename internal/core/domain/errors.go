package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrUnknownSource indicates a source identifier outside the static registry.
	ErrUnknownSource = errors.New("unknown source")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates a collaborator has not been wired.
	ErrNotImplemented = errors.New("not implemented")

	// Wizard Errors.

	// ErrRoleSelectionFlow indicates the source is configured through the role
	// selector rather than the step wizard.
	ErrRoleSelectionFlow = errors.New("source is configured through role selection")

	// ErrSubmitInProgress indicates a submission is already in flight.
	ErrSubmitInProgress = errors.New("submission in progress")

	// ErrWizardFinished indicates the wizard already completed successfully.
	ErrWizardFinished = errors.New("wizard already finished")

	// ErrWizardClosed indicates the wizard has been closed.
	ErrWizardClosed = errors.New("wizard closed")

	// ErrConnectionFailed indicates the remote connectivity test reported failure.
	ErrConnectionFailed = errors.New("connection test failed")

	// Role Selection Errors.

	// ErrNoRolesSelected indicates a save was attempted with no roles selected.
	ErrNoRolesSelected = errors.New("no roles selected")

	// Lead Errors.

	// ErrNoConfiguredSources indicates no selected source is configured.
	ErrNoConfiguredSources = errors.New("no configured sources selected")

	// ErrSourceNotConfigured indicates an operation needs a configured source.
	ErrSourceNotConfigured = errors.New("source not configured")

	// ErrRequestLimit indicates a source's maximum request count was reached.
	ErrRequestLimit = errors.New("request limit reached")
)

// DefaultConnectionFailure is the message recorded when a connectivity test
// fails without giving a reason.
const DefaultConnectionFailure = "Failed to connect to the data source"

// UnknownSourceError reports a lookup of a source identifier that is not in
// the registry.
type UnknownSourceError struct {
	ID string
}

func (e *UnknownSourceError) Error() string {
	return fmt.Sprintf("unknown source %q", e.ID)
}

// Unwrap allows errors.Is(err, ErrUnknownSource).
func (e *UnknownSourceError) Unwrap() error {
	return ErrUnknownSource
}
