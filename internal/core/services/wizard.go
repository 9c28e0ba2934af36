package services

import (
	"context"
	"maps"
	"sync"

	"github.com/custodia-labs/leadscout/internal/core/domain"
	"github.com/custodia-labs/leadscout/internal/core/ports/driven"
	"github.com/custodia-labs/leadscout/internal/core/ports/driving"
	"github.com/custodia-labs/leadscout/internal/logger"
)

// Ensure Wizard implements the interface.
var _ driving.Wizard = (*Wizard)(nil)

// Wizard is the step-driven configuration flow for one source.
//
// Next advances through the descriptor's steps and submits on the last one.
// Submission calls ConfigureSource then TestSourceConnection and records the
// result in the config store. A failed submission leaves the wizard on the
// last step so Next can be retried.
type Wizard struct {
	descriptor domain.Descriptor
	configs    driving.SourceConfigService
	api        driven.SourceAPI

	mu      sync.Mutex
	step    int
	phase   domain.Phase
	message string
	fields  map[string]string
	closed  bool
	cancel  context.CancelFunc
}

// NewWizard creates a wizard for a wizard-flow descriptor.
func NewWizard(
	descriptor domain.Descriptor,
	configs driving.SourceConfigService,
	api driven.SourceAPI,
) (*Wizard, error) {
	if descriptor.Flow != domain.FlowWizard {
		return nil, domain.ErrRoleSelectionFlow
	}
	if len(descriptor.Steps) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if configs == nil || api == nil {
		return nil, domain.ErrNotImplemented
	}
	return &Wizard{
		descriptor: descriptor,
		configs:    configs,
		api:        api,
		phase:      domain.PhaseEditing,
		fields:     make(map[string]string),
	}, nil
}

// SourceID returns the source being configured.
func (w *Wizard) SourceID() string {
	return w.descriptor.ID
}

// Descriptor returns the source's descriptor.
func (w *Wizard) Descriptor() domain.Descriptor {
	return w.descriptor
}

// Step returns the current step index.
func (w *Wizard) Step() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

// IsLastStep returns true on the final step.
func (w *Wizard) IsLastStep() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step == w.lastStep()
}

func (w *Wizard) lastStep() int {
	return len(w.descriptor.Steps) - 1
}

// Phase returns the wizard state.
func (w *Wizard) Phase() domain.Phase {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.phase
}

// Message returns the last failure message.
func (w *Wizard) Message() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.message
}

// Field returns the value entered for a credential field.
func (w *Wizard) Field(key string) string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.fields[key]
}

// SetField records a credential value. Values from every step are
// collected into one flat map and submitted together.
func (w *Wizard) SetField(key, value string) error {
	if !w.descriptor.HasField(key) {
		return domain.ErrInvalidInput
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.checkEditable(); err != nil {
		return err
	}
	w.fields[key] = value
	return nil
}

// checkEditable reports why the wizard cannot change (caller must hold lock).
func (w *Wizard) checkEditable() error {
	switch {
	case w.closed:
		return domain.ErrWizardClosed
	case w.phase == domain.PhaseSubmitting:
		return domain.ErrSubmitInProgress
	case w.phase == domain.PhaseSucceeded:
		return domain.ErrWizardFinished
	}
	return nil
}

// Back moves to the previous step. It is a no-op on the first step.
func (w *Wizard) Back() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.checkEditable(); err != nil {
		return err
	}
	if w.step > 0 {
		w.step--
	}
	w.phase = domain.PhaseEditing
	return nil
}

// Next moves to the next step, or submits on the last step and returns the
// submission's outcome. Remote failures are reported in the outcome, not as
// an error; the error is reserved for calls the wizard refuses.
func (w *Wizard) Next(ctx context.Context) (domain.Outcome, error) {
	w.mu.Lock()
	if err := w.checkEditable(); err != nil {
		w.mu.Unlock()
		return domain.Outcome{}, err
	}
	if w.step < w.lastStep() {
		w.step++
		w.phase = domain.PhaseEditing
		outcome := domain.Outcome{Phase: w.phase, Step: w.step, Message: w.message}
		w.mu.Unlock()
		return outcome, nil
	}

	w.phase = domain.PhaseSubmitting
	creds := maps.Clone(w.fields)
	submitCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.mu.Unlock()

	outcome := w.submit(submitCtx, creds)
	cancel()

	w.mu.Lock()
	defer w.mu.Unlock()
	w.cancel = nil
	w.phase = outcome.Phase
	w.message = outcome.Message
	outcome.Step = w.step
	return outcome, nil
}

// submit runs the configure-then-test sequence.
func (w *Wizard) submit(ctx context.Context, creds map[string]string) domain.Outcome {
	id := w.descriptor.ID
	logger.Section("Configure " + id)

	if _, err := w.configs.Update(ctx, id, domain.StatusPatch(domain.StatusConfiguring)); err != nil {
		return w.fail(ctx, err.Error())
	}

	configuring := domain.StatusConfiguring
	stored, err := w.api.ConfigureSource(ctx, id, domain.SourceConfigPatch{
		Credentials: creds,
		Status:      &configuring,
	})
	if err != nil {
		logger.Warn("configure %s: %v", id, err)
		return w.fail(ctx, err.Error())
	}

	test, err := w.api.TestSourceConnection(ctx, id)
	if err != nil {
		logger.Warn("test %s: %v", id, err)
		return w.fail(ctx, err.Error())
	}
	if !test.Success {
		msg := test.Error
		if msg == "" {
			msg = domain.DefaultConnectionFailure
		}
		logger.Debug("test %s reported failure: %s", id, msg)
		return w.fail(ctx, msg)
	}

	cfg, err := w.configs.Update(ctx, id, stored.WithStatus(domain.StatusConfigured))
	if err != nil {
		return w.fail(ctx, err.Error())
	}
	logger.Info("source %s configured", id)
	return domain.Outcome{Phase: domain.PhaseSucceeded, Config: cfg}
}

// fail records the failure in the store. The write outlives a cancelled
// submission so the store never stays in configuring.
func (w *Wizard) fail(ctx context.Context, message string) domain.Outcome {
	cfg, err := w.configs.Update(context.WithoutCancel(ctx), w.descriptor.ID, domain.ErrorPatch(message))
	if err != nil {
		logger.Warn("record failure for %s: %v", w.descriptor.ID, err)
	}
	return domain.Outcome{Phase: domain.PhaseFailed, Config: cfg, Message: message}
}

// Close cancels any in-flight submission and retires the wizard.
func (w *Wizard) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	if w.cancel != nil {
		w.cancel()
	}
}
