package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/leadscout/internal/core/domain"
)

func newTestWizard(t *testing.T, sourceID string) (*Wizard, *SourceConfigService, *mockLeadAPI) {
	t.Helper()
	configs := newTestConfigService(t)
	api := newMockLeadAPI()
	service := NewConfigurationService(NewSourceRegistry(), configs, api, api)

	w, err := service.OpenWizard(sourceID)
	require.NoError(t, err)
	return w.(*Wizard), configs, api
}

// advanceToLastStep moves the wizard onto its final step.
func advanceToLastStep(t *testing.T, w *Wizard) {
	t.Helper()
	for !w.IsLastStep() {
		outcome, err := w.Next(context.Background())
		require.NoError(t, err)
		require.Equal(t, domain.PhaseEditing, outcome.Phase)
	}
}

func TestConfigurationService_OpenWizard_RoleBased(t *testing.T) {
	api := newMockLeadAPI()
	service := NewConfigurationService(NewSourceRegistry(), newTestConfigService(t), api, api)

	w, err := service.OpenWizard(domain.SourceRoleBased)

	assert.Nil(t, w)
	assert.ErrorIs(t, err, domain.ErrRoleSelectionFlow)
}

func TestConfigurationService_OpenWizard_Unknown(t *testing.T) {
	api := newMockLeadAPI()
	service := NewConfigurationService(NewSourceRegistry(), newTestConfigService(t), api, api)

	w, err := service.OpenWizard("myspace")

	assert.Nil(t, w)
	assert.ErrorIs(t, err, domain.ErrUnknownSource)
}

func TestWizard_StepNavigation(t *testing.T) {
	w, _, api := newTestWizard(t, domain.SourceLinkedIn)
	ctx := context.Background()

	assert.Equal(t, 0, w.Step())
	require.NoError(t, w.Back())
	assert.Equal(t, 0, w.Step(), "back on first step is a no-op")

	outcome, err := w.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, outcome.Step)
	assert.False(t, outcome.Submitted())

	require.NoError(t, w.Back())
	assert.Equal(t, 0, w.Step())

	_, err = w.Next(ctx)
	require.NoError(t, err)
	_, err = w.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, w.Step())
	assert.True(t, w.IsLastStep())
	assert.Empty(t, api.configureCalls, "nothing submitted before the last step")
}

func TestWizard_SubmitsOnThirdNext(t *testing.T) {
	w, configs, api := newTestWizard(t, domain.SourceLinkedIn)
	ctx := context.Background()
	require.NoError(t, w.SetField("clientId", "id"))
	require.NoError(t, w.SetField("clientSecret", "secret"))
	require.NoError(t, w.SetField("refreshToken", "token"))

	for range 2 {
		outcome, err := w.Next(ctx)
		require.NoError(t, err)
		assert.False(t, outcome.Submitted())
	}
	outcome, err := w.Next(ctx)

	require.NoError(t, err)
	assert.Equal(t, domain.PhaseSucceeded, outcome.Phase)
	assert.Equal(t, domain.StatusConfigured, outcome.Config.Status)
	require.Len(t, api.configureCalls, 1)
	assert.Equal(t, map[string]string{
		"clientId":     "id",
		"clientSecret": "secret",
		"refreshToken": "token",
	}, api.configureCalls[0].Credentials)
	assert.Equal(t, domain.StatusConfiguring, *api.configureCalls[0].Status)
	assert.Equal(t, 1, api.testCalls)
	assert.True(t, configs.IsConfigured(ctx, domain.SourceLinkedIn))
}

func TestWizard_SuccessMergesServerResult(t *testing.T) {
	w, configs, api := newTestWizard(t, domain.SourceGoogle)
	api.configureResult = domain.SourceConfigPatch{
		Credentials: map[string]string{"apiKey": "stored"},
	}
	require.NoError(t, w.SetField("apiKey", "typed"))
	advanceToLastStep(t, w)

	_, err := w.Next(context.Background())
	require.NoError(t, err)

	cfg, err := configs.Get(context.Background(), domain.SourceGoogle)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfigured, cfg.Status)
	assert.Equal(t, "stored", cfg.Credentials["apiKey"])
	assert.Equal(t, 300, cfg.RateLimit.RequestsPerMinute)
}

func TestWizard_CompletionIsTerminal(t *testing.T) {
	w, _, _ := newTestWizard(t, domain.SourceGoogle)
	advanceToLastStep(t, w)

	outcome, err := w.Next(context.Background())
	require.NoError(t, err)
	require.Equal(t, domain.PhaseSucceeded, outcome.Phase)

	_, err = w.Next(context.Background())
	assert.ErrorIs(t, err, domain.ErrWizardFinished)
	assert.ErrorIs(t, w.Back(), domain.ErrWizardFinished)
	assert.ErrorIs(t, w.SetField("apiKey", "x"), domain.ErrWizardFinished)
}

func TestWizard_ConnectionTestFailure(t *testing.T) {
	w, configs, api := newTestWizard(t, domain.SourceBing)
	api.test = domain.ConnectionTest{Success: false, Error: "X"}
	advanceToLastStep(t, w)

	outcome, err := w.Next(context.Background())

	require.NoError(t, err)
	assert.Equal(t, domain.PhaseFailed, outcome.Phase)
	assert.Equal(t, "X", outcome.Message)
	assert.Equal(t, "X", w.Message())
	assert.True(t, w.IsLastStep(), "wizard stays on the last step")

	cfg, err := configs.Get(context.Background(), domain.SourceBing)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusError, cfg.Status)
	assert.Equal(t, "X", cfg.Error)
}

func TestWizard_ConnectionTestFailureDefaultMessage(t *testing.T) {
	w, configs, api := newTestWizard(t, domain.SourceBing)
	api.test = domain.ConnectionTest{Success: false}
	advanceToLastStep(t, w)

	outcome, err := w.Next(context.Background())

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultConnectionFailure, outcome.Message)
	cfg, err := configs.Get(context.Background(), domain.SourceBing)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultConnectionFailure, cfg.Error)
}

func TestWizard_ConfigureError(t *testing.T) {
	w, configs, api := newTestWizard(t, domain.SourceCrunchbase)
	api.configureErr = errors.New("server exploded")
	advanceToLastStep(t, w)

	outcome, err := w.Next(context.Background())

	require.NoError(t, err)
	assert.Equal(t, domain.PhaseFailed, outcome.Phase)
	assert.Equal(t, "server exploded", outcome.Message)
	assert.Zero(t, api.testCalls, "connection test skipped after configure failure")
	cfg, err := configs.Get(context.Background(), domain.SourceCrunchbase)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusError, cfg.Status)
}

func TestWizard_RetryAfterFailure(t *testing.T) {
	w, configs, api := newTestWizard(t, domain.SourceYellowPages)
	api.test = domain.ConnectionTest{Success: false, Error: "expired token"}
	advanceToLastStep(t, w)

	outcome, err := w.Next(context.Background())
	require.NoError(t, err)
	require.Equal(t, domain.PhaseFailed, outcome.Phase)

	api.mu.Lock()
	api.test = domain.ConnectionTest{Success: true}
	api.mu.Unlock()
	require.NoError(t, w.SetField("apiKey", "fresh"))

	outcome, err = w.Next(context.Background())

	require.NoError(t, err)
	assert.Equal(t, domain.PhaseSucceeded, outcome.Phase)
	cfg, err := configs.Get(context.Background(), domain.SourceYellowPages)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfigured, cfg.Status)
	assert.Empty(t, cfg.Error)
}

func TestWizard_SubmitInProgress(t *testing.T) {
	w, configs, api := newTestWizard(t, domain.SourceGoogle)
	entered := make(chan struct{})
	release := make(chan struct{})
	api.configureHook = func(_ context.Context) error {
		close(entered)
		<-release
		return nil
	}
	advanceToLastStep(t, w)

	done := make(chan domain.Outcome, 1)
	go func() {
		outcome, _ := w.Next(context.Background())
		done <- outcome
	}()
	<-entered
	assert.Equal(t, domain.PhaseSubmitting, w.Phase())

	cfg, err := configs.Get(context.Background(), domain.SourceGoogle)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfiguring, cfg.Status)

	_, err = w.Next(context.Background())
	assert.ErrorIs(t, err, domain.ErrSubmitInProgress)
	assert.ErrorIs(t, w.Back(), domain.ErrSubmitInProgress)
	assert.ErrorIs(t, w.SetField("apiKey", "x"), domain.ErrSubmitInProgress)

	close(release)
	outcome := <-done
	assert.Equal(t, domain.PhaseSucceeded, outcome.Phase)
	assert.Len(t, api.configureCalls, 1)
}

func TestWizard_CloseCancelsSubmission(t *testing.T) {
	w, configs, api := newTestWizard(t, domain.SourceGoogle)
	api.configureHook = func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}
	advanceToLastStep(t, w)

	done := make(chan domain.Outcome, 1)
	go func() {
		outcome, _ := w.Next(context.Background())
		done <- outcome
	}()
	require.Eventually(t, func() bool {
		return w.Phase() == domain.PhaseSubmitting
	}, time.Second, 5*time.Millisecond)

	w.Close()

	select {
	case outcome := <-done:
		assert.Equal(t, domain.PhaseFailed, outcome.Phase)
	case <-time.After(time.Second):
		t.Fatal("submission was not cancelled")
	}

	cfg, err := configs.Get(context.Background(), domain.SourceGoogle)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusError, cfg.Status, "store never stays configuring")

	_, err = w.Next(context.Background())
	assert.ErrorIs(t, err, domain.ErrWizardClosed)
}

func TestWizard_SetField_Unknown(t *testing.T) {
	w, _, _ := newTestWizard(t, domain.SourceGoogle)

	err := w.SetField("password", "x")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestWizard_FieldsPersistAcrossSteps(t *testing.T) {
	w, _, _ := newTestWizard(t, domain.SourceCrunchbase)
	require.NoError(t, w.SetField("apiKey", "a"))

	_, err := w.Next(context.Background())
	require.NoError(t, err)
	require.NoError(t, w.Back())

	assert.Equal(t, "a", w.Field("apiKey"))
}

func TestNewWizard_RequiresWizardFlow(t *testing.T) {
	d, err := NewSourceRegistry().Get(domain.SourceRoleBased)
	require.NoError(t, err)

	_, err = NewWizard(d, newTestConfigService(t), newMockLeadAPI())

	assert.ErrorIs(t, err, domain.ErrRoleSelectionFlow)
}
