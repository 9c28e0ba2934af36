package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/leadscout/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/leadscout/internal/core/domain"
)

func newTestConfigService(t *testing.T) *SourceConfigService {
	t.Helper()
	service, err := NewSourceConfigService(context.Background(), NewSourceRegistry(), memory.NewSourceConfigStore())
	require.NoError(t, err)
	return service
}

func TestNewSourceConfigService_NilDependencies(t *testing.T) {
	_, err := NewSourceConfigService(context.Background(), nil, memory.NewSourceConfigStore())
	assert.ErrorIs(t, err, domain.ErrNotImplemented)

	_, err = NewSourceConfigService(context.Background(), NewSourceRegistry(), nil)
	assert.ErrorIs(t, err, domain.ErrNotImplemented)
}

func TestSourceConfigService_InitialStatus(t *testing.T) {
	service := newTestConfigService(t)
	ctx := context.Background()

	for _, id := range NewSourceRegistry().IDs() {
		t.Run(id, func(t *testing.T) {
			cfg, err := service.Get(ctx, id)
			require.NoError(t, err)
			assert.Equal(t, domain.StatusUnconfigured, cfg.Status)
			assert.Empty(t, cfg.Error)
			assert.Nil(t, cfg.LastSync)
			require.NotNil(t, cfg.RateLimit)
			assert.False(t, service.IsConfigured(ctx, id))
		})
	}
}

func TestSourceConfigService_DefaultRateLimits(t *testing.T) {
	service := newTestConfigService(t)
	ctx := context.Background()

	cfg, err := service.Get(ctx, domain.SourceGoogle)
	require.NoError(t, err)
	assert.Equal(t, &domain.RateLimit{RequestsPerMinute: 300, MaxRequests: 3000}, cfg.RateLimit)

	cfg, err = service.Get(ctx, domain.SourceRoleBased)
	require.NoError(t, err)
	require.NotNil(t, cfg.Filters)
	assert.Empty(t, cfg.Filters.Roles)
}

func TestSourceConfigService_IsConfigured(t *testing.T) {
	tests := []struct {
		status domain.SourceStatus
		want   bool
	}{
		{domain.StatusConfigured, true},
		{domain.StatusUnconfigured, false},
		{domain.StatusConfiguring, false},
		{domain.StatusError, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			service := newTestConfigService(t)
			ctx := context.Background()

			_, err := service.Update(ctx, domain.SourceLinkedIn, domain.StatusPatch(tt.status))

			require.NoError(t, err)
			assert.Equal(t, tt.want, service.IsConfigured(ctx, domain.SourceLinkedIn))
		})
	}
}

func TestSourceConfigService_IsConfigured_Unknown(t *testing.T) {
	service := newTestConfigService(t)

	assert.False(t, service.IsConfigured(context.Background(), "myspace"))
}

func TestSourceConfigService_UnknownSource(t *testing.T) {
	service := newTestConfigService(t)
	ctx := context.Background()

	_, err := service.Get(ctx, "myspace")
	assert.ErrorIs(t, err, domain.ErrUnknownSource)

	_, err = service.Update(ctx, "myspace", domain.StatusPatch(domain.StatusConfigured))
	assert.ErrorIs(t, err, domain.ErrUnknownSource)

	_, err = service.Toggle(ctx, "myspace")
	assert.ErrorIs(t, err, domain.ErrUnknownSource)
}

func TestSourceConfigService_Update_InvalidStatus(t *testing.T) {
	service := newTestConfigService(t)

	_, err := service.Update(context.Background(), domain.SourceGoogle, domain.StatusPatch("bogus"))

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSourceConfigService_Update_ShallowMerge(t *testing.T) {
	service := newTestConfigService(t)
	ctx := context.Background()

	_, err := service.Update(ctx, domain.SourceGoogle, domain.SourceConfigPatch{
		Credentials: map[string]string{"apiKey": "k1"},
	})
	require.NoError(t, err)

	cfg, err := service.Update(ctx, domain.SourceGoogle, domain.SourceConfigPatch{
		Filters: &domain.Filters{Location: []string{"Berlin"}},
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"apiKey": "k1"}, cfg.Credentials)
	assert.Equal(t, []string{"Berlin"}, cfg.Filters.Location)
	assert.Equal(t, 300, cfg.RateLimit.RequestsPerMinute)
	assert.Equal(t, domain.StatusUnconfigured, cfg.Status)
}

func TestSourceConfigService_Update_ErrorClearedOnRecovery(t *testing.T) {
	service := newTestConfigService(t)
	ctx := context.Background()

	cfg, err := service.Update(ctx, domain.SourceBing, domain.ErrorPatch("bad key"))
	require.NoError(t, err)
	assert.Equal(t, domain.StatusError, cfg.Status)
	assert.Equal(t, "bad key", cfg.Error)

	cfg, err = service.Update(ctx, domain.SourceBing, domain.StatusPatch(domain.StatusConfigured))
	require.NoError(t, err)
	assert.Empty(t, cfg.Error)
}

func TestSourceConfigService_Update_LeavesOtherSources(t *testing.T) {
	service := newTestConfigService(t)
	ctx := context.Background()

	_, err := service.Update(ctx, domain.SourceLinkedIn, domain.StatusPatch(domain.StatusConfigured))
	require.NoError(t, err)

	assert.True(t, service.IsConfigured(ctx, domain.SourceLinkedIn))
	assert.False(t, service.IsConfigured(ctx, domain.SourceGoogle))
}

func TestSourceConfigService_SetSelection(t *testing.T) {
	service := newTestConfigService(t)
	ctx := context.Background()

	err := service.SetSelection(ctx, []string{domain.SourceGoogle, domain.SourceBing, domain.SourceGoogle})
	require.NoError(t, err)

	selected, err := service.Selection(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{domain.SourceBing, domain.SourceGoogle}, selected)
}

func TestSourceConfigService_SetSelection_UnknownLeavesSelection(t *testing.T) {
	service := newTestConfigService(t)
	ctx := context.Background()
	require.NoError(t, service.SetSelection(ctx, []string{domain.SourceGoogle}))

	err := service.SetSelection(ctx, []string{domain.SourceBing, "myspace"})

	require.ErrorIs(t, err, domain.ErrUnknownSource)
	selected, err := service.Selection(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{domain.SourceGoogle}, selected)
}

func TestSourceConfigService_Toggle(t *testing.T) {
	service := newTestConfigService(t)
	ctx := context.Background()

	on, err := service.Toggle(ctx, domain.SourceCrunchbase)
	require.NoError(t, err)
	assert.True(t, on)

	selected, err := service.Selection(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{domain.SourceCrunchbase}, selected)

	on, err = service.Toggle(ctx, domain.SourceCrunchbase)
	require.NoError(t, err)
	assert.False(t, on)

	selected, err = service.Selection(ctx)
	require.NoError(t, err)
	assert.Empty(t, selected)
}

func TestSourceConfigService_List(t *testing.T) {
	service := newTestConfigService(t)
	ctx := context.Background()
	require.NoError(t, service.SetSelection(ctx, []string{domain.SourceBing}))
	_, err := service.Update(ctx, domain.SourceGoogle, domain.StatusPatch(domain.StatusConfigured))
	require.NoError(t, err)

	states, err := service.List(ctx)

	require.NoError(t, err)
	require.Len(t, states, 6)
	assert.Equal(t, domain.SourceLinkedIn, states[0].Descriptor.ID)
	for _, s := range states {
		assert.Equal(t, s.Descriptor.ID == domain.SourceBing, s.Selected, s.Descriptor.ID)
		assert.Equal(t, s.Descriptor.ID == domain.SourceGoogle, s.Config.IsConfigured(), s.Descriptor.ID)
	}
}
