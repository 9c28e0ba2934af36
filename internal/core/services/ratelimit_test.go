package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/leadscout/internal/core/domain"
)

func TestRateLimiter_MaxRequests(t *testing.T) {
	l := newRateLimiter(domain.RateLimit{RequestsPerMinute: 6000, MaxRequests: 2})
	ctx := context.Background()

	require.NoError(t, l.Wait(ctx))
	require.NoError(t, l.Wait(ctx))
	err := l.Wait(ctx)

	assert.ErrorIs(t, err, domain.ErrRequestLimit)
	assert.Equal(t, 2, l.Used())
}

func TestRateLimiter_Unlimited(t *testing.T) {
	l := newRateLimiter(domain.RateLimit{})

	for range 10 {
		require.NoError(t, l.Wait(context.Background()))
	}
}

func TestRateLimiter_Backoff(t *testing.T) {
	l := newRateLimiter(domain.RateLimit{RequestsPerMinute: 6000})
	l.RecordRateLimitError(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	assert.ErrorIs(t, l.Wait(ctx), context.DeadlineExceeded)
}

func TestRateLimiter_Reset(t *testing.T) {
	l := newRateLimiter(domain.RateLimit{RequestsPerMinute: 60, MaxRequests: 1})
	require.NoError(t, l.Wait(context.Background()))

	l.reset(domain.RateLimit{RequestsPerMinute: 60, MaxRequests: 5})

	assert.NoError(t, l.Wait(context.Background()))
}
