package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/leadscout/internal/core/domain"
)

// defaultRetryAfter is the backoff used when a 429 names no retry period.
const defaultRetryAfter = 60 * time.Second

// rateLimiter paces requests to one source. It enforces the source's
// requests-per-minute with a token bucket, caps the total number of requests
// at MaxRequests, and honours server backoff after a 429.
type rateLimiter struct {
	mu      sync.Mutex
	limit   domain.RateLimit
	limiter *rate.Limiter
	used    int
	retryAt time.Time
}

func newRateLimiter(limit domain.RateLimit) *rateLimiter {
	r := &rateLimiter{}
	r.reset(limit)
	return r
}

// reset rebuilds the token bucket for a new limit. The request count is kept.
func (r *rateLimiter) reset(limit domain.RateLimit) {
	r.limit = limit
	if limit.RequestsPerMinute <= 0 {
		r.limiter = rate.NewLimiter(rate.Inf, 1)
		return
	}
	perSecond := float64(limit.RequestsPerMinute) / 60
	burst := max(1, limit.RequestsPerMinute/60)
	r.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
}

// Wait blocks until a request can be made without exceeding the limit.
func (r *rateLimiter) Wait(ctx context.Context) error {
	r.mu.Lock()
	if r.limit.MaxRequests > 0 && r.used >= r.limit.MaxRequests {
		r.mu.Unlock()
		return fmt.Errorf("%w: %d requests", domain.ErrRequestLimit, r.limit.MaxRequests)
	}
	r.used++
	retryAt := r.retryAt
	limiter := r.limiter
	r.mu.Unlock()

	if time.Now().Before(retryAt) {
		timer := time.NewTimer(time.Until(retryAt))
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}

	return limiter.Wait(ctx)
}

// RecordRateLimitError delays further requests after a 429 response.
func (r *rateLimiter) RecordRateLimitError(retryAfter time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if retryAfter <= 0 {
		retryAfter = defaultRetryAfter
	}
	r.retryAt = time.Now().Add(retryAfter)
}

// Used returns the number of requests made so far.
func (r *rateLimiter) Used() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.used
}
