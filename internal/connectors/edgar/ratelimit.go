package edgar

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// HeaderRetryAfter is the retry-after header (seconds).
	HeaderRetryAfter = "Retry-After"

	// defaultBackoff is the assumed cool-down when EDGAR throttles
	// without a Retry-After header. SEC blocks typically last minutes,
	// so a short optimistic retry is useless.
	defaultBackoff = 10 * time.Minute
)

// RateLimiter throttles EDGAR requests with a shared token bucket plus
// reactive handling of throttle responses. One instance is shared by the
// index source and all fetch workers so the aggregate rate stays bounded.
type RateLimiter struct {
	mu      sync.Mutex
	resetAt time.Time     // From throttle response
	bucket  *rate.Limiter // Proactive throttling
}

// NewRateLimiter creates a rate limiter at the given requests per second.
func NewRateLimiter(perSecond float64) *RateLimiter {
	return &RateLimiter{
		bucket: rate.NewLimiter(rate.Limit(perSecond), 1),
	}
}

// Wait blocks until it's safe to make a request.
// It honours both the proactive bucket and any observed throttle window.
func (r *RateLimiter) Wait(ctx context.Context) error {
	// 1. Check token bucket (proactive throttling)
	if err := r.bucket.Wait(ctx); err != nil {
		return err
	}

	// 2. Check observed throttle window (reactive)
	r.mu.Lock()
	resetAt := r.resetAt
	r.mu.Unlock()

	if time.Now().Before(resetAt) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Until(resetAt)):
		}
	}

	return nil
}

// CheckRateLimit checks if the response indicates throttling.
// Returns a RateLimitError if throttled, nil otherwise.
func (r *RateLimiter) CheckRateLimit(resp *http.Response) error {
	if resp == nil {
		return nil
	}

	// EDGAR signals throttling with 429 or an outright 403 block.
	if resp.StatusCode != http.StatusTooManyRequests && resp.StatusCode != http.StatusForbidden {
		return nil
	}

	resetAt := time.Now().Add(defaultBackoff)
	if retryAfter := resp.Header.Get(HeaderRetryAfter); retryAfter != "" {
		if seconds, err := strconv.Atoi(retryAfter); err == nil {
			resetAt = time.Now().Add(time.Duration(seconds) * time.Second)
		}
	}

	r.mu.Lock()
	r.resetAt = resetAt
	r.mu.Unlock()

	return &RateLimitError{ResetAt: resetAt}
}

// ResetTime returns the end of the observed throttle window, if any.
func (r *RateLimiter) ResetTime() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resetAt
}
