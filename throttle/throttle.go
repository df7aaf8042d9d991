// Package throttle gates outbound requests to the remote service so that no
// two fetches start closer together than a minimum interval. One Throttle is
// shared by everything in a database context, giving a single process-wide
// budget regardless of how many entities or goroutines want to fetch.
package throttle

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// DefaultInterval is the default minimum time between the starts of two
// outbound fetches.
const DefaultInterval = time.Second

// Throttle enforces a minimum interval between grants.
type Throttle struct {
	limiter  *rate.Limiter
	interval time.Duration
}

// New creates a Throttle with the given minimum interval between grants.
// A non-positive interval disables throttling.
func New(interval time.Duration) *Throttle {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &Throttle{
		// Burst of one: each grant consumes the whole budget, so grant
		// starts are spaced at least interval apart across all callers.
		limiter:  rate.NewLimiter(limit, 1),
		interval: interval,
	}
}

// Acquire blocks until at least the configured interval has passed since the
// previous grant, or until ctx is done. Concurrent callers are each granted
// their own non-overlapping window; ordering between them is unspecified.
func (t *Throttle) Acquire(ctx context.Context) error {
	return t.limiter.Wait(ctx)
}

// Interval returns the configured minimum interval.
func (t *Throttle) Interval() time.Duration {
	return t.interval
}
