package port

import (
	"context"
	"time"
)

// ThrottleWindow is the state of one key's sliding window as seen by Acquire.
type ThrottleWindow struct {
	// Count is the number of hits inside the window before this request.
	Count int
	// Oldest is the earliest hit still inside the window, zero when there is none.
	Oldest  time.Time
	Allowed bool
}

// RateLimitStore keeps the hit log behind the sliding-window throttle.
// Keys are "<tier>:<client ip>".
type RateLimitStore interface {
	// Acquire drops hits older than at-window, counts the rest and records a hit
	// at at when fewer than limit remain. The whole step is atomic per key.
	Acquire(ctx context.Context, key string, limit int, window time.Duration, at time.Time) (ThrottleWindow, error)
}
