// Package resilience holds pacing policies for outbound requests.
package resilience

import (
	"context"
	"math/rand"
	"time"
)

// Jitter is an injectable randomized pause policy used between outbound
// calls to reduce provider-side rate limiting. The zero value disables
// pausing entirely, which tests rely on.
type Jitter struct {
	Min time.Duration
	Max time.Duration
}

// JitterMillis builds a Jitter from millisecond bounds as they appear in
// configuration.
func JitterMillis(minMs, maxMs int) Jitter {
	return Jitter{
		Min: time.Duration(minMs) * time.Millisecond,
		Max: time.Duration(maxMs) * time.Millisecond,
	}
}

// Duration picks a random pause in [Min, Max].
func (j Jitter) Duration() time.Duration {
	if j.Max <= 0 {
		return 0
	}
	d := j.Min
	if j.Max > j.Min {
		d += time.Duration(rand.Int63n(int64(j.Max - j.Min + 1)))
	}
	return d
}

// Sleep blocks for a random pause in [Min, Max], returning early when the
// context is cancelled. A zero-valued policy returns immediately.
func (j Jitter) Sleep(ctx context.Context) error {
	d := j.Duration()
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
