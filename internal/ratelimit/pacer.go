// Package ratelimit spaces out calls to an external API so that no more
// than a fixed number happen per second.
package ratelimit

import (
	"context"
	"time"

	"github.com/handiism/conception-songs/internal/clock"
)

// Pacer enforces a minimum interval between successive calls.
//
// The first call to Wait returns immediately. Every later call blocks until
// the interval has elapsed since the previous call returned. The policy is
// expressed as a calls-per-second ceiling; a ceiling <= 0 disables pacing.
//
// Pacer is not safe for concurrent use; the fetch loop it guards is
// strictly sequential.
//
// Example:
//
//	pacer := ratelimit.NewPacer(clock.Real(), 2) // at most 2 calls/second
//	for page := range pages {
//	    if err := pacer.Wait(ctx); err != nil {
//	        return err
//	    }
//	    fetch(page)
//	}
type Pacer struct {
	clock    clock.Clock
	interval time.Duration
	last     time.Time
	started  bool
}

// NewPacer creates a Pacer allowing at most callsPerSecond calls per second.
func NewPacer(clk clock.Clock, callsPerSecond float64) *Pacer {
	return &Pacer{
		clock:    clk,
		interval: Interval(callsPerSecond),
	}
}

// Interval converts a calls-per-second ceiling into the minimum gap between
// calls. Zero or negative ceilings yield no gap.
func Interval(callsPerSecond float64) time.Duration {
	if callsPerSecond <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / callsPerSecond)
}

// Interval returns the minimum gap this Pacer keeps between calls.
func (p *Pacer) Interval() time.Duration {
	return p.interval
}

// Wait blocks until the next call is allowed or ctx is done.
func (p *Pacer) Wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if p.started && p.interval > 0 {
		remaining := p.interval - p.clock.Now().Sub(p.last)
		if remaining > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-p.clock.After(remaining):
			}
		}
	}

	p.started = true
	p.last = p.clock.Now()
	return nil
}
