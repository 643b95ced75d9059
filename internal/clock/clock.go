// Package clock abstracts the two time operations the lookup pipeline
// depends on: reading the current date (to bound birth dates) and waiting
// between API calls (to honour the rate limit).
//
// Production code injects Real(); tests inject Fake() so that "today" is
// fixed and rate-limit waits complete instantly while still being recorded.
package clock

import "time"

// Clock abstracts time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// After returns a channel that receives the current time after
	// duration d elapses. If d <= 0, the channel receives immediately.
	After(d time.Duration) <-chan time.Time
}

// Real returns a Clock backed by the standard time package.
func Real() Clock { return realClock{} }

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) After(d time.Duration) <-chan time.Time { return time.After(d) }
