// Copyright © 2025 The Gomon Project.

package sampler

import (
	"context"
	"time"
)

type (
	// Clock tells time and sleeps for the sampler.
	Clock interface {
		Now() time.Time
		// Sleep pauses for d or until ctx is done, whichever comes first.
		Sleep(ctx context.Context, d time.Duration)
	}

	// wallClock is the system clock.
	wallClock struct{}
)

// Now returns the current time.
func (wallClock) Now() time.Time {
	return time.Now()
}

// Sleep waits on a timer or the context.
func (wallClock) Sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
