//go:build !js

package clock

import "time"

// systemClock reads Go's monotonic clock. time.Since on a time.Time that
// carries a monotonic reading is immune to wall-clock adjustments.
type systemClock struct {
	start time.Time
}

// System returns the platform monotonic clock.
func System() Clock {
	return &systemClock{start: time.Now()}
}

func (c *systemClock) Now() Instant {
	return Instant{off: time.Since(c.start)}
}
