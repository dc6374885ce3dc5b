// Package clock supplies monotonic elapsed time to the torch registry.
//
// An Instant is an opaque reading of a monotonic clock. It carries no
// wall-clock meaning: the only valid use is subtracting one Instant from a
// later one to get a duration. Both the native and the browser
// implementations guarantee that Sub never goes negative, so callers never
// see time running backwards even if the underlying runtime misbehaves
// across a suspend/resume.
package clock

import "time"

// Instant is a single monotonic clock reading.
type Instant struct {
	off time.Duration
}

// Sub returns the elapsed duration since earlier, clamped to zero when the
// readings are out of order.
func (i Instant) Sub(earlier Instant) time.Duration {
	d := i.off - earlier.off
	if d < 0 {
		return 0
	}
	return d
}

// Add returns the instant shifted forward by d.
func (i Instant) Add(d time.Duration) Instant {
	return Instant{off: i.off + d}
}

// Clock produces monotonically non-decreasing instants.
type Clock interface {
	Now() Instant
}
