//go:build js && wasm

package clock

import (
	"syscall/js"
	"time"
)

// performanceClock reads performance.now(), the browser's monotonic
// millisecond timer. Some runtimes have been observed to hand back a
// smaller reading after a tab is suspended and resumed, so the last value
// is remembered and never regressed past. Wasm is single-threaded, no lock
// needed.
type performanceClock struct {
	perf js.Value
	last time.Duration
}

// System returns the browser monotonic clock.
func System() Clock {
	return &performanceClock{perf: js.Global().Get("performance")}
}

func (c *performanceClock) Now() Instant {
	ms := c.perf.Call("now").Float()
	off := time.Duration(ms * float64(time.Millisecond))
	if off < c.last {
		off = c.last
	}
	c.last = off
	return Instant{off: off}
}
