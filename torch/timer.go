// Package torch contains the domain logic for torch timers: the Timer
// state machine and the Registry that owns the ordered timer collection.
//
// Maintenance notes:
//   - The Registry carries no locks. All mutations are expected to arrive
//     from a single goroutine (the application command loop); a
//     multi-threaded host must serialize access externally.
//   - Elapsed time is recomputed from lastResume on every Tick rather than
//     accumulated tick-over-tick, so Tick is idempotent at a fixed instant
//     and drift cannot build up across redraw cycles.
package torch

import (
	"time"

	"TorchTimer/clock"
)

// State is the stored lifecycle state of a timer.
type State int

const (
	StateStopped State = iota
	StateRunning
	StatePaused
	StateExpired
)

func (s State) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateExpired:
		return "expired"
	}
	return "unknown"
}

// AlertState is the derived alert level the UI and audio layers consume.
type AlertState int

const (
	AlertNormal AlertState = iota
	AlertWarning
	AlertExpired
)

func (a AlertState) String() string {
	switch a {
	case AlertNormal:
		return "normal"
	case AlertWarning:
		return "warning"
	case AlertExpired:
		return "expired"
	}
	return "unknown"
}

// Timer is a single torch countdown. Timers are owned exclusively by a
// Registry; nothing outside this package mutates one.
type Timer struct {
	id    string
	label string
	total time.Duration

	// base is the elapsed time accumulated over completed running
	// intervals. While running, the live elapsed value is
	// base + (now - lastResume); Pause folds that sum back into base.
	base    time.Duration
	elapsed time.Duration

	state      State
	lastResume clock.Instant // meaningful only while state == StateRunning
}

// currentState derives the logical state: once elapsed has reached total
// the timer is Expired no matter what the stored tag says.
func (t *Timer) currentState() State {
	if t.elapsed >= t.total {
		return StateExpired
	}
	return t.state
}

func (t *Timer) remaining() time.Duration {
	if t.elapsed >= t.total {
		return 0
	}
	return t.total - t.elapsed
}

// fold recomputes elapsed against now without advancing lastResume.
// Only meaningful while running.
func (t *Timer) fold(now clock.Instant) {
	e := t.base + now.Sub(t.lastResume)
	if e > t.total {
		e = t.total
	}
	t.elapsed = e
}

// Snapshot is the read model for one timer, handed to the UI each redraw.
type Snapshot struct {
	ID        string
	Label     string
	Total     time.Duration
	Elapsed   time.Duration
	Remaining time.Duration
	State     State
	Alert     AlertState
}
