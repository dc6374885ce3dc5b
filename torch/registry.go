package torch

import (
	"time"

	"github.com/google/uuid"

	"TorchTimer/clock"
)

// minTotal is the floor RemoveTime saturates at; a timer's configured burn
// time is never driven to zero or below.
const minTotal = time.Second

// Registry owns the ordered collection of torch timers. Insertion order is
// display order and survives persistence round-trips.
//
// The registry is single-mutator: no internal locking, see the package
// notes.
type Registry struct {
	timers []*Timer
	byID   map[string]*Timer

	policy Policy

	// defaults for the add-torch row, persisted with the timer list.
	defaultLabel string
	defaultTotal time.Duration

	// expired holds ids that transitioned into Expired since the last
	// DrainExpired call, one entry per transition. This is the one-shot
	// edge the audio collaborator consumes.
	expired []string
}

// NewRegistry returns an empty registry governed by the given policy.
func NewRegistry(policy Policy) *Registry {
	return &Registry{
		byID:         make(map[string]*Timer),
		policy:       policy,
		defaultLabel: policy.DefaultLabel,
		defaultTotal: policy.DefaultTotal,
	}
}

// Add creates a new stopped timer with zero elapsed time and returns its id.
func (r *Registry) Add(label string, total time.Duration) (string, error) {
	if total <= 0 {
		return "", ErrInvalidDuration
	}
	t := &Timer{
		id:    uuid.NewString(),
		label: label,
		total: total,
		state: StateStopped,
	}
	r.timers = append(r.timers, t)
	r.byID[t.id] = t
	return t.id, nil
}

// Start moves a stopped or paused timer to Running and records the resume
// instant. Starting an expired timer fails with ErrAlreadyExpired and
// changes nothing; starting a timer that is already running is a no-op.
func (r *Registry) Start(id string, now clock.Instant) error {
	t, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	switch t.currentState() {
	case StateExpired:
		return ErrAlreadyExpired
	case StateRunning:
		return nil
	}
	t.base = t.elapsed
	t.lastResume = now
	t.state = StateRunning
	return nil
}

// Pause folds the current running interval into elapsed and moves the timer
// to Paused. Pausing a timer that is not running is a reported no-op.
func (r *Registry) Pause(id string, now clock.Instant) error {
	t, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	if t.state != StateRunning {
		return nil
	}
	t.fold(now)
	t.base = t.elapsed
	if t.elapsed >= t.total {
		r.expire(t)
	} else {
		t.state = StatePaused
	}
	return nil
}

// Reset returns a timer to Stopped with zero elapsed time, from any state.
// A later expiry will raise the one-shot expired event again.
func (r *Registry) Reset(id string) error {
	t, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	t.base = 0
	t.elapsed = 0
	t.state = StateStopped
	return nil
}

// Remove deletes a timer. Subsequent operations on the id fail with
// ErrNotFound.
func (r *Registry) Remove(id string) error {
	t, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	for i, other := range r.timers {
		if other == t {
			r.timers = append(r.timers[:i], r.timers[i+1:]...)
			break
		}
	}
	return nil
}

// Rename changes a timer's display label. Allowed in any state.
func (r *Registry) Rename(id, label string) error {
	t, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	t.label = label
	return nil
}

// SetDuration replaces the configured burn time of a stopped timer.
// Running, paused and expired timers reject the edit with
// ErrInvalidOperation.
func (r *Registry) SetDuration(id string, total time.Duration) error {
	t, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	if total <= 0 {
		return ErrInvalidDuration
	}
	if t.currentState() != StateStopped {
		return ErrInvalidOperation
	}
	t.total = total
	return nil
}

// AddTime extends a timer's burn time by d, preserving elapsed. Extending
// an expired timer past its elapsed time revives it to Paused and re-arms
// the expiry event.
func (r *Registry) AddTime(id string, d time.Duration, now clock.Instant) error {
	t, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	if d <= 0 {
		return ErrInvalidDuration
	}
	wasExpired := t.currentState() == StateExpired
	if t.state == StateRunning {
		t.fold(now)
	}
	t.total += d
	if wasExpired && t.elapsed < t.total {
		t.base = t.elapsed
		t.state = StatePaused
	}
	return nil
}

// RemoveTime cuts a timer's burn time by d, saturating so the total stays
// positive. If the cut drops total to or below elapsed, the timer expires.
func (r *Registry) RemoveTime(id string, d time.Duration, now clock.Instant) error {
	t, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	if d <= 0 {
		return ErrInvalidDuration
	}
	if t.state == StateRunning {
		t.fold(now)
	}
	total := t.total - d
	if total < minTotal {
		total = minTotal
	}
	t.total = total
	if t.elapsed >= t.total && t.state != StateExpired {
		t.elapsed = t.total
		t.base = t.elapsed
		r.expire(t)
	}
	return nil
}

// Tick advances every running timer against now. Stopped, paused and
// expired timers are untouched. Repeated ticks at the same instant are
// idempotent: elapsed is recomputed from lastResume, never accumulated.
func (r *Registry) Tick(now clock.Instant) {
	for _, t := range r.timers {
		if t.state != StateRunning {
			continue
		}
		t.fold(now)
		if t.elapsed >= t.total {
			t.base = t.elapsed
			r.expire(t)
		}
	}
}

// StartAll starts every stopped or paused timer. Expired timers are
// skipped.
func (r *Registry) StartAll(now clock.Instant) {
	for _, t := range r.timers {
		switch t.currentState() {
		case StateStopped, StatePaused:
			t.base = t.elapsed
			t.lastResume = now
			t.state = StateRunning
		}
	}
}

// PauseAll pauses every running timer.
func (r *Registry) PauseAll(now clock.Instant) {
	for _, t := range r.timers {
		if t.state == StateRunning {
			r.Pause(t.id, now)
		}
	}
}

// expire latches the terminal state and queues the one-shot event.
func (r *Registry) expire(t *Timer) {
	t.state = StateExpired
	r.expired = append(r.expired, t.id)
}

// DrainExpired returns the ids that expired since the last drain, in
// expiry order, and clears the queue. Each expiry surfaces exactly once;
// after a reset a fresh expiry surfaces again.
func (r *Registry) DrainExpired() []string {
	if len(r.expired) == 0 {
		return nil
	}
	out := r.expired
	r.expired = nil
	return out
}

// Remaining returns the time left on a timer as of its last tick or pause
// fold. Never negative, never above the configured total.
func (r *Registry) Remaining(id string) (time.Duration, error) {
	t, ok := r.byID[id]
	if !ok {
		return 0, ErrNotFound
	}
	return t.remaining(), nil
}

// AlertLevel derives the alert state for one timer from its remaining
// fraction and the registry policy.
func (r *Registry) AlertLevel(id string) (AlertState, error) {
	t, ok := r.byID[id]
	if !ok {
		return AlertNormal, ErrNotFound
	}
	return r.alertFor(t), nil
}

func (r *Registry) alertFor(t *Timer) AlertState {
	rem := t.remaining()
	if rem == 0 {
		return AlertExpired
	}
	if float64(rem) <= r.policy.WarningFraction*float64(t.total) {
		return AlertWarning
	}
	return AlertNormal
}

// Snapshot returns the read model for one timer.
func (r *Registry) Snapshot(id string) (Snapshot, error) {
	t, ok := r.byID[id]
	if !ok {
		return Snapshot{}, ErrNotFound
	}
	return r.snapshotOf(t), nil
}

// Snapshots returns the read model for every timer in display order.
func (r *Registry) Snapshots() []Snapshot {
	out := make([]Snapshot, 0, len(r.timers))
	for _, t := range r.timers {
		out = append(out, r.snapshotOf(t))
	}
	return out
}

func (r *Registry) snapshotOf(t *Timer) Snapshot {
	return Snapshot{
		ID:        t.id,
		Label:     t.label,
		Total:     t.total,
		Elapsed:   t.elapsed,
		Remaining: t.remaining(),
		State:     t.currentState(),
		Alert:     r.alertFor(t),
	}
}

// Len returns the number of timers.
func (r *Registry) Len() int {
	return len(r.timers)
}

// Defaults returns the current label and duration used for new torches.
func (r *Registry) Defaults() (string, time.Duration) {
	return r.defaultLabel, r.defaultTotal
}

// SetDefaults updates the label and duration used for new torches.
// A non-positive duration fails with ErrInvalidDuration.
func (r *Registry) SetDefaults(label string, total time.Duration) error {
	if total <= 0 {
		return ErrInvalidDuration
	}
	r.defaultLabel = label
	r.defaultTotal = total
	return nil
}
