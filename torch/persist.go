package torch

import (
	"encoding/json"
	"fmt"
	"time"
)

// Persistence format. Durations are serialized as nanoseconds so the
// round-trip is exact. Resume instants are deliberately absent: a
// monotonic reading means nothing to a later process, so a Running timer
// comes back Paused with its elapsed time intact.

const saveVersion = 1

type savedTimer struct {
	ID      string        `json:"id"`
	Label   string        `json:"label"`
	Total   time.Duration `json:"total"`
	Elapsed time.Duration `json:"elapsed"`
	State   string        `json:"state"`
}

type savedRegistry struct {
	Version      int           `json:"version"`
	DefaultLabel string        `json:"default_label"`
	DefaultTotal time.Duration `json:"default_total"`
	Timers       []savedTimer  `json:"timers"`
}

// Serialize encodes the registry to a byte blob for the host to store.
// Timers appear in display order.
func (r *Registry) Serialize() ([]byte, error) {
	saved := savedRegistry{
		Version:      saveVersion,
		DefaultLabel: r.defaultLabel,
		DefaultTotal: r.defaultTotal,
		Timers:       make([]savedTimer, 0, len(r.timers)),
	}
	for _, t := range r.timers {
		saved.Timers = append(saved.Timers, savedTimer{
			ID:      t.id,
			Label:   t.label,
			Total:   t.total,
			Elapsed: t.elapsed,
			State:   t.state.String(),
		})
	}
	return json.Marshal(saved)
}

// Deserialize rebuilds a registry from a stored blob. Any timer persisted
// as Running is converted to Paused: the instant it was running against is
// gone, and silently burning it against a new clock would be wrong.
func Deserialize(data []byte, policy Policy) (*Registry, error) {
	var saved savedRegistry
	if err := json.Unmarshal(data, &saved); err != nil {
		return nil, fmt.Errorf("decode saved timers: %w", err)
	}
	if saved.Version != saveVersion {
		return nil, fmt.Errorf("unsupported save version %d", saved.Version)
	}

	r := NewRegistry(policy)
	if saved.DefaultLabel != "" {
		r.defaultLabel = saved.DefaultLabel
	}
	if saved.DefaultTotal > 0 {
		r.defaultTotal = saved.DefaultTotal
	}

	for _, st := range saved.Timers {
		if st.ID == "" {
			return nil, fmt.Errorf("saved timer with empty id")
		}
		if _, dup := r.byID[st.ID]; dup {
			return nil, fmt.Errorf("saved timer id %q duplicated", st.ID)
		}
		if st.Total <= 0 {
			return nil, fmt.Errorf("saved timer %q: %w", st.ID, ErrInvalidDuration)
		}

		state, err := parseState(st.State)
		if err != nil {
			return nil, fmt.Errorf("saved timer %q: %w", st.ID, err)
		}
		if state == StateRunning {
			state = StatePaused
		}

		elapsed := st.Elapsed
		if elapsed < 0 {
			elapsed = 0
		}
		if elapsed > st.Total {
			elapsed = st.Total
		}

		t := &Timer{
			id:      st.ID,
			label:   st.Label,
			total:   st.Total,
			base:    elapsed,
			elapsed: elapsed,
			state:   state,
		}
		r.timers = append(r.timers, t)
		r.byID[t.id] = t
	}
	return r, nil
}

func parseState(s string) (State, error) {
	switch s {
	case "stopped":
		return StateStopped, nil
	case "running":
		return StateRunning, nil
	case "paused":
		return StatePaused, nil
	case "expired":
		return StateExpired, nil
	}
	return StateStopped, fmt.Errorf("unknown state %q", s)
}
