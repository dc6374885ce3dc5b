package clock

import "time"

// Manual is a hand-driven clock for tests. It only moves when told to.
type Manual struct {
	now Instant
}

// NewManual returns a manual clock positioned at its epoch.
func NewManual() *Manual {
	return &Manual{}
}

func (m *Manual) Now() Instant {
	return m.now
}

// Advance moves the clock forward by d. Negative d is ignored.
func (m *Manual) Advance(d time.Duration) {
	if d < 0 {
		return
	}
	m.now = m.now.Add(d)
}
