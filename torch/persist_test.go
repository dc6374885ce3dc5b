package torch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TorchTimer/clock"
)

func TestSerializeRoundTrip(t *testing.T) {
	r, clk := newTestRegistry(t)

	a, err := r.Add("Torch", 10*time.Minute)
	require.NoError(t, err)
	b, err := r.Add("", 30*time.Minute) // empty label is legal
	require.NoError(t, err)
	c, err := r.Add("Lantern", time.Hour)
	require.NoError(t, err)

	// Put each timer in a distinct state.
	require.NoError(t, r.Start(a, clk.Now()))
	clk.Advance(4 * time.Minute)
	r.Tick(clk.Now())
	require.NoError(t, r.Pause(b, clk.Now())) // no-op, stays stopped
	require.NoError(t, r.Start(c, clk.Now()))
	clk.Advance(56 * time.Minute)
	r.Tick(clk.Now()) // a expires, c keeps running at 56m, b stays stopped

	require.NoError(t, r.SetDefaults("candle", 15*time.Minute))

	data, err := r.Serialize()
	require.NoError(t, err)

	loaded, err := Deserialize(data, testPolicy())
	require.NoError(t, err)

	snaps := loaded.Snapshots()
	require.Len(t, snaps, 3)

	// Order and every persisted field survive.
	orig := r.Snapshots()
	for i := range orig {
		assert.Equal(t, orig[i].ID, snaps[i].ID)
		assert.Equal(t, orig[i].Label, snaps[i].Label)
		assert.Equal(t, orig[i].Total, snaps[i].Total)
		assert.Equal(t, orig[i].Elapsed, snaps[i].Elapsed)
	}

	label, total := loaded.Defaults()
	assert.Equal(t, "candle", label)
	assert.Equal(t, 15*time.Minute, total)
}

func TestDeserializeConvertsRunningToPaused(t *testing.T) {
	r, clk := newTestRegistry(t)
	id, err := r.Add("Torch", 10*time.Minute)
	require.NoError(t, err)

	require.NoError(t, r.Start(id, clk.Now()))
	clk.Advance(3 * time.Minute)
	r.Tick(clk.Now())

	data, err := r.Serialize()
	require.NoError(t, err)

	loaded, err := Deserialize(data, testPolicy())
	require.NoError(t, err)

	snap, err := loaded.Snapshot(id)
	require.NoError(t, err)
	assert.Equal(t, StatePaused, snap.State, "a reloaded timer is never running")
	assert.Equal(t, 3*time.Minute, snap.Elapsed, "elapsed survives as-is")

	// The restored timer keeps counting correctly once restarted.
	clk2 := clock.NewManual()
	require.NoError(t, loaded.Start(id, clk2.Now()))
	clk2.Advance(7 * time.Minute)
	loaded.Tick(clk2.Now())
	snap, _ = loaded.Snapshot(id)
	assert.Equal(t, StateExpired, snap.State)
}

func TestDeserializePreservesExpired(t *testing.T) {
	r, clk := newTestRegistry(t)
	id, err := r.Add("Torch", time.Minute)
	require.NoError(t, err)
	require.NoError(t, r.Start(id, clk.Now()))
	clk.Advance(time.Minute)
	r.Tick(clk.Now())

	data, err := r.Serialize()
	require.NoError(t, err)
	loaded, err := Deserialize(data, testPolicy())
	require.NoError(t, err)

	snap, _ := loaded.Snapshot(id)
	assert.Equal(t, StateExpired, snap.State)
	assert.ErrorIs(t, loaded.Start(id, clock.NewManual().Now()), ErrAlreadyExpired)
	assert.Nil(t, loaded.DrainExpired(), "loading does not replay the expiry event")
}

func TestDeserializeRejectsBadBlobs(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"garbage", "not json"},
		{"bad version", `{"version":99,"timers":[]}`},
		{"empty id", `{"version":1,"timers":[{"id":"","label":"x","total":60000000000,"elapsed":0,"state":"stopped"}]}`},
		{"duplicate id", `{"version":1,"timers":[
			{"id":"a","label":"x","total":60000000000,"elapsed":0,"state":"stopped"},
			{"id":"a","label":"y","total":60000000000,"elapsed":0,"state":"stopped"}]}`},
		{"zero total", `{"version":1,"timers":[{"id":"a","label":"x","total":0,"elapsed":0,"state":"stopped"}]}`},
		{"unknown state", `{"version":1,"timers":[{"id":"a","label":"x","total":60000000000,"elapsed":0,"state":"sideways"}]}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Deserialize([]byte(tc.data), testPolicy())
			assert.Error(t, err)
		})
	}
}

func TestDeserializeClampsElapsed(t *testing.T) {
	blob := `{"version":1,"timers":[
		{"id":"a","label":"x","total":60000000000,"elapsed":120000000000,"state":"paused"},
		{"id":"b","label":"y","total":60000000000,"elapsed":-5,"state":"stopped"}]}`

	loaded, err := Deserialize([]byte(blob), testPolicy())
	require.NoError(t, err)

	snap, _ := loaded.Snapshot("a")
	assert.Equal(t, time.Minute, snap.Elapsed)
	assert.Equal(t, StateExpired, snap.State, "elapsed at total reads as expired")

	snap, _ = loaded.Snapshot("b")
	assert.Equal(t, time.Duration(0), snap.Elapsed)
}
