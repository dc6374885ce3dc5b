//go:build !js

package store

import (
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingBackend struct {
	mu     sync.Mutex
	writes [][]byte
	fail   bool
}

func (b *recordingBackend) Load() ([]byte, error) {
	return nil, ErrNoSave
}

func (b *recordingBackend) Store(data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.fail {
		return errors.New("disk full")
	}
	b.writes = append(b.writes, data)
	return nil
}

func (b *recordingBackend) last() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.writes) == 0 {
		return nil
	}
	return b.writes[len(b.writes)-1]
}

func TestSaverWritesNewestBlob(t *testing.T) {
	backend := &recordingBackend{}
	s := NewSaver(backend)

	s.Save([]byte("one"))
	s.Save([]byte("two"))
	s.Save([]byte("three"))
	s.Close()

	// Intermediate blobs may be coalesced away, but the final stored
	// state must be the newest save.
	assert.Equal(t, []byte("three"), backend.last())

	backend.mu.Lock()
	defer backend.mu.Unlock()
	assert.LessOrEqual(t, len(backend.writes), 3)
}

func TestSaverFlushesOnClose(t *testing.T) {
	backend := &recordingBackend{}
	s := NewSaver(backend)

	s.Save([]byte("final"))
	s.Close()

	assert.Equal(t, []byte("final"), backend.last())
}

func TestSaverSurvivesStoreErrors(t *testing.T) {
	backend := &recordingBackend{fail: true}
	s := NewSaver(backend)

	s.Save([]byte("doomed"))

	// A failed write must not wedge the saver.
	backend.mu.Lock()
	backend.fail = false
	backend.mu.Unlock()

	s.Save([]byte("retry"))
	s.Close()

	assert.Equal(t, []byte("retry"), backend.last())
}

func TestFileBackendRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timers.json")
	b := NewFileBackend(path)

	_, err := b.Load()
	assert.ErrorIs(t, err, ErrNoSave)

	require.NoError(t, b.Store([]byte(`{"version":1}`)))
	data, err := b.Load()
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"version":1}`), data)

	// Overwrites replace, not append.
	require.NoError(t, b.Store([]byte("v2")))
	data, err = b.Load()
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), data)
}
