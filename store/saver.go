package store

import (
	"log"
	"sync"
)

// Saver writes registry blobs to a Backend from a single background
// goroutine so saves never block the UI thread. Each Save supersedes any
// still-unwritten predecessor: the writer only ever persists the newest
// blob, so a stale save can never land on top of a later one.
type Saver struct {
	backend Backend

	mu      sync.Mutex
	seq     uint64
	pending []byte

	kick chan struct{}
	done chan struct{}
}

// NewSaver starts the background writer.
func NewSaver(backend Backend) *Saver {
	s := &Saver{
		backend: backend,
		kick:    make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	go s.loop()
	return s
}

// Save queues data as the newest blob and returns immediately. A queued
// blob that has not been written yet is replaced, not appended.
func (s *Saver) Save(data []byte) {
	s.mu.Lock()
	s.seq++
	s.pending = data
	s.mu.Unlock()

	select {
	case s.kick <- struct{}{}:
	default:
	}
}

func (s *Saver) loop() {
	defer close(s.done)
	var written uint64
	for range s.kick {
		seq, data := s.take()
		if seq == 0 || seq <= written {
			continue
		}
		if err := s.backend.Store(data); err != nil {
			// In-memory state stays authoritative; report and move on.
			log.Printf("Failed to persist timers: %v", err)
			continue
		}
		written = seq
	}

	// Drain the final pending blob on shutdown.
	if seq, data := s.take(); seq > written {
		if err := s.backend.Store(data); err != nil {
			log.Printf("Failed to persist timers on shutdown: %v", err)
		}
	}
}

func (s *Saver) take() (uint64, []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seq, s.pending
}

// Close stops the writer after flushing the newest pending blob.
func (s *Saver) Close() {
	close(s.kick)
	<-s.done
}
