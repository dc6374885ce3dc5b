// Package store is the persistence host for the torch registry. The core
// hands it opaque byte blobs; this package decides where they live: a file
// under the user config dir natively, IndexedDB in the browser.
package store

import "errors"

// ErrNoSave reports that no saved registry exists yet.
var ErrNoSave = errors.New("store: no saved state")

// Backend stores and retrieves the single registry blob.
type Backend interface {
	// Load returns the last stored blob, or ErrNoSave when nothing has
	// been stored yet.
	Load() ([]byte, error)
	// Store replaces the stored blob.
	Store(data []byte) error
}
