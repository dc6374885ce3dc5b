//go:build !js

package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileBackend keeps the registry blob in a single file under the user
// config directory. Writes go through a temp file and rename so a crash
// mid-write never leaves a torn save behind.
type FileBackend struct {
	path string
}

// NewBackend returns the platform backend: on native builds, a file named
// timers.json under <user config dir>/TorchTimer.
func NewBackend() (Backend, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("locate config dir: %w", err)
	}
	dir := filepath.Join(base, "TorchTimer")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create config dir: %w", err)
	}
	return NewFileBackend(filepath.Join(dir, "timers.json")), nil
}

// NewFileBackend returns a backend storing the blob at path.
func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: path}
}

func (b *FileBackend) Load() ([]byte, error) {
	data, err := os.ReadFile(b.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNoSave
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (b *FileBackend) Store(data []byte) error {
	tmp := b.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, b.path)
}
