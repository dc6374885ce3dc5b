//go:build js && wasm

package store

import (
	"context"
	"fmt"

	"github.com/hack-pad/go-indexeddb/idb"
	"github.com/hack-pad/safejs"
)

const (
	dbName    = "TorchTimer"
	dbVersion = 1
	storeName = "saves"
	blobKey   = "registry"
)

// IndexedDBBackend keeps the registry blob under a single key in the
// browser's IndexedDB, the same storage the fyne web driver uses.
type IndexedDBBackend struct {
	db *idb.Database
}

// NewBackend returns the platform backend: in the browser, IndexedDB.
func NewBackend() (Backend, error) {
	ctx := context.Background()
	req, err := idb.Global().Open(ctx, dbName, dbVersion,
		func(db *idb.Database, oldVersion, newVersion uint) error {
			_, err := db.CreateObjectStore(storeName, idb.ObjectStoreOptions{})
			return err
		})
	if err != nil {
		return nil, fmt.Errorf("open indexeddb: %w", err)
	}
	db, err := req.Await(ctx)
	if err != nil {
		return nil, fmt.Errorf("open indexeddb: %w", err)
	}
	return &IndexedDBBackend{db: db}, nil
}

func (b *IndexedDBBackend) Load() ([]byte, error) {
	ctx := context.Background()
	txn, err := b.db.Transaction(idb.TransactionReadOnly, storeName)
	if err != nil {
		return nil, err
	}
	os, err := txn.ObjectStore(storeName)
	if err != nil {
		return nil, err
	}
	key, err := safejs.ValueOf(blobKey)
	if err != nil {
		return nil, err
	}
	req, err := os.Get(safejs.Unsafe(key))
	if err != nil {
		return nil, err
	}
	val, err := req.Await(ctx)
	if err != nil {
		return nil, err
	}
	if val.IsUndefined() {
		return nil, ErrNoSave
	}
	return []byte(val.String()), nil
}

func (b *IndexedDBBackend) Store(data []byte) error {
	ctx := context.Background()
	txn, err := b.db.Transaction(idb.TransactionReadWrite, storeName)
	if err != nil {
		return err
	}
	os, err := txn.ObjectStore(storeName)
	if err != nil {
		return err
	}
	key, err := safejs.ValueOf(blobKey)
	if err != nil {
		return err
	}
	val, err := safejs.ValueOf(string(data))
	if err != nil {
		return err
	}
	if _, err := os.PutKey(safejs.Unsafe(key), safejs.Unsafe(val)); err != nil {
		return err
	}
	return txn.Await(ctx)
}
