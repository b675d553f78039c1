// Package storage is the durable key-value boundary listkeep persists through.
//
// A KV holds opaque string values under string keys, the same shape as browser
// local storage. Adapter layers the single "items" slot on top of it.
package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// KV is a durable string key-value store.
type KV interface {
	// Get returns ok=false when the key is absent.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	// Path is the file backing the store, or "" when there is none.
	Path() string
	Close() error
}

const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendMemory = "memory"

	sqliteFileName = "listkeep.sqlite"
	jsonFileName   = "storage.json"
)

// Backends lists the accepted backend names.
func Backends() []string {
	return []string{BackendSQLite, BackendFile, BackendMemory}
}

// Open opens the named backend rooted at dir.
func Open(ctx context.Context, backend, dir string) (KV, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendSQLite:
		return OpenSQLite(ctx, filepath.Join(dir, sqliteFileName))
	case BackendFile:
		return OpenFile(filepath.Join(dir, jsonFileName))
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend: %s (want one of %s)", backend, strings.Join(Backends(), ", "))
	}
}
