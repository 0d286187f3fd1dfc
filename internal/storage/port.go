// Package storage provides string-keyed slots for small persisted values,
// the server-side stand-in for a browser's local storage.
package storage

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned by Load when the slot has never been written.
var ErrNotFound = errors.New("storage: slot not found")

// Port is the persistence interface injected into components that keep
// state across restarts.
type Port interface {
	// Load returns the raw value stored under key.
	Load(ctx context.Context, key string) ([]byte, error)

	// Save replaces the value stored under key.
	Save(ctx context.Context, key string, value []byte) error
}

// Driver names accepted by Open.
const (
	DriverFile     = "file"
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Options selects and configures a backend.
type Options struct {
	Driver string // one of the Driver* constants; empty means file
	Path   string // file path for the file driver, database path for sqlite
	DSN    string // connection string for postgres
}

// Open builds the backend named by opts.Driver.
func Open(ctx context.Context, opts Options) (Port, error) {
	switch opts.Driver {
	case "", DriverFile:
		fs := &FileStore{Path: opts.Path}
		if err := fs.Reload(); err != nil {
			return nil, fmt.Errorf("open file storage: %w", err)
		}
		return fs, nil
	case DriverMemory:
		return NewMemory(), nil
	case DriverSQLite:
		s, err := OpenSQLite(opts.Path)
		if err != nil {
			return nil, err
		}
		return s, nil
	case DriverPostgres:
		p, err := OpenPostgres(ctx, opts.DSN)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, fmt.Errorf("storage: unknown driver %q", opts.Driver)
	}
}
