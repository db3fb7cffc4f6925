package state

import (
	"fmt"

	"github.com/webprobe-dev/webprobe/internal/core"
)

// NewStore creates a report store for the configured backend. The returned
// closer is a no-op for backends without resources to release.
func NewStore(backend, dir, dbPath string) (core.ReportStore, func() error, error) {
	switch backend {
	case "json":
		return NewFileStore(dir), func() error { return nil }, nil
	case "sqlite":
		store, err := NewSQLiteStore(dbPath)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown report store backend %q", backend)
	}
}
