// Package storage persists rendered chart snapshots, either on the local
// filesystem or in a GCS bucket for deployed environments.
package storage

import (
	"context"
	"time"
)

// Client is the snapshot store. Paths returned by Save and List are relative
// to the store root and stable across backends.
type Client interface {
	// Close releases the underlying client.
	Close() error

	// Save stores one snapshot file under the timestamped folder for the
	// given instant and returns its path.
	Save(ctx context.Context, data []byte, filename string, timestamp time.Time) (string, error)

	// Load retrieves a stored snapshot by path.
	Load(ctx context.Context, path string) ([]byte, error)

	// List returns stored snapshot paths, newest first, up to limit
	// (0 means no limit).
	List(ctx context.Context, limit int) ([]string, error)

	// Latest returns the most recent snapshot path.
	Latest(ctx context.Context) (string, error)
}
