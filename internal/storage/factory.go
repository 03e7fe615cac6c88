package storage

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Suraj0791/stockcharts/internal/config"
)

// New creates a snapshot store from the service configuration.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (Client, error) {
	switch cfg.StorageMode {
	case config.StorageLocal:
		dir := cfg.LocalSnapshotDir
		if dir == "" {
			dir = "snapshots"
		}
		client, err := NewLocalClient(dir)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize local snapshot store: %w", err)
		}
		return client, nil

	case config.StorageGCS:
		client, err := NewGCSClient(ctx, cfg.GCSBucket, log)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize GCS snapshot store: %w", err)
		}
		return client, nil

	default:
		return nil, fmt.Errorf("unsupported storage mode: %s", cfg.StorageMode)
	}
}
