package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"

	"github.com/Suraj0791/stockcharts/internal/view"
)

// Storage mode values for SnapshotMode.
const (
	StorageLocal = "local"
	StorageGCS   = "gcs"
)

// Config holds all configuration for the chart dashboard service
type Config struct {
	// Server configuration
	Port string `env:"PORT,default=8980"`

	// Chart defaults
	Entities         []string `env:"ENTITIES,default=ACME,Globex,Initech"`
	PointCount       int      `env:"POINT_COUNT,default=30"`
	ChartWidth       float64  `env:"CHART_WIDTH,default=960"`
	ChartHeight      float64  `env:"CHART_HEIGHT,default=420"`
	LoadDelayMS      int      `env:"LOAD_DELAY_MS,default=1000"`
	ResizeDebounceMS int      `env:"RESIZE_DEBOUNCE_MS,default=150"`

	// Snapshot storage (optional GCS for deployed environments)
	StorageMode      string `env:"STORAGE_MODE,default=local"`
	GCSBucket        string `env:"GCS_BUCKET"`
	LocalSnapshotDir string `env:"LOCAL_SNAPSHOT_DIR,default=./snapshots"`

	// Service configuration
	Environment string `env:"ENVIRONMENT,default=development"`
	LogLevel    string `env:"LOG_LEVEL,default=info"`
	LogFormat   string `env:"LOG_FORMAT,default=json"`
}

// Load loads configuration from environment variables
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if len(c.Entities) == 0 {
		return fmt.Errorf("ENTITIES must name at least one entity")
	}
	if c.PointCount < view.MinPointCount || c.PointCount > view.MaxPointCount {
		return fmt.Errorf("POINT_COUNT must be between %d and %d, got %d",
			view.MinPointCount, view.MaxPointCount, c.PointCount)
	}
	switch c.StorageMode {
	case StorageLocal:
	case StorageGCS:
		if c.GCSBucket == "" {
			return fmt.Errorf("GCS_BUCKET is required when STORAGE_MODE=gcs")
		}
	default:
		return fmt.Errorf("STORAGE_MODE must be %q or %q, got %q", StorageLocal, StorageGCS, c.StorageMode)
	}
	return nil
}

// LoadDelay returns the artificial initial-load delay.
func (c *Config) LoadDelay() time.Duration {
	return time.Duration(c.LoadDelayMS) * time.Millisecond
}

// ResizeDebounce returns the resize coalescing window.
func (c *Config) ResizeDebounce() time.Duration {
	return time.Duration(c.ResizeDebounceMS) * time.Millisecond
}
