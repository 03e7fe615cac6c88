package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// LocalClient stores snapshots on the local filesystem.
type LocalClient struct {
	baseDir string
}

// NewLocalClient creates a local snapshot store rooted at baseDir.
func NewLocalClient(baseDir string) (*LocalClient, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory %s: %w", baseDir, err)
	}
	return &LocalClient{baseDir: baseDir}, nil
}

// Close is a no-op for local storage (implements the same interface as the
// GCS client).
func (l *LocalClient) Close() error {
	return nil
}

// Save writes one snapshot file under the day folder for the timestamp.
func (l *LocalClient) Save(ctx context.Context, data []byte, filename string, timestamp time.Time) (string, error) {
	relPath := filepath.Join(SnapshotFolderPath(timestamp), filename)
	fullPath := filepath.Join(l.baseDir, relPath)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory for %s: %w", relPath, err)
	}
	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write snapshot %s: %w", relPath, err)
	}
	return filepath.ToSlash(relPath), nil
}

// Load retrieves a snapshot by its relative path.
func (l *LocalClient) Load(ctx context.Context, path string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(l.baseDir, filepath.FromSlash(path)))
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot %s: %w", path, err)
	}
	return data, nil
}

// List returns snapshot paths sorted newest first. The timestamped layout
// makes lexical order chronological.
func (l *LocalClient) List(ctx context.Context, limit int) ([]string, error) {
	var paths []string
	err := filepath.Walk(l.baseDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // skip unreadable entries
		}
		if info.IsDir() || !isSnapshotFile(info.Name()) {
			return nil
		}
		rel, relErr := filepath.Rel(l.baseDir, path)
		if relErr != nil {
			return nil
		}
		paths = append(paths, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk snapshot directory: %w", err)
	}

	sort.Sort(sort.Reverse(sort.StringSlice(paths)))
	if limit > 0 && limit < len(paths) {
		paths = paths[:limit]
	}
	return paths, nil
}

// Latest returns the most recent snapshot path.
func (l *LocalClient) Latest(ctx context.Context) (string, error) {
	paths, err := l.List(ctx, 1)
	if err != nil {
		return "", err
	}
	if len(paths) == 0 {
		return "", fmt.Errorf("no snapshots found")
	}
	return paths[0], nil
}
