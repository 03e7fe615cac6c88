package storage

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"cloud.google.com/go/storage"
	"github.com/rs/zerolog"
	"google.golang.org/api/iterator"
)

// GCSClient stores snapshots in a Google Cloud Storage bucket.
type GCSClient struct {
	client *storage.Client
	bucket string
	log    zerolog.Logger
}

// NewGCSClient creates a snapshot store over the given bucket.
func NewGCSClient(ctx context.Context, bucketName string, log zerolog.Logger) (*GCSClient, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}
	return &GCSClient{client: client, bucket: bucketName, log: log}, nil
}

// Close closes the GCS client.
func (g *GCSClient) Close() error {
	return g.client.Close()
}

// Save uploads one snapshot file under the day folder for the timestamp.
func (g *GCSClient) Save(ctx context.Context, data []byte, filename string, timestamp time.Time) (string, error) {
	objectPath := SnapshotFolderPath(timestamp) + "/" + filename
	g.log.Debug().Str("bucket", g.bucket).Str("object", objectPath).Msg("storing snapshot")

	writer := g.client.Bucket(g.bucket).Object(objectPath).NewWriter(ctx)
	writer.ContentType = ContentType(filename)
	writer.CacheControl = "public, max-age=3600"
	writer.Metadata = map[string]string{
		"generated-at": timestamp.Format(time.RFC3339),
		"filename":     filename,
	}

	if _, err := writer.Write(data); err != nil {
		writer.Close()
		return "", fmt.Errorf("failed to write snapshot to GCS: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize GCS upload: %w", err)
	}
	return objectPath, nil
}

// Load retrieves a snapshot object by path.
func (g *GCSClient) Load(ctx context.Context, path string) ([]byte, error) {
	reader, err := g.client.Bucket(g.bucket).Object(path).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot %s: %w", path, err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot %s: %w", path, err)
	}
	return data, nil
}

// List returns snapshot object paths sorted newest first.
func (g *GCSClient) List(ctx context.Context, limit int) ([]string, error) {
	it := g.client.Bucket(g.bucket).Objects(ctx, &storage.Query{})

	var paths []string
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list snapshots: %w", err)
		}
		if isSnapshotFile(attrs.Name) {
			paths = append(paths, attrs.Name)
		}
	}

	sort.Sort(sort.Reverse(sort.StringSlice(paths)))
	if limit > 0 && limit < len(paths) {
		paths = paths[:limit]
	}
	return paths, nil
}

// Latest returns the most recent snapshot path.
func (g *GCSClient) Latest(ctx context.Context) (string, error) {
	paths, err := g.List(ctx, 1)
	if err != nil {
		return "", err
	}
	if len(paths) == 0 {
		return "", fmt.Errorf("no snapshots found")
	}
	return paths[0], nil
}
