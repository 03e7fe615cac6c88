package storage

import (
	"fmt"
	"strings"
	"time"
)

// SnapshotFolderPath generates the folder path for snapshots taken at the
// given instant. Format: YYYY/MM/DD, so lexical order is chronological.
func SnapshotFolderPath(timestamp time.Time) string {
	return fmt.Sprintf("%04d/%02d/%02d", timestamp.Year(), timestamp.Month(), timestamp.Day())
}

// SnapshotFileName builds a timestamped snapshot file name with the given
// extension ("svg", "png", "html", "json").
func SnapshotFileName(timestamp time.Time, ext string) string {
	return fmt.Sprintf("chart-%04d%02d%02d-%02d%02d%02d.%s",
		timestamp.Year(), timestamp.Month(), timestamp.Day(),
		timestamp.Hour(), timestamp.Minute(), timestamp.Second(), ext)
}

// ContentType determines the MIME content type based on file extension.
func ContentType(filename string) string {
	switch {
	case strings.HasSuffix(filename, ".svg"):
		return "image/svg+xml"
	case strings.HasSuffix(filename, ".png"):
		return "image/png"
	case strings.HasSuffix(filename, ".json"):
		return "application/json"
	case strings.HasSuffix(filename, ".html"):
		return "text/html"
	case strings.HasSuffix(filename, ".txt"):
		return "text/plain"
	default:
		return "application/octet-stream"
	}
}

// isSnapshotFile reports whether a path names a stored snapshot.
func isSnapshotFile(path string) bool {
	return strings.HasSuffix(path, ".svg") ||
		strings.HasSuffix(path, ".png") ||
		strings.HasSuffix(path, ".html") ||
		strings.HasSuffix(path, ".json")
}
