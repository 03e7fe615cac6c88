package storage

import (
	"testing"
	"time"
)

func TestSnapshotFolderPath(t *testing.T) {
	ts := time.Date(2025, 1, 9, 3, 4, 5, 0, time.UTC)
	if got := SnapshotFolderPath(ts); got != "2025/01/09" {
		t.Errorf("SnapshotFolderPath = %s, want 2025/01/09", got)
	}
}

func TestSnapshotFileName(t *testing.T) {
	ts := time.Date(2025, 1, 9, 3, 4, 5, 0, time.UTC)
	if got := SnapshotFileName(ts, "svg"); got != "chart-20250109-030405.svg" {
		t.Errorf("SnapshotFileName = %s", got)
	}
}

func TestContentType(t *testing.T) {
	tests := map[string]string{
		"chart.svg":  "image/svg+xml",
		"chart.png":  "image/png",
		"state.json": "application/json",
		"page.html":  "text/html",
		"notes.txt":  "text/plain",
		"data.bin":   "application/octet-stream",
	}
	for filename, want := range tests {
		if got := ContentType(filename); got != want {
			t.Errorf("ContentType(%s) = %s, want %s", filename, got, want)
		}
	}
}

func TestIsSnapshotFile(t *testing.T) {
	if !isSnapshotFile("2025/06/01/chart.svg") {
		t.Error("svg should be a snapshot file")
	}
	if isSnapshotFile("README.md") {
		t.Error("markdown is not a snapshot file")
	}
}
