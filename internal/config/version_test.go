package config

import (
	"os"
	"strings"
	"testing"
)

func TestGetVersionFromEnv(t *testing.T) {
	original := os.Getenv("APP_VERSION")
	defer func() {
		if original != "" {
			os.Setenv("APP_VERSION", original)
		} else {
			os.Unsetenv("APP_VERSION")
		}
	}()

	os.Setenv("APP_VERSION", "2.0.0-beta.1")
	if got := GetVersion(); got != "2.0.0-beta.1" {
		t.Errorf("Expected version from environment, got '%s'", got)
	}
}

func TestGetVersionFallback(t *testing.T) {
	os.Unsetenv("APP_VERSION")

	version := GetVersion()
	if version == "" {
		t.Error("Version should not be empty")
	}
	if !strings.Contains(version, ".") {
		t.Errorf("Expected version to contain '.', got '%s'", version)
	}
}

func TestBaseVersionFallback(t *testing.T) {
	tempDir := t.TempDir()
	originalDir, _ := os.Getwd()
	defer os.Chdir(originalDir)
	os.Chdir(tempDir)

	if got := baseVersion(); got != "0.1.0" {
		t.Errorf("Expected fallback version '0.1.0', got '%s'", got)
	}
}

func TestCommitCountNonNegative(t *testing.T) {
	if count := commitCount(); count < 0 {
		t.Errorf("Expected non-negative commit count, got %d", count)
	}
}
