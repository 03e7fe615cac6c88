package config

import (
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// GetVersion returns the service version. CI/CD sets APP_VERSION; local builds
// derive it from the VERSION file plus the git commit count.
func GetVersion() string {
	if v := os.Getenv("APP_VERSION"); v != "" {
		return v
	}
	base := baseVersion()
	if count := commitCount(); count > 0 {
		return base + "." + strconv.Itoa(count)
	}
	return base
}

// baseVersion reads the VERSION file, walking up from the working directory.
func baseVersion() string {
	candidates := []string{
		"VERSION",
		filepath.Join("..", "VERSION"),
		filepath.Join("..", "..", "VERSION"),
	}
	for _, path := range candidates {
		if content, err := os.ReadFile(path); err == nil {
			return strings.TrimSpace(string(content))
		}
	}
	return "0.1.0"
}

// commitCount returns the total git commit count, or 0 outside a repository.
func commitCount() int {
	output, err := exec.Command("git", "rev-list", "--all", "--count", "HEAD").Output()
	if err != nil {
		return 0
	}
	count, err := strconv.Atoi(strings.TrimSpace(string(output)))
	if err != nil {
		return 0
	}
	return count
}
