// Package logger configures the process-wide zerolog logger. The root logger
// is built once at startup from the service configuration; components derive
// child loggers tagged with their name.
package logger

import (
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	mu     sync.RWMutex
	global = zerolog.New(os.Stdout).With().Timestamp().Logger()
)

// Setup builds the root logger from the configured level and format ("json"
// or "text") and installs it as the global instance.
func Setup(level, format string) zerolog.Logger {
	log := zerolog.New(output(format)).
		Level(ParseLevel(level)).
		With().Timestamp().Logger()

	mu.Lock()
	global = log
	mu.Unlock()
	return log
}

func output(format string) zerolog.LevelWriter {
	if strings.ToLower(format) == "text" {
		return zerolog.MultiLevelWriter(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}
	return zerolog.MultiLevelWriter(os.Stdout)
}

// ParseLevel maps a level string to a zerolog level, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	default:
		return zerolog.InfoLevel
	}
}

// L returns the global logger.
func L() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return global
}

// With returns a child of the global logger tagged with a component name.
func With(component string) zerolog.Logger {
	return L().With().Str("component", component).Logger()
}
