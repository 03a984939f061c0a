// Package logging configures the structured debug log. The interactive UI
// owns the terminal, so records only ever go to a file.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"jrlgen/internal/eventbus"
)

// DefaultFile is the log file used by --debug when none is configured
const DefaultFile = "jrlgen.log"

// Config contains logging configuration.
type Config struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string
	// FilePath is the path to the log file. Empty disables logging.
	FilePath string
}

// Setup opens the log file and returns a JSON logger writing to it together
// with a cleanup function closing the file. With no file configured the
// logger discards everything.
func Setup(cfg Config) (*slog.Logger, func(), error) {
	if cfg.FilePath == "" {
		return Discard(), func() {}, nil
	}

	if dir := filepath.Dir(cfg.FilePath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	file, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	handler := slog.NewJSONHandler(file, &slog.HandlerOptions{
		Level: parseLevel(cfg.Level),
	})

	cleanup := func() {
		_ = file.Sync()
		_ = file.Close()
	}

	return slog.New(handler), cleanup, nil
}

// Discard returns a logger that drops every record
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

// parseLevel converts string level to slog.Level.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LogEvents subscribes logger to every event on bus at debug level and
// returns a function that removes the subscriptions
func LogEvents(bus eventbus.EventBus, logger *slog.Logger) func() {
	unsubs := make([]func(), 0, len(eventbus.AllEventTypes))
	for _, eventType := range eventbus.AllEventTypes {
		unsubs = append(unsubs, bus.Subscribe(eventType, func(e eventbus.DomainEvent) {
			logger.Debug("event", slog.String("type", string(e.Type())), slog.Any("payload", e))
		}))
	}

	return func() {
		for _, unsub := range unsubs {
			unsub()
		}
	}
}
