package engine

import (
	"log/slog"
	"os"
)

// NewLogger builds a structured JSON logger at the given level,
// returned rather than stashed in a package global so multiple
// engines in one process don't fight over it.
func NewLogger(logLevel string) *slog.Logger {
	var level slog.Level
	switch normalizeLevel(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}
