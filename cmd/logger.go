package cmd

import (
	"io"
	"log/slog"
	"strings"
)

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// newLogger writes to w, as JSON when jsonOutput is set. verbose forces the
// debug level.
func newLogger(w io.Writer, level string, verbose, jsonOutput bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLogLevel(level)}
	if verbose {
		opts.Level = slog.LevelDebug
	}

	if jsonOutput {
		return slog.New(slog.NewJSONHandler(w, opts))
	}

	return slog.New(slog.NewTextHandler(w, opts))
}
