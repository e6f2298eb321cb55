// Package logging builds the process logger.
//
// Standard output carries the MCP protocol, so callers pass os.Stderr (or a
// buffer in tests) as the destination.
package logging

import (
	"io"
	"log/slog"
	"strings"

	"github.com/ironsheep/image-transform-mcp/internal/config"
)

// New creates a slog.Logger for cfg that writes to w. Unknown formats fall
// back to JSON and unknown levels to info.
func New(cfg config.LogConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     ParseLevel(cfg.Level),
		AddSource: cfg.AddSource,
	}

	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "text":
		handler = slog.NewTextHandler(w, opts)
	default:
		handler = slog.NewJSONHandler(w, opts)
	}
	return slog.New(handler).With("app", "image-transform-mcp")
}

// ParseLevel converts a level name to slog.Level. "warning" is accepted as
// an alias of "warn".
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
