// Package logger builds the process-wide slog.Logger.
//
// Output always goes to stderr: stdout belongs to the MCP stdio transport and
// to command output.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"go.uber.org/fx"
)

var Module = fx.Module("logger",
	fx.Provide(NewLogger),
)

// Level names the minimum level to log; see ParseLevel.
type Level string

// NewLogger returns a stderr logger at level. GO_ENV=production selects JSON
// output; anything else is text.
func NewLogger(level Level) *slog.Logger {
	return New(os.Stderr, string(level), os.Getenv("GO_ENV") == "production")
}

// New returns a logger writing to w at the named level.
func New(w io.Writer, level string, json bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	if json {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// ParseLevel maps debug, info, warn/warning and error to slog levels.
// Unknown values fall back to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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

// Scope tags log lines with the component that emitted them.
func Scope(name string) slog.Attr {
	return slog.String("scope", name)
}

// Error attaches err under the "error" key.
func Error(err error) slog.Attr {
	return slog.Any("error", err)
}
