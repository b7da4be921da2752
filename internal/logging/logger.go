// =============================================================================
// Snack Vending - Logging
// =============================================================================
//
// This module builds the structured logger shared by the commands. Logs go
// to stderr as slog text records; the "error" key is written as "err".
//
// LEVELS (log_level in config.yaml, or --verbose for debug):
//   debug | info | warn | error
//
// =============================================================================

package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// New creates the application logger.
// Output goes to w (normally stderr) so it never mixes with command output.
func New(level slog.Level, w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == "error" {
				a.Key = "err"
			}
			return a
		},
	}))
}

// NewNop returns a logger that discards everything.
func NewNop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParseLevel maps a config value ("debug", "info", "warn", "error") to a level.
func ParseLevel(value string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", value)
}
