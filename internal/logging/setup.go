// Package logging configures the process-wide slog logger. The outcome
// journal is a separate artifact (see internal/journal); this logger carries
// operator-facing diagnostics only.
package logging

import (
	"log/slog"
	"os"
	"strings"

	"github.com/jmylchreest/slog-logfilter"
)

// Setup configures the logger with the given level and format and installs
// it as the slog default. Formats: "text" (default, human-friendly) or
// "json" (for machine consumption).
func Setup(logLevel string, format string) *slog.Logger {
	level := parseLevel(logLevel)

	opts := []logfilter.Option{
		logfilter.WithLevel(level),
		logfilter.WithOutput(os.Stderr),
	}

	if format == "json" {
		opts = append(opts, logfilter.WithFormat("json"))
	} else {
		opts = append(opts, logfilter.WithFormat("text"))
	}

	logger := logfilter.New(opts...)
	slog.SetDefault(logger)
	return logger
}

// SetLevel changes the active log level at runtime.
func SetLevel(level slog.Level) {
	logfilter.SetLevel(level)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
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
