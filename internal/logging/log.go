package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

const (
	JSONFormat = "json"
	TextFormat = "text"
)

// ParseFormat normalises a log format name. Empty means text.
func ParseFormat(format string) (string, error) {
	switch strings.ToLower(format) {
	case JSONFormat:
		return JSONFormat, nil
	case TextFormat, "":
		return TextFormat, nil
	default:
		return "", fmt.Errorf("unknown log format %q", format)
	}
}

// CreateHandler creates a [slog.Handler] from level and format strings.
func CreateHandler(w io.Writer, logLevel, logFormat string) (slog.Handler, error) {
	format, err := ParseFormat(logFormat)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: GetLevel(logLevel)}
	if format == JSONFormat {
		return slog.NewJSONHandler(w, opts), nil
	}
	return slog.NewTextHandler(w, opts), nil
}

// Setup installs a default logger writing to w.
func Setup(w io.Writer, logLevel, logFormat string) error {
	h, err := CreateHandler(w, logLevel, logFormat)
	if err != nil {
		return fmt.Errorf("failed creating log handler: %w", err)
	}
	slog.SetDefault(slog.New(h))
	return nil
}

func GetLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "error", "fatal", "panic":
		return slog.LevelError
	case "warn", "warning":
		return slog.LevelWarn
	case "debug", "trace":
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}
