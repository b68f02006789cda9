// Package logger настраивает log/slog под окружение.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

// Setup создает logger для окружения: local - text/debug, dev - json/debug,
// prod - json/info. Непустые level и format перекрывают значения окружения.
func Setup(env, level, format string) *slog.Logger {
	return New(os.Stdout, env, level, format)
}

// New как Setup, но пишет в w
func New(w io.Writer, env, level, format string) *slog.Logger {
	lvl := slog.LevelInfo
	json := true

	switch env {
	case envLocal:
		lvl = slog.LevelDebug
		json = false
	case envDev:
		lvl = slog.LevelDebug
	case envProd:
	}

	if level != "" {
		lvl = parseLevel(level)
	}
	switch strings.ToLower(format) {
	case "json":
		json = true
	case "text":
		json = false
	}

	opts := &slog.HandlerOptions{Level: lvl}
	if json {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// parseLevel converts a string log level to slog.Level.
func parseLevel(level string) slog.Level {
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
