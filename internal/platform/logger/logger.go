package logger

import (
	"log/slog"
	"os"
	"strings"

	"github.com/repaso-app/repaso-api/internal/config"
)

// Setup builds the process-wide JSON logger at the level named in cfg and
// installs it as the slog default, so code without a request-scoped
// logger can use the slog package functions directly.
func Setup(cfg config.ServerConfig) (*slog.Logger, error) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(cfg.LogLevel),
	}))
	slog.SetDefault(logger)
	return logger, nil
}

// parseLevel maps a configured level name to its slog level, case
// insensitively. Unknown names fall back to info with a warning rather
// than failing startup.
func parseLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		// The JSON logger is not installed yet, so warn through a
		// throwaway text handler.
		slog.New(slog.NewTextHandler(os.Stderr, nil)).Warn(
			"invalid log level configured, using default level",
			"configured_level", name,
			"default_level", "info")
		return slog.LevelInfo
	}
}
