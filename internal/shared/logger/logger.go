package logger

import (
	"io"
	"log/slog"
	"os"

	"favorites-server/internal/shared/config"
)

// Init installs the default slog logger and returns it.
func Init(cfg *config.Config) *slog.Logger {
	return InitWithWriter(cfg, os.Stdout)
}

func InitWithWriter(cfg *config.Config, w io.Writer) *slog.Logger {
	logConfig := cfg.Logging
	var handler slog.Handler

	level := parseLogLevel(logConfig.Level)

	if logConfig.JSONFormat {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: level,
		})
	} else {
		handler = slog.NewTextHandler(w, &slog.HandlerOptions{
			Level: level,
		})
	}

	l := slog.New(handler)
	slog.SetDefault(l)

	l.With("component", "logger").Debug("Logger initialized",
		"level", logConfig.Level,
		"json_format", logConfig.JSONFormat,
		"environment", cfg.Server.Environment,
	)

	return l
}

func parseLogLevel(levelStr string) slog.Level {
	switch levelStr {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelDebug
	}
}
