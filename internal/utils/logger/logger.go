package logger

import (
	"os"
	"strings"

	"golang.org/x/exp/slog"

	"doctracker/internal/app/client/config"
)

// New создает логгер для окружения env. Логи пишутся в stderr,
// stdout остается за выводом команд.
func New(env string) *slog.Logger {
	return NewWithLevel(env, "")
}

// NewWithLevel создает логгер для окружения env. Непустой level
// переопределяет уровень окружения.
func NewWithLevel(env, level string) *slog.Logger {
	lvl, explicit := parseLevel(level)

	switch env {
	case config.EnvLocal:
		if !explicit {
			lvl = slog.LevelDebug
		}
		return slog.New(newPrettyHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
	case config.EnvDev:
		if !explicit {
			lvl = slog.LevelDebug
		}
	default:
		if !explicit {
			lvl = slog.LevelInfo
		}
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

func setupPrettySlog() *slog.Logger {
	return slog.New(newPrettyHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}
