package logger

import (
	"log/slog"
	"os"
)

// New returns a production-friendly structured logger.
// Handlers and services receive loggers by injection; nothing should
// construct its own handler.
func New(appEnv string) *slog.Logger {
	level := slog.LevelInfo
	if appEnv == "local" || appEnv == "dev" {
		level = slog.LevelDebug
	}

	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(h)
}
