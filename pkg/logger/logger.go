package logger

import (
	"log/slog"
	"os"
)

var base *slog.Logger

// Init configures the process logger. Production logs JSON at info level,
// everything else logs text at debug level.
func Init(env string) {
	opts := &slog.HandlerOptions{Level: slog.LevelDebug}

	var handler slog.Handler
	if env == "production" {
		opts.Level = slog.LevelInfo
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	base = slog.New(handler)
	slog.SetDefault(base)
}

// LoggerWrapper returns the process logger, initializing a development
// logger when Init has not run yet.
func LoggerWrapper() *slog.Logger {
	if base == nil {
		Init("development")
	}
	return base
}
