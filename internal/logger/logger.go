package logger

import (
	"log/slog"
	"os"
)

// New returns the process logger: JSON in prod, readable text elsewhere.
func New(env string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelDebug}
	if env == "prod" {
		opts.Level = slog.LevelInfo
		return slog.New(slog.NewJSONHandler(os.Stdout, opts)).With("service", "stayhub")
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
