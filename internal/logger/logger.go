package logger

import (
	"log/slog"
	"os"
	"strings"

	"github.com/polkiloo/fabricstore/internal/config"
)

// New creates a JSON slog.Logger at the configured level, falling back to info.
func New(cfg *config.Config) *slog.Logger {
	var level slog.Level
	if cfg == nil || level.UnmarshalText([]byte(strings.TrimSpace(cfg.LogLevel))) != nil {
		level = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String("service", "fabricstore"))
}
