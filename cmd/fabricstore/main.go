package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/polkiloo/fabricstore/internal/config"
	"github.com/polkiloo/fabricstore/internal/di"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		cfg    *config.Config
		logger *slog.Logger
	)
	app := fx.New(
		fx.Provide(func() context.Context { return ctx }),
		di.Module(),
		fx.WithLogger(func(l *slog.Logger) fxevent.Logger {
			fxLogger := &fxevent.SlogLogger{Logger: l}
			fxLogger.UseLogLevel(slog.LevelDebug)
			return fxLogger
		}),
		fx.Populate(&cfg, &logger),
	)
	if err := app.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to build fabricstore: %v\n", err)
		os.Exit(1)
	}

	os.Exit(run(ctx, app, cfg.ShutdownTimeout, logger))
}
