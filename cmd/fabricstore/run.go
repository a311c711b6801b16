package main

import (
	"context"
	"log/slog"
	"time"

	"go.uber.org/fx"
)

// run starts app and blocks until ctx is cancelled or app asks to shut down.
// Stopping is bounded by stopTimeout. The result is the process exit code.
func run(ctx context.Context, app *fx.App, stopTimeout time.Duration, logger *slog.Logger) int {
	if err := app.Start(ctx); err != nil {
		logger.Error("failed to start fabricstore", slog.String("error", err.Error()))
		return 1
	}

	var reason string
	select {
	case <-ctx.Done():
		reason = "signal"
	case sig := <-app.Done():
		reason = sig.String()
	}
	logger.Info("shutting down fabricstore", slog.String("reason", reason), slog.Duration("timeout", stopTimeout))

	stopCtx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()
	if err := app.Stop(stopCtx); err != nil {
		logger.Error("failed to stop fabricstore", slog.String("error", err.Error()))
		return 1
	}
	return 0
}
