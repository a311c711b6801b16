package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"go.uber.org/fx"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func newTestApp(hook fx.Hook) *fx.App {
	return fx.New(
		fx.NopLogger,
		fx.Invoke(func(lc fx.Lifecycle) { lc.Append(hook) }),
	)
}

func TestRunStopsOnContextCancel(t *testing.T) {
	stopped := false
	app := newTestApp(fx.Hook{OnStop: func(context.Context) error {
		stopped = true
		return nil
	}})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if code := run(ctx, app, time.Second, quietLogger()); code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	if !stopped {
		t.Fatal("expected stop hooks to run")
	}
}

func TestRunStopsOnShutdownRequest(t *testing.T) {
	var shutdowner fx.Shutdowner
	app := fx.New(fx.NopLogger, fx.Populate(&shutdowner))
	go func() {
		time.Sleep(10 * time.Millisecond)
		_ = shutdowner.Shutdown()
	}()

	if code := run(context.Background(), app, time.Second, quietLogger()); code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
}

func TestRunReportsStartFailure(t *testing.T) {
	app := newTestApp(fx.Hook{OnStart: func(context.Context) error {
		return errors.New("port in use")
	}})

	if code := run(context.Background(), app, time.Second, quietLogger()); code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
}

func TestRunBoundsStopByTimeout(t *testing.T) {
	app := newTestApp(fx.Hook{OnStop: func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	if code := run(ctx, app, 20*time.Millisecond, quietLogger()); code != 1 {
		t.Fatalf("expected exit code 1 when stop times out, got %d", code)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("expected stop to be bounded by timeout, took %v", elapsed)
	}
}
