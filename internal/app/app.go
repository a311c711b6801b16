package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/fabricstore/internal/config"
	"github.com/polkiloo/fabricstore/internal/notify"
	"github.com/polkiloo/fabricstore/internal/server/http/handlers"
	"github.com/polkiloo/fabricstore/internal/worker"
)

const readHeaderTimeout = 10 * time.Second

// Module wires application services, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		NewStoreFacade,
		func(f *StoreFacade) handlers.StoreFacade { return f },
		newHTTPServer,
		newNotificationQueue,
	),
	fx.Invoke(registerLifecycle),
)

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:              p.Config.RunAddress,
		Handler:           p.Router,
		ReadHeaderTimeout: readHeaderTimeout,
	}
}

type queueParams struct {
	fx.In

	Dispatcher notify.Dispatcher
	Config     *config.Config
	Logger     *slog.Logger
}

func newNotificationQueue(p queueParams) *worker.NotificationQueue {
	return worker.NewNotificationQueue(
		p.Dispatcher,
		p.Config.NotificationWorkers,
		p.Config.NotificationQueueSize,
		p.Logger,
	)
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Queue      *worker.NotificationQueue
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			p.Logger.Info("starting fabricstore", slog.String("addr", p.Server.Addr))
			p.Queue.Start(ctx)
			go func() {
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = p.Shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			}
			defer cancel()

			// Handlers may still enqueue mail until the server has drained.
			serverErr := p.Server.Shutdown(shutdownCtx)
			if errors.Is(serverErr, http.ErrServerClosed) {
				serverErr = nil
			}
			if err := p.Queue.Stop(shutdownCtx); err != nil {
				p.Logger.Warn("notification queue did not drain", slog.String("error", err.Error()))
			}
			if serverErr != nil {
				return serverErr
			}
			p.Logger.Info("fabricstore stopped")
			return nil
		},
	})
}
