package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/fabricstore/internal/config"
	"github.com/polkiloo/fabricstore/internal/notify"
	testhelpers "github.com/polkiloo/fabricstore/internal/test"
	"github.com/polkiloo/fabricstore/internal/worker"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestNewHTTPServer(t *testing.T) {
	cfg := &config.Config{RunAddress: ":9999"}
	router := gin.New()
	server := newHTTPServer(serverParams{Config: cfg, Router: router})
	if server.Addr != ":9999" {
		t.Fatalf("expected address :9999, got %q", server.Addr)
	}
	if server.Handler != router {
		t.Fatalf("expected handler to be router")
	}
	if server.ReadHeaderTimeout != readHeaderTimeout {
		t.Fatalf("expected read header timeout %v, got %v", readHeaderTimeout, server.ReadHeaderTimeout)
	}
}

func TestNewNotificationQueueUsesConfig(t *testing.T) {
	dispatcher := &testhelpers.DispatcherStub{Done: make(chan struct{}, 1)}
	queue := newNotificationQueue(queueParams{
		Dispatcher: dispatcher,
		Config:     &config.Config{NotificationWorkers: 2, NotificationQueueSize: 4},
		Logger:     discardLogger(),
	})
	if queue == nil {
		t.Fatal("expected notification queue instance")
	}

	queue.Start(context.Background())
	if !queue.Enqueue(notify.Message{To: "asha@example.com", Subject: "hi"}) {
		t.Fatal("expected message to be accepted")
	}
	select {
	case <-dispatcher.Done:
	case <-time.After(time.Second):
		t.Fatal("expected message to be delivered")
	}
	if err := queue.Stop(context.Background()); err != nil {
		t.Fatalf("stop returned error: %v", err)
	}
}

func TestRegisterLifecycleStartStop(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	shutdowner := &testhelpers.ShutdownerStub{Called: make(chan struct{}, 1)}
	logger := discardLogger()
	server := &http.Server{Addr: "127.0.0.1:0", Handler: http.NewServeMux()}
	dispatcher := &testhelpers.DispatcherStub{Done: make(chan struct{}, 1)}
	queue := worker.NewNotificationQueue(dispatcher, 1, 4, logger)
	cfg := &config.Config{ShutdownTimeout: 100 * time.Millisecond}

	registerLifecycle(lifecycleParams{
		Lifecycle:  recorder,
		Shutdowner: shutdowner,
		Logger:     logger,
		Server:     server,
		Queue:      queue,
		Config:     cfg,
	})

	if len(recorder.Hooks) != 1 {
		t.Fatalf("expected one hook registered, got %d", len(recorder.Hooks))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := recorder.Start(ctx); err != nil {
		t.Fatalf("on start failed: %v", err)
	}
	queue.Enqueue(notify.Message{To: "asha@example.com", Subject: "Order shipped"})
	select {
	case <-dispatcher.Done:
	case <-time.After(time.Second):
		t.Fatal("expected queue to deliver after start")
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := recorder.Stop(context.Background()); err != nil {
			t.Errorf("on stop failed: %v", err)
		}
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("expected on stop to finish")
	}

	if queue.Enqueue(notify.Message{To: "late@example.com"}) {
		t.Fatal("expected queue to reject messages after stop")
	}
}

func TestRegisterLifecycleShutdownOnServerError(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	shutdowner := &testhelpers.ShutdownerStub{Called: make(chan struct{}, 1)}
	logger := discardLogger()

	server := &http.Server{Addr: "bad addr"}
	queue := worker.NewNotificationQueue(&testhelpers.DispatcherStub{}, 1, 1, logger)

	registerLifecycle(lifecycleParams{
		Lifecycle:  recorder,
		Shutdowner: shutdowner,
		Logger:     logger,
		Server:     server,
		Queue:      queue,
		Config:     &config.Config{ShutdownTimeout: time.Second},
	})

	hook := recorder.Hooks[0]
	if err := hook.OnStart(context.Background()); err != nil {
		t.Fatalf("on start returned error: %v", err)
	}

	select {
	case <-shutdowner.Called:
	case <-time.After(time.Second):
		t.Fatal("expected shutdown to be triggered on server error")
	}

	_ = hook.OnStop(context.Background())
}

func TestLifecycleRecorderAppend(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	recorder.Append(fx.Hook{})
	if len(recorder.Hooks) != 1 {
		t.Fatalf("expected hook to be appended")
	}
}

func TestShutdownerStub(t *testing.T) {
	shutdowner := &testhelpers.ShutdownerStub{Called: make(chan struct{}, 1)}
	if err := shutdowner.Shutdown(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	select {
	case <-shutdowner.Called:
	default:
		t.Fatal("expected shutdown notification")
	}
}
