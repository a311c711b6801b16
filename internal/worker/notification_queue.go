package worker

import (
	"context"
	"log/slog"
	"sync"

	"github.com/polkiloo/fabricstore/internal/notify"
)

// NotificationQueue delivers messages on a pool of background workers so
// request handlers never wait on the mail relay.
type NotificationQueue struct {
	dispatcher notify.Dispatcher
	workers    int
	logger     *slog.Logger

	jobs    chan notify.Message
	wg      sync.WaitGroup
	cancel  context.CancelFunc
	mu      sync.RWMutex
	started bool
	closed  bool
}

// NewNotificationQueue constructs notification worker pool.
func NewNotificationQueue(dispatcher notify.Dispatcher, workers, size int, logger *slog.Logger) *NotificationQueue {
	if workers <= 0 {
		workers = 1
	}
	if size <= 0 {
		size = 1
	}
	return &NotificationQueue{
		dispatcher: dispatcher,
		workers:    workers,
		logger:     logger,
		jobs:       make(chan notify.Message, size),
	}
}

// Start launches background delivery. Calling it twice is a no-op.
func (q *NotificationQueue) Start(ctx context.Context) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.started || q.closed {
		return
	}
	q.started = true

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	q.cancel = cancel

	for i := 0; i < q.workers; i++ {
		q.wg.Add(1)
		go q.worker(runCtx)
	}
}

// Enqueue schedules msg for delivery without blocking. It reports false when
// the queue is full or stopped and the message was dropped.
func (q *NotificationQueue) Enqueue(msg notify.Message) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		q.logger.Warn("notification dropped, queue stopped", slog.String("to", msg.To), slog.String("subject", msg.Subject))
		return false
	}
	select {
	case q.jobs <- msg:
		return true
	default:
		q.logger.Warn("notification dropped, queue full", slog.String("to", msg.To), slog.String("subject", msg.Subject))
		return false
	}
}

// Stop closes the queue and waits for workers to drain pending messages.
// Deliveries still running when ctx expires are cancelled.
func (q *NotificationQueue) Stop(ctx context.Context) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return nil
	}
	q.closed = true
	close(q.jobs)
	started := q.started
	cancel := q.cancel
	q.mu.Unlock()

	if !started {
		if n := len(q.jobs); n > 0 {
			q.logger.Warn("notification queue stopped before start", slog.Int("dropped", n))
		}
		return nil
	}

	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		cancel()
		return nil
	case <-ctx.Done():
		cancel()
		<-done
		return ctx.Err()
	}
}

func (q *NotificationQueue) worker(ctx context.Context) {
	defer q.wg.Done()
	for msg := range q.jobs {
		if ctx.Err() != nil {
			q.logger.Warn("notification dropped on shutdown", slog.String("to", msg.To), slog.String("subject", msg.Subject))
			continue
		}
		q.dispatcher.Send(ctx, msg)
	}
}
