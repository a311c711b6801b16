package usecase

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/fx"

	"github.com/polkiloo/fabricstore/internal/config"
	"github.com/polkiloo/fabricstore/internal/invoice"
	"github.com/polkiloo/fabricstore/internal/worker"
)

// Clock returns the current time.
type Clock func() time.Time

// IDGenerator returns a new unique identifier.
type IDGenerator func() string

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	NewAuthUseCase,
	NewSettingsUseCase,
	NewOrderUseCase,
	NewDashboardUseCase,
	newClock,
	newIDGenerator,
	newTransitionPolicy,
	func(s *SettingsUseCase) SettingsProvider { return s },
	func(r *invoice.Renderer) InvoiceRenderer { return r },
	func(q *worker.NotificationQueue) Notifier { return q },
)

func newClock() Clock {
	return func() time.Time { return time.Now().UTC() }
}

func newIDGenerator() IDGenerator {
	return uuid.NewString
}

func newTransitionPolicy(cfg *config.Config) TransitionPolicy {
	return NewTransitionPolicy(cfg.StrictTransitions)
}
