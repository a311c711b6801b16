package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/fabricstore/internal/adapter/gateway"
	"github.com/polkiloo/fabricstore/internal/app"
	"github.com/polkiloo/fabricstore/internal/config"
	"github.com/polkiloo/fabricstore/internal/invoice"
	"github.com/polkiloo/fabricstore/internal/logger"
	"github.com/polkiloo/fabricstore/internal/notify"
	"github.com/polkiloo/fabricstore/internal/pkg/auth"
	"github.com/polkiloo/fabricstore/internal/server/http/router"
	"github.com/polkiloo/fabricstore/internal/storage/postgres"
	"github.com/polkiloo/fabricstore/internal/usecase"
)

// Module assembles the full application graph. Extra options are appended
// last so callers can replace any component.
func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		gateway.Module,
		notify.Module,
		invoice.Module,
		usecase.Module,
		fx.Provide(func(s *postgres.Storage) app.HealthChecker { return s }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
