package invoice

import (
	"go.uber.org/fx"

	"github.com/polkiloo/fabricstore/internal/config"
)

// Module provides the invoice renderer.
var Module = fx.Provide(func(cfg *config.Config) *Renderer {
	return NewRenderer(cfg.Company)
})
