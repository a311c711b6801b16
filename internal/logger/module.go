package logger

import "go.uber.org/fx"

// Module wires the slog logger built from application config.
var Module = fx.Provide(New)
