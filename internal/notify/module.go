package notify

import "go.uber.org/fx"

// Module wires the mail dispatcher and message composer.
var Module = fx.Provide(New, NewComposer)
