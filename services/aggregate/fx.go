package aggregate

import (
	"go.uber.org/fx"
)

var Module = fx.Module("aggregate.module",
	fx.Provide(
		New,
	),
)
