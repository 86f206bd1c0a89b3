package contributor

import (
	"go.uber.org/fx"
)

var Module = fx.Module("contributor.module",
	fx.Provide(
		NewService,
		NewHandler,
	),
	fx.Invoke(
		RegisterRoutes,
	),
)
