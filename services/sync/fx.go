package sync

import (
	"go.uber.org/fx"
)

var Module = fx.Module("sync.module",
	fx.Provide(
		New,
	),
	fx.Invoke(
		Register,
	),
)
