package bootstrap

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("bootstrap",
	fx.Provide(
		NewService,
	),
	fx.Invoke(runBootstrap),
)

// Run after DB initialized
func runBootstrap(lc fx.Lifecycle, b *Service) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := b.Migrate(); err != nil {
				zap.L().Error("[bootstrap] migration failed", zap.Error(err))
				return err
			}
			if err := b.Seed(ctx); err != nil {
				zap.L().Error("[bootstrap] seed failed", zap.Error(err))
				return err
			}
			return nil
		},
	})
}
