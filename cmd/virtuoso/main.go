package main

import (
	"log"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/SankarGaneshb/Virtuoso/pkg/config"
	"github.com/SankarGaneshb/Virtuoso/pkg/db"
	"github.com/SankarGaneshb/Virtuoso/pkg/gen"
	"github.com/SankarGaneshb/Virtuoso/pkg/logger"
	"github.com/SankarGaneshb/Virtuoso/pkg/server"
	"github.com/SankarGaneshb/Virtuoso/services/account"
	"github.com/SankarGaneshb/Virtuoso/services/aggregate"
	"github.com/SankarGaneshb/Virtuoso/services/badge"
	"github.com/SankarGaneshb/Virtuoso/services/bootstrap"
	"github.com/SankarGaneshb/Virtuoso/services/contributor"
	"github.com/SankarGaneshb/Virtuoso/services/source"
	syncsvc "github.com/SankarGaneshb/Virtuoso/services/sync"
)

func main() {
	opts := appOptions()

	if err := fx.ValidateApp(opts...); err != nil {
		log.Fatalf("fx validation failed: %v", err)
	}

	fx.New(opts...).Run()
}

func appOptions() []fx.Option {
	return []fx.Option{
		config.Module,
		logger.Module,
		db.Module,
		gen.Module,
		bootstrap.Module,
		source.Module,
		badge.Module,
		aggregate.Module,
		account.Module,
		contributor.Module,
		syncsvc.Module,
		server.Module,
		fxLogger,
	}
}

// fxLogger pulls *zap.Logger into the app's own log plumbing. This also
// forces logger construction up front: the services log through the zap
// global, which logger.New installs as a side effect.
var fxLogger = fx.WithLogger(func(cfg *config.Config, log *zap.Logger) fxevent.Logger {
	return fxevent.NopLogger
})
