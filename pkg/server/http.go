package server

import (
	"context"
	"net/http"

	"github.com/SankarGaneshb/Virtuoso/pkg/config"
	"github.com/SankarGaneshb/Virtuoso/pkg/health"
	"github.com/SankarGaneshb/Virtuoso/pkg/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	health.Module,
	fx.Provide(
		NewRouter,
		NewHttpServer,
	),
	fx.Invoke(
		registerHealthRoutes,
		Run,
	),
)

// NewRouter builds the shared gin engine. Route registration happens in the
// individual service modules via fx.Invoke.
func NewRouter(cfg *config.Config) *gin.Engine {
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Error())

	return r
}

type Params struct {
	fx.In
	Config *config.Config
	Router *gin.Engine
}

func NewHttpServer(p Params) *http.Server {
	cfg := p.Config
	return &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      p.Router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
}

func registerHealthRoutes(r *gin.Engine, h health.HealthService) {
	r.GET("/healthz", h.Liveness)
	r.GET("/readyz", h.Readiness)
}

func Run(lc fx.Lifecycle, srv *http.Server) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			zap.L().Info("Starting HTTP server", zap.String("addr", srv.Addr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					zap.L().Fatal("HTTP server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			zap.L().Info("Shutting down HTTP server gracefully...")
			return srv.Shutdown(ctx)
		},
	})
}
