package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"tripcraft/cmd/fx/controllers_fx"
	"tripcraft/cmd/fx/db_fx"
	"tripcraft/cmd/fx/itinerary_fx"
	"tripcraft/cmd/fx/logger_fx"
	"tripcraft/cmd/fx/memcache_fx"
	"tripcraft/cmd/fx/prompt_fx"
	"tripcraft/internal/api/controllers"
	"tripcraft/internal/config"
	mem "tripcraft/pkg/memcache"
	"tripcraft/pkg/middleware"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	app := fx.New(
		fx.Supply(cfg),
		logger_fx.Module,
		fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger.Named("fx")}
		}),
		db_fx.Module,
		prompt_fx.Module,
		itinerary_fx.Module,
		memcache_fx.Module,
		controllers_fx.Module,

		fx.Invoke(StartServer),
		fx.Provide(ProvideRouter),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, cfg *config.Config, engine *gin.Engine, logger *zap.Logger) {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return fmt.Errorf("listen %s: %w", srv.Addr, err)
			}
			logger.Info("starting HTTP server", zap.String("addr", ln.Addr().String()))
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Fatal("HTTP server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}

func ProvideRouter(
	cfg *config.Config,
	logger *zap.Logger,
	limiters mem.VisitorLimiterStore,
	itineraryController *controllers.ItineraryController,
	healthController *controllers.HealthController) *gin.Engine {

	r := gin.New()
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.RequestLogger(logger.Named("http")))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.CORSMiddleware(cfg.CORSAllowedOrigins))

	RegisterRoutes(r, limiters, itineraryController, healthController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	limiters mem.VisitorLimiterStore,
	itineraryController *controllers.ItineraryController,
	healthController *controllers.HealthController) {

	r.GET("/", healthController.Root)
	r.GET("/ping", healthController.Ping)
	r.GET("/health", healthController.Health)

	apiGroup := r.Group("/api")
	apiGroup.Use(middleware.RateLimitMiddleware(limiters))
	apiGroup.POST("/generate-itinerary", itineraryController.GenerateItineraryHandler)
	apiGroup.POST("/generate-suggestions", itineraryController.GenerateSuggestionsHandler)
}
