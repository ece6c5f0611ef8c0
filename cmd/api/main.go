package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/mitraternak/kandang-backend/api/controllers"
	"github.com/mitraternak/kandang-backend/api/routes"
	inventorysvc "github.com/mitraternak/kandang-backend/internal/inventory"
	kandangsvc "github.com/mitraternak/kandang-backend/internal/kandang"
	"github.com/mitraternak/kandang-backend/internal/users"
	"github.com/mitraternak/kandang-backend/pkg/config"
	"github.com/mitraternak/kandang-backend/pkg/db"
	"github.com/mitraternak/kandang-backend/pkg/logger"
	"github.com/mitraternak/kandang-backend/pkg/metrics"
	"github.com/mitraternak/kandang-backend/pkg/migrate"
	"github.com/mitraternak/kandang-backend/pkg/redis"
	"github.com/mitraternak/kandang-backend/pkg/storage/spaces"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	spacesClient, err := spaces.NewClient(context.Background(), cfg.Spaces, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap object storage", err)
		os.Exit(1)
	}

	gormDB := dbClient.DB()
	inventoryService, err := inventorysvc.NewService(
		inventorysvc.NewRepository(gormDB),
		inventorysvc.NewImageRepository(gormDB),
		inventorysvc.NewLogRepository(gormDB),
		users.NewRepository(gormDB),
		spacesClient,
		dbClient,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create inventory service", err)
		os.Exit(1)
	}

	kandangService, err := kandangsvc.NewService(kandangsvc.NewRepository(gormDB))
	if err != nil {
		logg.Error(context.Background(), "failed to create kandang service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Dependencies{
			Config:           cfg,
			Logger:           logg,
			InventoryService: inventoryService,
			KandangService:   kandangService,
			IdempotencyStore: redisClient,
			HTTPMetrics:      httpMetrics,
			MetricsRegistry:  registry,
			ReadyChecks: map[string]controllers.Pinger{
				"database": dbClient,
				"redis":    redisClient,
				"spaces":   spacesClient,
			},
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
