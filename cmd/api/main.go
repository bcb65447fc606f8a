package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/angelmondragon/kitchen-inventory-backend/api/routes"
	"github.com/angelmondragon/kitchen-inventory-backend/internal/auth"
	"github.com/angelmondragon/kitchen-inventory-backend/internal/inventory"
	product "github.com/angelmondragon/kitchen-inventory-backend/internal/products"
	"github.com/angelmondragon/kitchen-inventory-backend/internal/users"
	"github.com/angelmondragon/kitchen-inventory-backend/pkg/auth/session"
	"github.com/angelmondragon/kitchen-inventory-backend/pkg/config"
	"github.com/angelmondragon/kitchen-inventory-backend/pkg/db"
	"github.com/angelmondragon/kitchen-inventory-backend/pkg/env"
	"github.com/angelmondragon/kitchen-inventory-backend/pkg/logger"
	"github.com/angelmondragon/kitchen-inventory-backend/pkg/metrics"
	"github.com/angelmondragon/kitchen-inventory-backend/pkg/migrate"
	"github.com/angelmondragon/kitchen-inventory-backend/pkg/redis"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"
)

const shutdownTimeout = 15 * time.Second

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
		Format:      cfg.App.LogFormat,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logg); err != nil {
		logg.Error(context.Background(), "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logg *logger.Logger) (err error) {
	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, dbClient.Close())
	}()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		return err
	}

	redisClient, err := redis.New(ctx, cfg.Redis, logg)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, redisClient.Close())
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		return err
	}

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       users.NewRepository(dbClient.DB()),
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
	})
	if err != nil {
		return err
	}
	registerService, err := auth.NewRegisterService(auth.RegisterServiceParams{
		DB:             dbClient,
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	inventoryMetrics := metrics.NewInventoryMetrics(registry)

	itemRepo := inventory.NewRepository(dbClient.DB())
	inventoryService, err := inventory.NewService(itemRepo, cfg.Inventory, inventoryMetrics, logg)
	if err != nil {
		return err
	}
	productService, err := product.NewService(ctx, product.NewRepository(dbClient.DB()), itemRepo, dbClient, cfg.Inventory, inventoryMetrics, logg)
	if err != nil {
		return err
	}

	addr := ":" + env.Get("PORT", cfg.App.Port)
	logCtx := logg.WithFields(ctx, map[string]any{
		"env":         cfg.App.Env,
		"addr":        addr,
		"driver":      dbClient.Driver(),
		"sentinel_id": productService.SentinelID(),
	})
	logg.Info(logCtx, "starting api server")

	obs := routes.Observability{HTTP: metrics.NewHTTPMetrics(registry)}
	if cfg.FeatureFlags.Metrics {
		obs.Gatherer = registry
	}

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			sessionManager,
			obs,
			authService,
			registerService,
			productService,
			inventoryService,
		),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logg.Info(logCtx, "shutting down api server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
