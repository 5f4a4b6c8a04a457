package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/davidbz/chargeflow/internal/config"
	"github.com/davidbz/chargeflow/internal/domain"
	"github.com/davidbz/chargeflow/internal/httpserver"
	"github.com/davidbz/chargeflow/internal/httpserver/middleware"
	"github.com/davidbz/chargeflow/internal/observability"
	"github.com/davidbz/chargeflow/internal/store/memory"
	"github.com/davidbz/chargeflow/internal/store/redis"
)

func main() {
	container := buildContainer()

	err := container.Invoke(func(server *httpserver.Server, cfg *config.ServerConfig, logger *zap.Logger) error {
		defer func() { _ = logger.Sync() }()
		return run(server, time.Duration(cfg.ShutdownTimeout)*time.Second)
	})
	if err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}
}

// run serves until SIGINT or SIGTERM, then drains in-flight requests.
func run(server *httpserver.Server, shutdownTimeout time.Duration) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

func buildContainer() *dig.Container {
	container := dig.New()

	// Configuration
	if err := container.Provide(config.Load); err != nil {
		log.Fatalf("Failed to provide config: %v", err)
	}
	if err := container.Provide(config.ParseDependenciesConfig); err != nil {
		log.Fatalf("Failed to provide config dependencies: %v", err)
	}

	// Observability
	if err := container.Provide(observability.InitLogger); err != nil {
		log.Fatalf("Failed to provide logger: %v", err)
	}
	if err := container.Provide(observability.NewMetrics); err != nil {
		log.Fatalf("Failed to provide metrics: %v", err)
	}
	if err := container.Provide(func(logger *zap.Logger) domain.EventPublisher {
		return observability.NewEventBus(logger)
	}); err != nil {
		log.Fatalf("Failed to provide event bus: %v", err)
	}
	if err := container.Provide(func(m *observability.Metrics) domain.MetricsRecorder {
		return m
	}); err != nil {
		log.Fatalf("Failed to provide metrics recorder: %v", err)
	}

	// Charge store
	if err := container.Provide(newChargeStore); err != nil {
		log.Fatalf("Failed to provide charge store: %v", err)
	}

	// Domain Services
	if err := container.Provide(domain.NewBillingService); err != nil {
		log.Fatalf("Failed to provide billing service: %v", err)
	}

	// HTTP Layer
	if err := container.Provide(httpserver.NewHandler); err != nil {
		log.Fatalf("Failed to provide HTTP handler: %v", err)
	}
	if err := container.Provide(middleware.BuildMiddlewareChain); err != nil {
		log.Fatalf("Failed to provide middleware chain: %v", err)
	}
	if err := container.Provide(httpserver.NewServer); err != nil {
		log.Fatalf("Failed to provide HTTP server: %v", err)
	}

	return container
}

// newChargeStore selects the store backend from STORE_DRIVER. The logger
// parameter orders it after InitLogger.
func newChargeStore(cfg *config.StoreConfig, _ *zap.Logger) (domain.ChargeStore, error) {
	ctx := context.Background()
	logger := observability.FromContext(ctx)

	switch cfg.Driver {
	case config.StoreDriverMemory:
		logger.Info("using in-memory charge store")
		return memory.NewStore(), nil
	case config.StoreDriverRedis:
		connectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		store, err := redis.NewStore(connectCtx, redis.NewClient(cfg), cfg.KeyPrefix)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize redis charge store: %w", err)
		}
		logger.Info("using redis charge store",
			observability.String("addr", cfg.RedisAddr),
			observability.String("key_prefix", cfg.KeyPrefix))
		return store, nil
	default:
		return nil, errors.New("unsupported store driver: " + cfg.Driver)
	}
}
