package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"fayda/internal/identity/audit"
	identityhandler "fayda/internal/identity/handler"
	identitymetrics "fayda/internal/identity/metrics"
	"fayda/internal/identity/service"
	"fayda/internal/identity/store"
	"fayda/internal/platform/config"
	"fayda/internal/platform/httpserver"
	"fayda/internal/platform/logger"
	"fayda/internal/platform/metrics"
	"fayda/internal/platform/postgres"
	"fayda/internal/platform/redis"
	httptransport "fayda/internal/transport/http"
)

const (
	auditPartitions  = 3
	auditReplication = 1

	auditBreakerThreshold = 5
	auditBreakerCooldown  = 30 * time.Second
)

// registryStore is what main needs from whichever backend is configured.
type registryStore interface {
	service.Store
	httptransport.HealthChecker
}

// main wires dependencies and runs the HTTP server until SIGINT or SIGTERM.
// Business logic lives in the internal identity packages.
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Server, log *slog.Logger) error {
	identityMetrics := identitymetrics.New()

	registryStore, closeStore, err := openStore(ctx, cfg, identityMetrics)
	if err != nil {
		return err
	}
	defer closeStore()

	publisher, closePublisher, err := openAuditPublisher(ctx, cfg.Audit, log)
	if err != nil {
		return err
	}
	defer closePublisher()

	registry := service.NewRegistry(registryStore,
		service.WithLogger(log),
		service.WithMetrics(identityMetrics),
		service.WithAuditPublisher(publisher),
	)
	verifier := service.NewVerifier(registry,
		service.WithVerifierLogger(log),
		service.WithVerifierMetrics(identityMetrics),
	)

	router := httptransport.NewRouter(httptransport.Deps{
		Identity: identityhandler.New(verifier, log),
		Health:   registryStore,
		Logger:   log,
		Metrics:  metrics.New(),
	})
	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting fayda verification service",
			"addr", cfg.Addr,
			"registry_backend", registryStore.Backend(),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down", "timeout", cfg.ShutdownTimeout.String())
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown: %w", err)
		}
		return nil
	})
	return g.Wait()
}

func openStore(ctx context.Context, cfg config.Server, m *identitymetrics.Metrics) (registryStore, func(), error) {
	switch cfg.Registry.Backend {
	case config.BackendPostgres:
		db, err := postgres.Open(ctx, cfg.Postgres)
		if err != nil {
			return nil, nil, err
		}
		pg := store.NewPostgres(db, m)
		if err := pg.Migrate(ctx); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("migrate registry: %w", err)
		}
		return pg, func() { _ = db.Close() }, nil
	case config.BackendRedis:
		client, err := redis.New(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		return store.NewRedis(client.Client, m), func() { _ = client.Close() }, nil
	default:
		return store.NewInMemoryStore(), func() {}, nil
	}
}

func openAuditPublisher(ctx context.Context, cfg config.AuditConfig, log *slog.Logger) (audit.Publisher, func(), error) {
	if len(cfg.Brokers) == 0 {
		log.Info("no kafka brokers configured, audit events go to the log")
		return audit.NewLogPublisher(log), func() {}, nil
	}
	client, err := audit.NewKafkaClient(cfg.Brokers)
	if err != nil {
		return nil, nil, err
	}
	if err := audit.EnsureTopic(ctx, client, cfg.Topic, auditPartitions, auditReplication); err != nil {
		client.Close()
		return nil, nil, err
	}
	breaker := audit.NewCircuitBreaker(auditBreakerThreshold, auditBreakerCooldown)
	return audit.NewGuardedPublisher(audit.NewKafkaPublisher(client, cfg.Topic), breaker), client.Close, nil
}
