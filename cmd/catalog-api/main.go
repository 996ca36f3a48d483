package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"

	"github.com/Checker-Finance/catalog-api/internal/api"
	"github.com/Checker-Finance/catalog-api/internal/catalog"
	"github.com/Checker-Finance/catalog-api/internal/config"
	"github.com/Checker-Finance/catalog-api/internal/jobs"
	"github.com/Checker-Finance/catalog-api/internal/metrics"
	"github.com/Checker-Finance/catalog-api/internal/publisher"
	"github.com/Checker-Finance/catalog-api/internal/rabbitmq"
	"github.com/Checker-Finance/catalog-api/internal/rate"
	"github.com/Checker-Finance/catalog-api/internal/store"
	"github.com/Checker-Finance/catalog-api/pkg/logger"
	"github.com/Checker-Finance/catalog-api/pkg/secrets"
	"github.com/Checker-Finance/catalog-api/pkg/utils"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()

	logger.Init(cfg.ServiceName, cfg.Env, cfg.LogLevel)
	defer logger.Sync()
	logg := logger.S()
	logg.Info("starting [catalog-api]...")

	// --- Resolve database credentials ---
	dsn := cfg.DatabaseURL
	if cfg.DBSecretName != "" {
		awsProvider, err := secrets.NewAWSProvider(cfg.AWSRegion)
		if err != nil {
			logg.Fatalw("failed to init AWS provider", "error", err)
		}
		provider := secrets.NewCachingProvider(awsProvider, cfg.SecretCacheTTL)
		dsn, err = cfg.ResolveDatabaseURL(ctx, provider)
		if err != nil {
			logg.Fatalw("failed to resolve database credentials", "error", err)
		}
	}
	logg.Info("connecting to DSN: ", utils.MaskDSN(dsn))

	// --- Store (Postgres + Redis cache) ---
	st, err := store.NewHybrid(cfg.RedisAddr, cfg.RedisDB, dsn, store.PGPoolConfig{
		MaxConns: int32(cfg.PGMaxConns),
		MinConns: int32(cfg.PGMinConns),
	}, logg.Desugar())
	if err != nil {
		logg.Fatalw("failed to init store", "error", err)
	}
	defer st.Close() //nolint:errcheck

	// --- Event publisher (NATS JetStream) ---
	var pub catalog.EventPublisher
	nc, err := nats.Connect(cfg.NATSURL)
	if err != nil {
		if cfg.EventsRequired {
			logg.Fatalw("NATS unavailable and events are required", "error", err)
		}
		logg.Warnw("NATS unavailable; product events disabled", "error", err)
	} else {
		defer nc.Drain() //nolint:errcheck
		p, err := publisher.New(nc, cfg.EventSubject, cfg.ServiceName)
		if err != nil {
			logg.Fatalw("failed to init publisher", "error", err)
		}
		pub = p
	}

	// --- Catalog service (core business logic) ---
	svc := catalog.NewService(st, pub, logg.Desugar())

	// --- Optional RabbitMQ ingestion path ---
	if cfg.AMQPURL != "" {
		consumer, err := rabbitmq.NewConsumer(cfg.AMQPURL, svc, logg.Desugar())
		if err != nil {
			logg.Fatalw("failed to init RabbitMQ consumer", "error", err)
		}
		defer consumer.Close() //nolint:errcheck
		if err := consumer.Start(ctx); err != nil {
			logg.Fatalw("failed to start RabbitMQ consumer", "error", err)
		}
	}

	// --- Metrics endpoint + product count gauge ---
	metrics.StartServer(fmt.Sprintf(":%d", cfg.MetricsPort))

	refresher := jobs.NewCountRefresher(logg.Desugar(), st, cfg.CountRefreshInterval)
	go refresher.Start(ctx)

	// --- HTTP API ---
	app := fiber.New()
	if cfg.RateLimitRPS > 0 {
		app.Use(api.RateLimit(rate.NewManager(rate.Config{
			RequestsPerSecond: cfg.RateLimitRPS,
			Burst:             cfg.RateLimitBurst,
		})))
	}
	h := api.NewProductsHandler(logg.Desugar(), svc)
	api.RegisterRoutes(app, h, st)

	go func() {
		logg.Infof("HTTP API listening on :%d", cfg.Port)
		if err := app.Listen(fmt.Sprintf(":%d", cfg.Port)); err != nil {
			logg.Fatalw("fiber.listen_failed", "error", err)
		}
	}()

	logg.Infow("[catalog-api] running",
		"port", cfg.Port,
		"metrics_port", cfg.MetricsPort)

	<-ctx.Done()
	stop()
	logg.Info("shutting down [catalog-api]...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	app.ShutdownWithContext(shutdownCtx) //nolint:errcheck
}
