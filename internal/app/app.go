// Package app wires the storefront service together: configuration, Redis,
// Kafka, the payment gateway, the catalog client, and the HTTP server.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Beliver-cell/kreateyo-sub000/internal/catalog"
	"github.com/Beliver-cell/kreateyo-sub000/internal/config"
	"github.com/Beliver-cell/kreateyo-sub000/internal/event"
	"github.com/Beliver-cell/kreateyo-sub000/internal/gateway"
	gwmock "github.com/Beliver-cell/kreateyo-sub000/internal/gateway/mock"
	handler "github.com/Beliver-cell/kreateyo-sub000/internal/handler/http"
	redisrepo "github.com/Beliver-cell/kreateyo-sub000/internal/repository/redis"
	"github.com/Beliver-cell/kreateyo-sub000/internal/service"
	"github.com/Beliver-cell/kreateyo-sub000/pkg/health"
	"github.com/Beliver-cell/kreateyo-sub000/pkg/httpclient"
	"github.com/Beliver-cell/kreateyo-sub000/pkg/kafka"
	"github.com/Beliver-cell/kreateyo-sub000/pkg/tracing"
)

// App is the assembled storefront service.
type App struct {
	cfg      *config.Config
	logger   *slog.Logger
	server   *http.Server
	redis    *redis.Client
	producer *kafka.Producer
	tracing  func(context.Context) error
}

// New builds the application from configuration. Dependencies are checked at
// startup: an unreachable Redis fails fast, Kafka only degrades to dropped
// events.
func New(ctx context.Context, cfg *config.Config, l *slog.Logger) (*App, error) {
	shutdownTracing, err := tracing.InitTracer(ctx, tracing.Config{
		ServiceName:    "storefront",
		ServiceVersion: "1.0.0",
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.TracingEndpoint,
		SampleRate:     cfg.TracingSampleRate,
		Enabled:        cfg.TracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	var publisher event.Publisher = event.NoopPublisher{}
	var producer *kafka.Producer
	if cfg.KafkaEnabled {
		producer = kafka.NewProducer(kafka.DefaultProducerConfig(cfg.KafkaBrokers), l)
		if err := producer.Ping(ctx); err != nil {
			l.Warn("kafka unreachable at startup, events will be retried by the producer",
				slog.String("error", err.Error()))
		}
		publisher = event.NewKafkaPublisher(producer, l)
	}

	repo := redisrepo.NewCartRepository(redisClient, cfg.CartTTL)
	carts := service.NewCartService(repo, publisher, l, cfg.DefaultCurrency, cfg.CartTTL)

	var gw gateway.Gateway
	if cfg.GatewayProvider == "mock" {
		gw = gwmock.New(l, cfg.MockGatewayDelay)
	}
	checkout := service.NewCheckoutService(carts, gw, publisher, l, cfg.PaymentTimeout)

	cat := catalog.NewClient(cfg.CatalogBaseURL, httpclient.DefaultConfig(), l)

	healthHandler := health.NewHandler()
	healthHandler.Register("redis", func(ctx context.Context) error {
		return redisClient.Ping(ctx).Err()
	})
	if producer != nil {
		healthHandler.Register("kafka", producer.Ping)
	}

	router := handler.NewRouter(
		handler.NewCartHandler(carts, cat),
		handler.NewCheckoutHandler(checkout),
		healthHandler,
		l,
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &App{
		cfg:      cfg,
		logger:   l,
		server:   server,
		redis:    redisClient,
		producer: producer,
		tracing:  shutdownTracing,
	}, nil
}

// Run starts the HTTP server and blocks until it stops.
func (a *App) Run() error {
	a.logger.Info("storefront service listening",
		slog.String("addr", a.server.Addr),
		slog.String("environment", a.cfg.Environment),
		slog.String("gateway", a.cfg.GatewayProvider),
	)

	if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown stops the server and closes all connections.
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("shutting down")

	var errs []error
	if err := a.server.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("shutdown http server: %w", err))
	}
	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close kafka producer: %w", err))
		}
	}
	if err := a.redis.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close redis: %w", err))
	}
	if err := a.tracing(ctx); err != nil {
		errs = append(errs, fmt.Errorf("shutdown tracing: %w", err))
	}

	return errors.Join(errs...)
}
