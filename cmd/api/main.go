package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"example.com/signup/internal/api"
	"example.com/signup/internal/config"
	"example.com/signup/internal/directory"
	"example.com/signup/internal/domain"
	"example.com/signup/internal/events"
	"example.com/signup/internal/logging"
	"example.com/signup/internal/observability"
	httptransport "example.com/signup/internal/transport/http"
)

func main() {
	cfg := config.Load()

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("signup-service stopped", zap.Error(err))
	}
}

func run(cfg config.Config, logger *zap.Logger) error {
	seed, err := directory.LoadSeed(cfg.SeedFile)
	if err != nil {
		return fmt.Errorf("load seed: %w", err)
	}
	store, err := directory.New(seed)
	if err != nil {
		return fmt.Errorf("build directory: %w", err)
	}
	for _, a := range seed {
		observability.RecordRosterSize(a.Name, len(a.Participants))
	}

	publisher, closePublisher := buildPublisher(cfg, logger)
	defer closePublisher()

	service := domain.NewService(store,
		domain.WithPublisher(publisher),
		domain.WithLogger(logger.Named("domain")),
	)
	handler := api.NewHandler(service, logger.Named("api"))

	router := chi.NewRouter()
	router.Use(
		httptransport.RequestID,
		httptransport.RequestLogger(logger.Named("http")),
		httptransport.CORS(cfg.CORSAllowedOrigin),
	)
	handler.RegisterRoutes(router)
	router.Handle("/metrics", promhttp.Handler())
	if cfg.StaticDir != "" {
		api.MountStatic(router, cfg.StaticDir)
		logger.Info("serving static files", zap.String("dir", cfg.StaticDir))
	}

	server := httptransport.NewServer(httptransport.ServerConfig{
		Address:         cfg.HTTPAddress,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		IdleTimeout:     cfg.IdleTimeout,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}, router)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("signup-service listening",
		zap.String("address", cfg.HTTPAddress),
		zap.Int("activities", len(store.Names())),
	)
	if err := server.Run(ctx); err != nil {
		return fmt.Errorf("http server: %w", err)
	}
	logger.Info("signup-service stopped")
	return nil
}

func buildPublisher(cfg config.Config, logger *zap.Logger) (events.Publisher, func()) {
	if len(cfg.KafkaBrokers) == 0 {
		logger.Info("KAFKA_BROKERS not set, roster events disabled")
		return events.NoopPublisher{}, func() {}
	}

	producer := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.RosterEventsTopic)
	logger.Info("roster events enabled",
		zap.Strings("brokers", cfg.KafkaBrokers),
		zap.String("topic", cfg.RosterEventsTopic),
	)
	return producer, func() {
		if err := producer.Close(); err != nil {
			logger.Warn("closing kafka publisher", zap.Error(err))
		}
	}
}
