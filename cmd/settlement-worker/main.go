package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/relay-hub/settlement-hub/internal/adapter"
	"github.com/relay-hub/settlement-hub/internal/config"
	"github.com/relay-hub/settlement-hub/internal/consumer"
	"github.com/relay-hub/settlement-hub/internal/executor"
	"github.com/relay-hub/settlement-hub/internal/logger"
	"github.com/relay-hub/settlement-hub/internal/messaging"
	"github.com/relay-hub/settlement-hub/internal/normalizer"
	"github.com/relay-hub/settlement-hub/internal/oracle"
	"github.com/relay-hub/settlement-hub/internal/providers/jetstream"
	"github.com/relay-hub/settlement-hub/internal/registry"
	"github.com/relay-hub/settlement-hub/internal/store"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadSettlementWorkerConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "settlement-worker",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting settlement worker")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("host", cfg.Database.Host))
	}
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database")

	// Initialize adapters and store
	jsonAdapter := adapter.NewJSON()
	dataStore := store.NewPGStore(db, adapter.NewClock())

	// Load chain registry
	var chainSource registry.Source
	switch cfg.Chains.Source {
	case config.ChainSourceDatabase:
		chainSource = registry.NewStoreSource(dataStore)
	default:
		chainSource = registry.NewFileSource(adapter.NewFileSystem(), jsonAdapter, cfg.Chains.Path)
	}
	chains, err := registry.NewChainRegistry(ctx, chainSource)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to load chain registry", zap.Error(err), zap.String("source", cfg.Chains.Source))
	}
	logger.InfoCtx(ctx, "Loaded chain registry", zap.Int("chains", len(chains.Chains())))

	verifier, err := oracle.NewVerifier(cfg.Oracle.Signers, cfg.Oracle.Threshold)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create oracle verifier", zap.Error(err))
	}

	settlement := executor.NewExecutor(dataStore, normalizer.NewResolver(chains, normalizer.New()), jsonAdapter, executor.Config{
		MaxRetries:           cfg.Executor.MaxRetries,
		RetryInitialInterval: cfg.Executor.RetryInitialInterval,
	})

	// Announce applied actions on the results stream
	var resultsPublisher messaging.Publisher
	if cfg.NATS.ResultsStreamName != "" {
		resultsPublisher, err = jetstream.NewPublisher(ctx, jetstream.Config{
			URL:            cfg.NATS.URL,
			StreamName:     cfg.NATS.ResultsStreamName,
			SubjectPrefix:  cfg.NATS.ResultsSubjectPrefix,
			MaxReconnects:  cfg.NATS.MaxReconnects,
			ReconnectWait:  cfg.NATS.ReconnectWait,
			ConnectionName: cfg.NATS.ConnectionName + "-publisher",
		}, adapter.NewNatsJetStream(), jsonAdapter)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to create results publisher", zap.Error(err))
		}
		defer resultsPublisher.Close()
		logger.InfoCtx(ctx, "Results publisher created", zap.String("stream", cfg.NATS.ResultsStreamName))
	}

	// Create consumer
	actionConsumer, err := consumer.NewConsumer(
		consumer.Config{
			URL:             cfg.NATS.URL,
			StreamName:      cfg.NATS.StreamName,
			ConsumerName:    cfg.NATS.ConsumerName,
			Subject:         cfg.NATS.Subject,
			MaxReconnects:   cfg.NATS.MaxReconnects,
			ReconnectWait:   cfg.NATS.ReconnectWait,
			ConnectionName:  cfg.NATS.ConnectionName,
			AckWaitTimeout:  cfg.NATS.AckWait,
			MaxDeliver:      cfg.NATS.MaxDeliver,
			WorkerPoolSize:  cfg.Worker.WorkerPoolSize,
			WorkerQueueSize: cfg.Worker.WorkerQueueSize,
		},
		adapter.NewNatsJetStream(),
		verifier,
		settlement,
		resultsPublisher,
		jsonAdapter,
	)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create action consumer", zap.Error(err))
	}
	defer actionConsumer.Close()
	logger.InfoCtx(ctx, "Action consumer created", zap.String("stream", cfg.NATS.StreamName), zap.String("consumer", cfg.NATS.ConsumerName))

	errCh := make(chan error, 2)

	// Serve metrics
	var metricsServer *http.Server
	if cfg.Worker.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		metricsServer = &http.Server{Addr: cfg.Worker.MetricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("metrics server: %w", err)
			}
		}()
		logger.InfoCtx(ctx, "Serving metrics", zap.String("address", cfg.Worker.MetricsAddr))
	}

	// Start consuming
	go func() {
		if err := actionConsumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			errCh <- err
		}
	}()

	// Wait for shutdown signal or error
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "consumer"))
		cancel()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if metricsServer != nil {
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			logger.Error(err, zap.String("component", "metrics"))
		}
	}

	logger.Info("Settlement worker stopped")
}
