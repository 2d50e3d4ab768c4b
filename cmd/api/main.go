package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/relay-hub/settlement-hub/internal/adapter"
	"github.com/relay-hub/settlement-hub/internal/api/middleware"
	"github.com/relay-hub/settlement-hub/internal/api/server"
	apiexecutor "github.com/relay-hub/settlement-hub/internal/api/shared/executor"
	"github.com/relay-hub/settlement-hub/internal/config"
	"github.com/relay-hub/settlement-hub/internal/executor"
	"github.com/relay-hub/settlement-hub/internal/logger"
	"github.com/relay-hub/settlement-hub/internal/normalizer"
	"github.com/relay-hub/settlement-hub/internal/oracle"
	"github.com/relay-hub/settlement-hub/internal/ratelimit"
	"github.com/relay-hub/settlement-hub/internal/registry"
	"github.com/relay-hub/settlement-hub/internal/store"
	"github.com/relay-hub/settlement-hub/internal/withdrawal"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadAPIConfig(*configFile, *envPath)
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
			"service": "settlement-api",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting settlement hub API")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("host", cfg.Database.Host))
	}

	// Configure connection pool
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}

	// Route reads to the replica when one is configured
	if cfg.Database.ReadHost != "" {
		if err := store.UseReadReplica(db, postgres.Open(cfg.Database.ReadDSN())); err != nil {
			logger.FatalCtx(ctx, "Failed to register read replica", zap.Error(err))
		}
		logger.InfoCtx(ctx, "Registered read replica", zap.String("read_host", cfg.Database.ReadHost))
	}
	logger.InfoCtx(ctx, "Connected to database",
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
	)

	// Initialize adapters and store
	clock := adapter.NewClock()
	jsonAdapter := adapter.NewJSON()
	dataStore := store.NewPGStore(db, clock)

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

	resolver := normalizer.NewResolver(chains, normalizer.New())

	// Oracle attestation policy
	verifier, err := oracle.NewVerifier(cfg.Oracle.Signers, cfg.Oracle.Threshold)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create oracle verifier", zap.Error(err))
	}

	// Settlement executor
	settlement := executor.NewExecutor(dataStore, resolver, jsonAdapter, executor.Config{
		MaxRetries:           cfg.Executor.MaxRetries,
		RetryInitialInterval: cfg.Executor.RetryInitialInterval,
	})

	// Withdrawal request handler
	signer, err := withdrawal.NewLocalSigner(cfg.Signer.PrivateKey)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to load withdrawal signer", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Loaded withdrawal signer", zap.String("address", signer.Address().Hex()))
	withdrawals := withdrawal.NewHandler(dataStore, resolver, withdrawal.NewEncoder(), signer, clock, withdrawal.Config{
		LockTTL: cfg.Withdrawal.LockTTL,
	})

	// Per-client rate limiting, shared through redis when configured
	var limiter ratelimit.Limiter
	if cfg.RateLimit.Enabled {
		var redisClient adapter.RedisClient
		if cfg.RateLimit.RedisAddr != "" {
			redisClient = adapter.NewRedisClient(adapter.RedisOptions{
				Addr:        cfg.RateLimit.RedisAddr,
				Password:    cfg.RateLimit.RedisPassword,
				DB:          cfg.RateLimit.RedisDB,
				DialTimeout: 5 * time.Second,
			})
		}
		limiter, err = ratelimit.NewLimiter(ratelimit.Config{
			RequestsPerSecond:   cfg.RateLimit.RequestsPerSecond,
			Burst:               cfg.RateLimit.Burst,
			RedisKeyPrefix:      cfg.RateLimit.RedisKeyPrefix,
			EnableLocalFallback: cfg.RateLimit.EnableLocalFallback,
		}, redisClient, clock)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to create rate limiter", zap.Error(err))
		}
		defer limiter.Close()
	}

	// Create server config
	serverConfig := server.Config{
		Debug:              cfg.Debug,
		Host:               cfg.Server.Host,
		Port:               cfg.Server.Port,
		ReadTimeout:        time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout:       time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:        time.Duration(cfg.Server.IdleTimeout) * time.Second,
		CORSAllowedOrigins: cfg.Server.CORSAllowedOrigins,
		Auth: middleware.AuthConfig{
			JWTPublicKey: cfg.Auth.JWTPublicKey,
			APIKeys:      cfg.Auth.APIKeys,
		},
		RateLimiter: limiter,
	}

	// Create and start server
	exec := apiexecutor.NewExecutor(dataStore, resolver, verifier, settlement, withdrawals)
	srv := server.New(serverConfig, exec)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "server"))
		cancel()
	}

	// Create shutdown context with timeout (don't use canceled ctx)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.FatalCtx(shutdownCtx, "Server forced to shutdown", zap.Error(err))
	}

	logger.Info("API server stopped")
}
