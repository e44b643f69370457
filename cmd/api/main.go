package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"card-casino/config"
	httpHandler "card-casino/internal/adapter/http/handler"
	pgStorage "card-casino/internal/adapter/storage/postgres"
	redisStorage "card-casino/internal/adapter/storage/redis"
	"card-casino/internal/core/ports"
	"card-casino/internal/service"
	"card-casino/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting Card Casino")

	ctx := context.Background()

	// Initialize PostgreSQL pool. Connectivity problems are logged,
	// not fatal: affected endpoints degrade until storage is back.
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid PostgreSQL configuration")
	}
	defer pool.Close()

	// Initialize Redis client, same degraded-mode policy.
	rdb := redisStorage.NewClient(ctx, cfg.Redis, log)
	defer rdb.Close()

	// Initialize repositories and stores
	accountRepo := pgStorage.NewAccountRepo(pool)
	transactor := pgStorage.NewTransactor(pool)
	roundStore := redisStorage.NewRoundStore(rdb)
	rateLimitStore := redisStorage.NewRateLimitStore(rdb)

	// Initialize core services
	hashSvc := service.NewArgon2HashService()
	tokenSvc := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)
	cardSource := service.NewRandomCardSource()

	// Initialize business services
	authSvc := service.NewAuthService(accountRepo, hashSvc, tokenSvc, cfg.Game.StartingCredits, log)
	ledgerSvc := service.NewLedgerService(accountRepo, transactor, cfg.Game.MaxPayoutMultiplier, log)
	gameSvc := service.NewGameService(roundStore, ledgerSvc, cardSource, cfg.Game.DealerStandScore, cfg.Game.RoundTTL, log)

	// Initialize health checkers
	pgHealth := pgStorage.NewHealthCheck(pool)
	redisHealth := redisStorage.NewHealthCheck(rdb)

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		AuthSvc:        authSvc,
		LedgerSvc:      ledgerSvc,
		GameSvc:        gameSvc,
		TokenSvc:       tokenSvc,
		RateLimitStore: rateLimitStore,
		HealthCheckers: []ports.HealthChecker{pgHealth, redisHealth},
		StaticDir:      cfg.Server.StaticDir,
		Logger:         log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
