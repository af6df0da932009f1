package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	httpAdapter "github.com/Noxety/Microfinace-Mini-ERP-sub000/internal/adapter/http"
	"github.com/Noxety/Microfinace-Mini-ERP-sub000/internal/adapter/http/handler"
	"github.com/Noxety/Microfinace-Mini-ERP-sub000/internal/adapter/http/middleware"
	postgresRepo "github.com/Noxety/Microfinace-Mini-ERP-sub000/internal/adapter/repository/postgres"
	redisRepo "github.com/Noxety/Microfinace-Mini-ERP-sub000/internal/adapter/repository/redis"
	"github.com/Noxety/Microfinace-Mini-ERP-sub000/internal/infrastructure/config"
	"github.com/Noxety/Microfinace-Mini-ERP-sub000/internal/infrastructure/eventpublisher"
	"github.com/Noxety/Microfinace-Mini-ERP-sub000/internal/infrastructure/logger"
	"github.com/Noxety/Microfinace-Mini-ERP-sub000/internal/infrastructure/metrics"
	"github.com/Noxety/Microfinace-Mini-ERP-sub000/internal/infrastructure/postgres"
	"github.com/Noxety/Microfinace-Mini-ERP-sub000/internal/infrastructure/redis"
	"github.com/Noxety/Microfinace-Mini-ERP-sub000/internal/infrastructure/sweeper"
	"github.com/Noxety/Microfinace-Mini-ERP-sub000/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	appLogger := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log.Logger = appLogger

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	appLogger.Info().Msg("connected to postgres")

	// Run migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		appLogger.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	appLogger.Info().Msg("connected to redis")

	appMetrics := metrics.New()

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	loanRepo := postgresRepo.NewLoanRepository(pool)
	instRepo := postgresRepo.NewInstallmentRepository(pool)
	ruleRepo := postgresRepo.NewPenaltyRuleRepository(pool)
	outboxRepo := postgresRepo.NewOutboxRepository(pool)
	retrier := postgresRepo.NewRetrier(appLogger)
	idGen := postgresRepo.NewULIDGenerator()
	cache := redisRepo.NewCache(redisClient)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)

	// Initialize use cases
	loanUC := usecase.NewLoanUseCase(txManager, loanRepo, instRepo, outboxRepo, idGen)
	ruleUC := usecase.NewRuleUseCase(txManager, ruleRepo, cache, idGen)
	paymentUC := usecase.NewPaymentUseCase(txManager, instRepo, ruleUC, outboxRepo, idGen, retrier)
	accrualUC := usecase.NewAccrualUseCase(instRepo, ruleUC, outboxRepo, txManager, idGen, appLogger, usecase.AccrualConfig{
		Workers:  cfg.SweepWorkers,
		PageSize: cfg.SweepPageSize,
	})

	// Initialize handlers
	loanHandler := handler.NewLoanHandler(loanUC)
	paymentHandler := handler.NewPaymentHandler(paymentUC)
	ruleHandler := handler.NewRuleHandler(ruleUC)
	sweepHandler := handler.NewSweepHandler(accrualUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	routerCfg := httpAdapter.RouterConfig{
		LoanHandler:      loanHandler,
		PaymentHandler:   paymentHandler,
		RuleHandler:      ruleHandler,
		SweepHandler:     sweepHandler,
		HealthHandler:    healthHandler,
		IdempotencyStore: idempotencyStore,
		IdempotencyTTL:   cfg.IdempotencyTTL,
		Logging:          middleware.NewLoggingMiddleware(appLogger),
	}
	if cfg.RateLimitEnabled {
		routerCfg.RateLimiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	}

	router := httpAdapter.NewRouter(routerCfg)

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Background workers run until shutdown
	workerCtx, stopWorkers := context.WithCancel(ctx)
	defer stopWorkers()

	publisher := eventpublisher.NewEventPublisher(eventpublisher.Config{
		OutboxRepo: outboxRepo,
		Publisher:  eventpublisher.NewLogPublisher(appLogger),
		Logger:     appLogger,
		Metrics:    appMetrics,
		BatchSize:  cfg.PublisherBatchSize,
		Interval:   cfg.PublisherInterval,
	})
	go func() {
		if err := publisher.Start(workerCtx); err != nil && workerCtx.Err() == nil {
			appLogger.Error().Err(err).Msg("event publisher stopped")
		}
	}()

	if cfg.SweepEnabled {
		sw := sweeper.New(sweeper.Config{
			Runner:   accrualUC,
			Logger:   appLogger,
			Metrics:  appMetrics,
			Interval: cfg.SweepInterval,
		})
		go func() {
			if err := sw.Start(workerCtx); err != nil && workerCtx.Err() == nil {
				appLogger.Error().Err(err).Msg("penalty sweeper stopped")
			}
		}()
	}

	// Start server in goroutine
	go func() {
		appLogger.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info().Msg("shutting down server...")
	stopWorkers()

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal().Err(err).Msg("server forced to shutdown")
	}

	appLogger.Info().Msg("server stopped")
}
