package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/tradesim/walletd/internal/adapter/http"
	"github.com/tradesim/walletd/internal/adapter/http/handler"
	postgresRepo "github.com/tradesim/walletd/internal/adapter/repository/postgres"
	redisRepo "github.com/tradesim/walletd/internal/adapter/repository/redis"
	"github.com/tradesim/walletd/internal/infrastructure/auth"
	"github.com/tradesim/walletd/internal/infrastructure/config"
	"github.com/tradesim/walletd/internal/infrastructure/eventpublisher"
	"github.com/tradesim/walletd/internal/infrastructure/logger"
	"github.com/tradesim/walletd/internal/infrastructure/metrics"
	"github.com/tradesim/walletd/internal/infrastructure/postgres"
	"github.com/tradesim/walletd/internal/infrastructure/redis"
	"github.com/tradesim/walletd/internal/usecase"
)

func main() {
	// .env is optional, environment variables win
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log.Logger = appLogger

	appMetrics := metrics.New()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	if cfg.MigrationsPath != "" {
		if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}
	}

	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Repositories
	txManager := postgresRepo.NewTxManager(pool)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	entryRepo := postgresRepo.NewEntryRepository(pool)
	userRepo := postgresRepo.NewUserRepository(pool)
	outboxRepo := postgresRepo.NewOutboxRepository(pool)
	auditRepo := postgresRepo.NewAuditRepository(pool)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	cache := redisRepo.NewCache(redisClient)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier()

	// Use cases
	walletUC := usecase.NewWalletUseCase(txManager, accountRepo, entryRepo, outboxRepo, idGen, retrier, cache)
	userUC := usecase.NewUserUseCase(userRepo, walletUC, idGen)
	auditUC := usecase.NewAuditUseCase(auditRepo, idGen)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)
	authEnabled := resolveAuthEnabled(cfg.AuthEnabled, cfg.JWTSecret)
	if cfg.AuthEnabled && !authEnabled {
		log.Warn().Msg("AUTH_ENABLED is set but JWT_SECRET is empty, authentication disabled")
	}

	// Handlers
	walletHandler := handler.NewWalletHandler(walletUC, auditUC)
	userHandler := handler.NewUserHandler(userUC, walletUC)
	authHandler := handler.NewAuthHandler(userUC, jwtManager)
	auditHandler := handler.NewAuditHandler(auditUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		WalletHandler:    walletHandler,
		UserHandler:      userHandler,
		AuthHandler:      authHandler,
		AuditHandler:     auditHandler,
		HealthHandler:    healthHandler,
		IdempotencyStore: idempotencyStore,
		JWTManager:       jwtManager,
		AuthEnabled:      authEnabled,
		Logger:           appLogger,
		Metrics:          appMetrics,
		RateLimitRPS:     cfg.RateLimitRPS,
		RateLimitBurst:   cfg.RateLimitBurst,
	})

	// Outbox drain worker
	var publisher eventpublisher.Publisher = eventpublisher.NewLogPublisher(nil)
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher := eventpublisher.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
		log.Info().Strs("brokers", cfg.KafkaBrokers).Str("topic", cfg.KafkaTopic).Msg("publishing events to kafka")
	}

	eventPub := eventpublisher.NewEventPublisher(eventpublisher.Config{
		OutboxRepo: outboxRepo,
		Publisher:  publisher,
		BatchSize:  cfg.OutboxBatchSize,
		Interval:   cfg.OutboxPollInterval,
		Retention:  cfg.OutboxRetentionTime,
	})

	go func() {
		if err := eventPub.Start(ctx); err != nil && err != context.Canceled {
			log.Error().Err(err).Msg("event publisher stopped")
		}
	}()

	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := eventPub.Prune(ctx); err != nil {
					log.Error().Err(err).Msg("failed to prune outbox")
				}
			}
		}
	}()

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Bool("auth", authEnabled).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

// resolveAuthEnabled guards against enforcing auth with an empty signing key.
func resolveAuthEnabled(enabled bool, secret string) bool {
	return enabled && secret != ""
}
