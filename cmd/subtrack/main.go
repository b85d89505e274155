package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"subtrack/internal/api"
	"subtrack/internal/api/handlers"
	"subtrack/internal/llm"
	"subtrack/internal/repository"
	"subtrack/internal/service"
	"subtrack/pkg/auth"
	"subtrack/pkg/config"
	"subtrack/pkg/logger"
	"subtrack/pkg/postgres"
	"subtrack/pkg/redis"

	"go.uber.org/zap"
)

// @title Subtrack API
// @version 1.0
// @description Subscription tracking service with AI spending insights and recommendations

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting subtrack service")

	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := postgres.Migrate(ctx, db, appLogger); err != nil {
		appLogger.Fatal("Failed to migrate database", zap.Error(err))
	}

	rdb, err := redis.NewClient(ctx, &cfg.Redis, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to redis", zap.Error(err))
	}
	defer rdb.Close()

	chatClient, err := llm.NewClient(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize AI client", zap.Error(err))
	}
	if closer, ok := chatClient.(interface{ Close() error }); ok {
		defer closer.Close()
	}

	// Repositories
	userRepo := repository.NewUserRepository(db, appLogger)
	subRepo := repository.NewSubscriptionRepository(db, appLogger)
	interactionRepo := repository.NewInteractionRepository(db, appLogger)
	tokenRepo := repository.NewTokenRepository(rdb, appLogger)

	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Expiration, cfg.JWT.RefreshExp)

	// Services
	windowDays := cfg.Analytics.RenewalWindowDays
	authService := service.NewAuthService(userRepo, tokenRepo, jwtManager, appLogger)
	subService := service.NewSubscriptionService(subRepo, windowDays, appLogger)
	insightService := service.NewInsightService(subRepo, chatClient, windowDays, appLogger)
	recService := service.NewRecommendationService(subRepo, chatClient, appLogger)
	interactionService := service.NewInteractionService(interactionRepo, appLogger)

	app := api.SetupRouter(api.Handlers{
		Auth:           handlers.NewAuthHandler(authService, appLogger),
		Subscription:   handlers.NewSubscriptionHandler(subService, appLogger),
		Insight:        handlers.NewInsightHandler(insightService, appLogger),
		Recommendation: handlers.NewRecommendationHandler(recService, interactionService, appLogger),
		Health: handlers.NewHealthHandler(map[string]handlers.Pinger{
			"postgres": db,
			"redis": handlers.PingFunc(func(ctx context.Context) error {
				return rdb.Ping(ctx).Err()
			}),
		}, appLogger),
	}, &cfg.Server, jwtManager, tokenRepo, appLogger)

	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
