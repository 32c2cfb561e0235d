package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/careerkit/careerkit-service/internal/ai"
	"github.com/careerkit/careerkit-service/internal/config"
	"github.com/careerkit/careerkit-service/internal/events"
	"github.com/careerkit/careerkit-service/internal/handlers"
	"github.com/careerkit/careerkit-service/internal/observability"
	"github.com/careerkit/careerkit-service/internal/repositories/postgres"
	"github.com/careerkit/careerkit-service/internal/services"
	"github.com/careerkit/careerkit-service/internal/utils"
	"github.com/careerkit/careerkit-service/internal/validator"
	"github.com/careerkit/careerkit-service/pkg"
)

const serviceName = "careerkit-service"

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	slogLogger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	logger := utils.NewSlogLogger(slogLogger)

	shutdownTracing, err := observability.InitTracing(serviceName, cfg.TracingEnabled, os.Stdout)
	if err != nil {
		log.Fatalf("Failed to initialize tracing: %v", err)
	}

	// Initialize database
	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Initialize Redis (if configured)
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = pkg.NewRedisClient(cfg)
		if err != nil {
			logger.Warn("Redis unavailable, continuing without cache", "error", err)
		}
	}

	// Initialize repositories
	repoManager := postgres.NewRepositoryManager(postgres.RepositoryConfig{
		DB:            db,
		RedisClient:   redisClient,
		CasdoorConfig: cfg.Casdoor,
	})
	if err := repoManager.Initialize(); err != nil {
		log.Fatalf("Failed to initialize repositories: %v", err)
	}

	// Domain events go to Kafka when brokers are configured
	var publisher events.EventPublisher
	if brokers := cfg.KafkaBrokerList(); len(brokers) > 0 {
		publisher, err = events.NewKafkaEventPublisher(brokers, cfg.Events.TopicPrefix, slogLogger)
		if err != nil {
			log.Fatalf("Failed to initialize event publisher: %v", err)
		}
	} else {
		publisher, _ = events.NewGoChannelEventPublisher(cfg.Events.TopicPrefix, slogLogger)
	}

	generator := ai.NewGenerator(ai.AnthropicConfig{
		APIKey:    cfg.AI.APIKey,
		Model:     cfg.AI.Model,
		MaxTokens: cfg.AI.MaxTokens,
	}, slogLogger)

	// Initialize services
	serviceManager := services.NewServiceManager(services.Dependencies{
		DB:        db,
		Repo:      repoManager.GetRepository(),
		Logger:    slogLogger,
		Validator: validator.New(),
		Generator: generator,
		Publisher: publisher,
	}, services.ServiceManagerConfig{
		ProfileTxTimeout: time.Duration(cfg.ProfileTxTimeoutMS) * time.Millisecond,
		QuoteAPIURL:      cfg.QuoteAPIURL,
	})
	if err := serviceManager.Initialize(context.Background()); err != nil {
		log.Fatalf("Failed to initialize services: %v", err)
	}

	var limiter handlers.Limiter = handlers.NewMemoryLimiter()
	if redisClient != nil {
		limiter = handlers.NewRedisLimiter(redisClient)
	}

	// Initialize handlers
	handlerManager := handlers.NewHandlerManager(serviceManager, logger, handlers.HandlerConfig{
		Casdoor:             cfg.Casdoor,
		Limiter:             limiter,
		AIRequestsPerMinute: cfg.AIRateLimitPerMin,
	})

	// Setup Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	handlers.SetupMiddleware(router, logger, handlers.MiddlewareConfig{
		ServiceName:    serviceName,
		AllowedOrigins: cfg.AllowedOrigins(),
		TracingEnabled: cfg.TracingEnabled,
	})

	handlerManager.SetupRoutes(router)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Starting server", "port", cfg.Port, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	// Closes the event publisher
	if err := serviceManager.Shutdown(ctx); err != nil {
		logger.Error("Failed to shutdown services", "error", err)
	}

	if err := repoManager.Shutdown(ctx); err != nil {
		logger.Error("Failed to close repositories", "error", err)
	}

	if err := shutdownTracing(ctx); err != nil {
		logger.Error("Failed to flush traces", "error", err)
	}

	logger.Info("Server exited")
}
