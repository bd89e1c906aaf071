package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/essaymark/essaymark-api/internal/assess"
	"github.com/essaymark/essaymark-api/internal/config"
	"github.com/essaymark/essaymark-api/internal/database"
	"github.com/essaymark/essaymark-api/internal/handler"
	"github.com/essaymark/essaymark-api/internal/middleware"
	"github.com/essaymark/essaymark-api/internal/models"
	"github.com/essaymark/essaymark-api/internal/repository"
	"github.com/essaymark/essaymark-api/internal/router"
	"github.com/essaymark/essaymark-api/internal/rubric"
	"github.com/essaymark/essaymark-api/internal/service"
	"github.com/essaymark/essaymark-api/pkg/ai"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&models.AssessmentRecord{}); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.ConnectRedis(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
	} else {
		logger.Warn().Msg("redis not configured, resubmission caching disabled")
	}

	var natsConn *nats.Conn
	if cfg.NATSUrl != "" {
		natsConn, err = nats.Connect(cfg.NATSUrl)
		if err != nil {
			log.Fatalf("failed to connect to nats: %v", err)
		}
		defer natsConn.Drain()
	}

	generator := buildGenerator(cfg, logger)
	if generator == nil {
		logger.Warn().Msg("no generation provider configured, running in fallback-only grading mode")
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	catalog := rubric.NewCatalog()

	assessor := assess.NewAssessor(generator, catalog, assess.Config{
		Timeout:          cfg.GenerationTimeout,
		BatchConcurrency: cfg.BatchConcurrency,
	}, logger)

	assessmentRepo := repository.NewAssessmentRepository(db)
	assessmentService := service.NewAssessmentService(assessor, assessmentRepo, redisClient, natsConn, validate, service.AssessmentServiceConfig{
		CacheTTL: cfg.ResultCacheTTL,
	}, logger)
	assessmentHandler := handler.NewAssessmentHandler(assessmentService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		AssessmentHandler: assessmentHandler,
		JWTMiddleware:     middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func buildGenerator(cfg config.Config, logger zerolog.Logger) ai.Generator {
	switch cfg.AIProvider {
	case "anthropic":
		if cfg.AnthropicAPIKey == "" {
			return nil
		}
		generator, err := ai.NewAnthropicGenerator(ai.AnthropicConfig{APIKey: cfg.AnthropicAPIKey})
		if err != nil {
			log.Fatalf("failed to create anthropic generator: %v", err)
		}
		return generator
	default:
		if cfg.OpenAIAPIKey == "" {
			return nil
		}
		generator, err := ai.NewOpenAIGenerator(ai.OpenAIConfig{
			APIKey: cfg.OpenAIAPIKey,
			Model:  cfg.OpenAIModel,
			Logger: logger,
		})
		if err != nil {
			log.Fatalf("failed to create openai generator: %v", err)
		}
		return generator
	}
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
