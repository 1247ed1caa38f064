package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/creatorflowhq/creatorflow-backend/internal/config"
	"github.com/creatorflowhq/creatorflow-backend/internal/database"
	"github.com/creatorflowhq/creatorflow-backend/internal/handlers"
	"github.com/creatorflowhq/creatorflow-backend/internal/logging"
	"github.com/creatorflowhq/creatorflow-backend/internal/middleware"
	"github.com/creatorflowhq/creatorflow-backend/internal/routes"
	"github.com/creatorflowhq/creatorflow-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// Database (pooled URL) with query timing collector
	queryMetrics := database.NewQueryMetrics(200 * time.Millisecond)
	if err := database.Connect(cfg, queryMetrics); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	// Migrations run over the direct URL; PgBouncer cannot do DDL.
	if err := database.Migrate(cfg); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// PostgreSQL log handler (ERROR+ async batch)
	pgLogHandler := logging.NewPGHandler(database.DB)
	slog.SetDefault(slog.New(logging.NewMultiHandler(
		slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		pgLogHandler,
	)))

	// Log cleanup (30-day retention)
	cleanupDone := make(chan struct{})
	logging.StartCleanup(database.DB, cleanupDone)

	// Redis-backed webhook replay dedup. Optional: without Redis, replays
	// are re-processed, which the sync handlers tolerate.
	var redisClient *redis.Client
	var replayStore services.ReplayStore
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			slog.Error("invalid REDIS_URL", "error", err)
			os.Exit(1)
		}
		redisClient = redis.NewClient(opts)
		replayStore = services.NewRedisReplayStore(redisClient)
	}

	// Services
	userService := services.NewUserService(database.DB, cfg)
	syncService := services.NewSyncService(database.DB, userService, replayStore)
	ideaService := services.NewIdeaService(database.DB, userService)
	analyticsService := services.NewAnalyticsService(database.DB)
	generationService := services.NewGenerationService(database.DB, cfg, userService, ideaService, analyticsService)
	templateService := services.NewTemplateService(database.DB)
	teamService := services.NewTeamService(database.DB)

	if err := templateService.SeedBuiltins(); err != nil {
		slog.Error("template seeding failed", "error", err)
	}

	// Handlers
	healthHandler := handlers.NewHealthHandler(queryMetrics)
	webhookHandler := handlers.NewWebhookHandler(syncService, cfg)
	userHandler := handlers.NewUserHandler(userService)
	ideaHandler := handlers.NewIdeaHandler(ideaService)
	generationHandler := handlers.NewGenerationHandler(generationService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)
	templateHandler := handlers.NewTemplateHandler(templateService)
	teamHandler := handlers.NewTeamHandler(teamService)

	// Sentry error tracking
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    4 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	// Sentry middleware
	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		return c.Next()
	})
	app.Use(middleware.RequestGate(cfg))

	// Routes
	routes.Setup(app, cfg, userService, healthHandler, webhookHandler, userHandler, ideaHandler, generationHandler, analyticsHandler, templateHandler, teamHandler)

	// Monthly usage counter reset daemon
	resetDone := make(chan struct{})
	userService.StartMonthlyReset(resetDone)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	close(resetDone)
	close(cleanupDone)
	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			slog.Error("redis close error", "error", err)
		}
	}

	// Close database connections
	if sqlDB, err := database.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
