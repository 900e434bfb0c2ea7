package main

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Prograto/BookReviewsPlatform/docs"
	"github.com/Prograto/BookReviewsPlatform/internal/auth"
	"github.com/Prograto/BookReviewsPlatform/internal/config"
	"github.com/Prograto/BookReviewsPlatform/internal/database"
	"github.com/Prograto/BookReviewsPlatform/internal/database/migration"
	handlers "github.com/Prograto/BookReviewsPlatform/internal/http/handler"
	"github.com/Prograto/BookReviewsPlatform/internal/http/middleware"
	"github.com/Prograto/BookReviewsPlatform/internal/otel"
	"github.com/Prograto/BookReviewsPlatform/internal/repository/postgres"
	"github.com/Prograto/BookReviewsPlatform/internal/service"
	"github.com/Prograto/BookReviewsPlatform/internal/storage"
	"github.com/Prograto/BookReviewsPlatform/internal/validation"
)

// maxBodyBytes caps request bodies; covers arrive inline as base64 data
// URLs so the limit has to admit a few megabytes.
const maxBodyBytes = 5 * 1024 * 1024

// @title Book Reviews API
// @version 1.0
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	ctx := context.Background()

	// Initialize tracing; degrades to a noop provider when the exporter
	// cannot be configured.
	shutdownTracing, err := otel.Init(ctx, time.UTC)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(shutdownCtx)
	}()

	// Initialize PostgreSQL connection (with pooling via database/sql)
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, time.UTC, cfg.Database.Host); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	// Object storage for cover images is optional; without it covers stay
	// inline in the database.
	var covers storage.Storage
	if cfg.MinIO.Enabled() {
		covers, err = storage.NewMinIO(cfg.MinIO)
		if err != nil {
			log.Fatalf("failed to initialize object storage: %v", err)
		}
	}

	tokens, err := auth.NewTokenService(cfg.Auth.Secret, time.Duration(cfg.Auth.TokenTTLMin)*time.Minute)
	if err != nil {
		log.Fatalf("failed to initialize token service: %v", err)
	}

	// Initialize repositories and services
	bookRepo := postgres.NewBookPostgres(db)
	reviewRepo := postgres.NewReviewPostgres(db)
	bookSvc := service.NewBookService(bookRepo, reviewRepo, covers)
	reviewSvc := service.NewReviewService(reviewRepo)

	app := fiber.New(fiber.Config{
		BodyLimit:    maxBodyBytes,
		ErrorHandler: handlers.ErrorHandler(),
	})

	// Register global middleware
	app.Use(cors.New())
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	// JSON Logger middleware for structured request logs
	app.Use(middleware.Logger())
	app.Use(otelfiber.Middleware())

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	promMW, err := middleware.NewPrometheusMiddleware(registry)
	if err != nil {
		log.Fatalf("failed to register metrics: %v", err)
	}
	app.Use(promMW.Handler())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	// Register HTTP routes with injected services
	handlers.RegisterRoutes(app, db, tokens, bookSvc, reviewSvc, validation.New())

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	addr := ":" + cfg.Port

	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
