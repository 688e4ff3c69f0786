package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"go.uber.org/zap"

	"movie-discovery-explorer/internal/config"
	"movie-discovery-explorer/internal/database"
	"movie-discovery-explorer/internal/favorites"
	"movie-discovery-explorer/internal/handler"
	applog "movie-discovery-explorer/internal/logger"
	"movie-discovery-explorer/internal/middleware"
	"movie-discovery-explorer/internal/models"
	"movie-discovery-explorer/internal/service"
	"movie-discovery-explorer/internal/tmdb"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Structured logging
	log, err := applog.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Favorites backend
	kv, closeKV, err := favorites.OpenBackend(cfg, log)
	if err != nil {
		log.Fatal("failed to open favorites backend", zap.String("backend", cfg.Favorites.Backend), zap.Error(err))
	}
	defer closeKV()

	// Connect to Redis for rate limiting (non-fatal if unavailable)
	rdb, err := database.NewRedis(cfg.Redis, log)
	if err != nil {
		log.Warn("Redis unavailable, running without rate limiting", zap.Error(err))
	} else {
		defer rdb.Close()
	}

	// Initialize layers
	tmdbClient := tmdb.NewClient(cfg.TMDB, log)
	store := favorites.NewStore(kv, cfg.Favorites.Key, log)
	images := models.Images{BaseURL: cfg.TMDB.ImageBaseURL}
	agg := service.NewAggregator(tmdbClient, images, cfg.TMDB.Region, log)
	h := handler.NewViewHandler(agg, store, images, cfg.UI.RotationInterval, log)
	limiter := middleware.NewRateLimiter(rdb, cfg.RateLimit.Max, cfg.RateLimit.WindowSeconds, log)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Movie Discovery Explorer",
		ServerHeader: "Movie-Discovery-Explorer",
		ErrorHandler: func(c fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			log.Error("unhandled error", zap.Error(err), zap.Int("status", code))
			return c.Status(code).JSON(handler.ErrorResponse{Error: err.Error()})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())

	// API routes
	h.Register(app.Group("/api/v1"), limiter.Handler())

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		log.Info("shutting down view server...")
		_ = app.Shutdown()
	}()

	// Start server
	addr := ":" + cfg.Port
	log.Info("starting view server",
		zap.String("addr", addr),
		zap.String("language", cfg.TMDB.Language),
		zap.String("region", cfg.TMDB.Region),
		zap.String("favorites_backend", cfg.Favorites.Backend),
	)
	if err := app.Listen(addr); err != nil {
		log.Error("server error", zap.Error(err))
		os.Exit(1)
	}
}
