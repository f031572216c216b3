package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/omarhamdan/safra/internal/config"
	"github.com/omarhamdan/safra/internal/connect"
	"github.com/omarhamdan/safra/internal/container"
	"github.com/omarhamdan/safra/internal/models"
	"github.com/omarhamdan/safra/internal/queue"
	"github.com/omarhamdan/safra/internal/routes"
)

func main() {
	// Load environment variables
	_ = godotenv.Load(".env.local")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup logger
	logger := setupLogger(cfg)
	logger.Info("Starting Safra API server", "environment", cfg.Environment)

	// Initialize database connections
	mongoClient, err := connect.MongoDBConnect(cfg.MongoDBURI)
	if err != nil {
		logger.Error("Failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	logger.Info("Connected to MongoDB successfully")

	{
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		if err := models.MongodbNewRepo(mongoClient).EnsureIndexes(ctx); err != nil {
			cancel()
			logger.Error("Failed to ensure indexes", "error", err)
			os.Exit(1)
		}
		cancel()
	}

	// Redis backs trip caching and login rate limiting; the server runs
	// without it.
	redisClient, err := connect.RedisConnect(cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		logger.Warn("Redis unavailable, caching and rate limiting disabled", "error", err)
		redisClient = nil
	} else if redisClient != nil {
		logger.Info("Connected to Redis successfully")
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		logger.Error("Failed to create upload directory", "dir", cfg.UploadDir, "error", err)
		os.Exit(1)
	}

	// Initialize dependency container
	appContainer := container.NewContainer(cfg, logger, mongoClient, redisClient)

	// Confirmation emails flow through the broker when both sides are
	// configured.
	if cfg.AMQPURL != "" && appContainer.Mailer != nil {
		go queue.StartBookingConsumer(cfg.AMQPURL, appContainer.Mailer, logger)
		logger.Info("Booking confirmation consumer started")
	}

	// Setup routes
	router := routes.SetupRoutes(appContainer)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Server is shutting down...")

	// Give outstanding requests 30 seconds to complete
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown server
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	// Close database connections
	if err := connect.RedisDisconnect(); err != nil {
		logger.Error("Error disconnecting from Redis", "error", err)
	}
	if err := connect.MongoDBDisconnect(); err != nil {
		logger.Error("Error disconnecting from MongoDB", "error", err)
	}

	logger.Info("Server exited")
}

func setupLogger(cfg *config.Config) *slog.Logger {
	var handler slog.Handler

	if cfg.IsProduction() {
		// JSON logging for production
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	} else {
		// Human-readable logging for development
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
	}

	return slog.New(handler)
}
