package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cet3001/CreatorShelf/cache"
	"github.com/cet3001/CreatorShelf/config"
	"github.com/cet3001/CreatorShelf/db"
	"github.com/cet3001/CreatorShelf/handler"
	appLogger "github.com/cet3001/CreatorShelf/logger"
	"github.com/cet3001/CreatorShelf/middleware"
	redisClient "github.com/cet3001/CreatorShelf/redis"
	"github.com/cet3001/CreatorShelf/store"

	goredis "github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	// Initialize logger
	appLogger.Initialize()

	// Local .env overrides, ignored when absent
	_ = godotenv.Load()

	// Load configuration
	cfg := config.MustLoadConfig()
	log.Info().Msg("Configuration loaded successfully")

	// Connect Postgres (source of truth for links and scan events)
	gdb, err := db.New(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	linkStore := store.New(gdb)

	// Redis is an optional L2 link cache; the service runs without it
	var rdb *goredis.Client
	if cfg.Redis.Enabled {
		rdb, err = redisClient.NewClient(cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("Redis unavailable, continuing without L2 link cache")
			rdb = nil
		}
	} else {
		log.Info().Msg("Redis disabled in configuration")
	}

	// Initialize in-process cache (if enabled)
	var cacheClient *cache.Cache
	if cfg.Cache.Enabled {
		cacheClient, err = cache.New(cfg.Cache)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize cache")
		}
	} else {
		log.Info().Msg("Cache disabled in configuration")
	}

	// Create handler with dependency injection
	linkHandler := handler.NewLinkHandler(linkStore, rdb, cacheClient, cfg)

	// Set up router
	r := mux.NewRouter()

	// Apply global middleware
	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)

	r.Use(middleware.CORS)
	r.Use(middleware.RequestLogger)
	r.Use(rateLimiter.Limit)

	// Register routes
	r.HandleFunc("/health", linkHandler.HealthCheck).Methods("GET")
	r.HandleFunc("/cache/metrics", linkHandler.CacheMetrics).Methods("GET")
	r.HandleFunc("/api/links", linkHandler.CreateLink).Methods("POST")
	r.HandleFunc("/api/links/{shortCode}/analytics", linkHandler.LinkAnalytics).Methods("GET")
	r.HandleFunc("/qr/{shortCode}", linkHandler.GenerateQR).Methods("GET")

	// Public redirect surface
	r.HandleFunc("/r/{shortCode}", linkHandler.Redirect).Methods("GET")

	// Configure HTTP server
	serverAddress := fmt.Sprintf("%s:%s", cfg.WebServer.IP, cfg.WebServer.Port)
	server := &http.Server{
		Addr:         serverAddress,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.WebServer.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WebServer.WriteTimeout) * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("address", serverAddress).
			Str("scheme", cfg.WebServer.Scheme).
			Msg("Starting server")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.WebServer.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	// Close cache
	if cacheClient != nil {
		cacheClient.Close()
	}

	// Close Redis connection
	if rdb != nil {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close Redis connection")
		}
	}

	log.Info().Msg("Server stopped gracefully")
}
