package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-jobboard-backend/config"
	_ "go-jobboard-backend/docs" // Important for Swagger
	v1 "go-jobboard-backend/internal/delivery/http/v1"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/internal/repository/memory"
	"go-jobboard-backend/internal/repository/postgres"
	"go-jobboard-backend/internal/repository/remote"
	"go-jobboard-backend/internal/usecase"
	"go-jobboard-backend/pkg/database"
	"go-jobboard-backend/pkg/logger"
	"go-jobboard-backend/pkg/redis"
	"go-jobboard-backend/pkg/validation"

	goredis "github.com/redis/go-redis/v9"
)

// @title           Job Board Backend API
// @version         1.0
// @description     Applications and events, validated against the identity and listing services.
// @host            localhost:8080
// @BasePath        /v1
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init(cfg.LogLevel)
	logger.Log.Info("Starting job board backend", "port", cfg.Port)
	for _, w := range cfg.Warnings() {
		logger.Log.Warn(w)
	}

	ctx := context.Background()
	checks := map[string]usecase.HealthCheck{}

	// 3. Setup Stores
	var applicationRepo domain.ApplicationRepository
	var eventRepo domain.EventRepository
	if cfg.DBUrl != "" {
		if cfg.RunMigrations {
			if err := database.MigrateUp(cfg.DBUrl, cfg.MigrationsPath); err != nil {
				logger.Log.Error("Failed to run migrations", "error", err)
				os.Exit(1)
			}
		}

		dbPool, err := database.NewPostgresConnection(ctx, cfg.DBUrl, database.DefaultPoolConfig())
		if err != nil {
			logger.Log.Error("Failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer dbPool.Close()

		applicationRepo = postgres.NewApplicationRepository(dbPool)
		eventRepo = postgres.NewEventRepository(dbPool)
		checks["database"] = dbPool.Ping
	} else {
		applicationRepo = memory.NewApplicationRepository()
		eventRepo = memory.NewEventRepository()
	}

	// 4. Setup Redis (optional)
	var redisClient *goredis.Client
	if cfg.UpstashRedisURL != "" {
		redisClient, err = redis.Connect(ctx, redis.Config{URL: cfg.UpstashRedisURL, Password: cfg.UpstashRedisPassword})
		if err != nil {
			logger.Log.Warn("Redis unavailable, rate limiting uses in-memory fallback", "error", err)
		} else {
			defer redisClient.Close()
			checks["redis"] = redis.HealthCheck(redisClient)
		}
	}

	// 5. Setup Directory
	dirOpts := []remote.Option{
		remote.WithTimeout(cfg.DirectoryTimeout),
		remote.WithRateLimit(cfg.DirectoryRateLimit),
		remote.WithServiceToken(cfg.ServiceTokenSecret),
	}
	if cfg.ListingServiceURL == "" {
		dirOpts = append(dirOpts, remote.WithLocalListings(eventRepo))
	}
	directory := remote.NewDirectory(cfg.IdentityServiceURL, cfg.ListingServiceURL, dirOpts...)

	// 6. Setup UseCases
	policy := usecase.LookupPolicy{UnreachableAsNotFound: cfg.DirectoryUnreachableAsNotFound}
	applicationUC := usecase.NewApplicationUsecase(applicationRepo, directory, validation.New(), policy)
	eventUC := usecase.NewEventUsecase(eventRepo, directory, policy)
	healthUC := usecase.NewHealthUsecase(checks)

	// 7. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		ApplicationUC: applicationUC,
		EventUC:       eventUC,
		HealthUC:      healthUC,
		Redis:         redisClient,
		Config:        cfg,
	})

	// 8. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Error("Listen failed", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
