package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/sirupsen/logrus"
	"github.com/tourguard/tourist-safety-backend/internal/auth"
	"github.com/tourguard/tourist-safety-backend/internal/config"
	v1 "github.com/tourguard/tourist-safety-backend/internal/handler/http/v1"
	"github.com/tourguard/tourist-safety-backend/internal/notifier"
	"github.com/tourguard/tourist-safety-backend/internal/repository"
	"github.com/tourguard/tourist-safety-backend/internal/service"
	"github.com/tourguard/tourist-safety-backend/pkg/logger"
	"github.com/tourguard/tourist-safety-backend/pkg/postgres"
	redisclient "github.com/tourguard/tourist-safety-backend/pkg/redis"

	_ "github.com/tourguard/tourist-safety-backend/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Tourist Safety Backend API
// @version 1.0
// @description REST backend for the tourist safety application.
// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func runMigrations(cfg *config.Config, log *logrus.Logger) error {
	log.Info("Running database migrations...")

	migrationURL := cfg.DatabaseURL
	if !strings.HasPrefix(migrationURL, "pgx5://") {
		migrationURL = strings.Replace(migrationURL, "postgres://", "pgx5://", 1)
	}

	m, err := migrate.New(
		"file://migrations",
		migrationURL,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("Database migrations applied successfully")
	return nil
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	log := logger.New(cfg.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := runMigrations(cfg, log); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	dbpool, err := postgres.NewPostgresDB(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer dbpool.Close()
	log.Info("Successfully connected to PostgreSQL")

	redisClient, err := redisclient.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	log.Info("Successfully connected to Redis")

	// Incident event fan-out and webhook delivery
	incidentPublisher := notifier.NewRedisPublisher(redisClient)
	notifierWorker := notifier.NewWorker(redisClient, log, cfg)
	notifierWorker.Start(ctx)

	// Token issuer shared by the auth service and the middleware
	tokens := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiry)

	// Repositories
	userRepo := repository.NewUserRepository(dbpool)
	tripRepo := repository.NewTripRepository(dbpool)
	incidentRepo := repository.NewIncidentRepository(dbpool, redisClient)

	// Services
	authService := service.NewAuthService(userRepo, tokens, log, cfg)
	tripService := service.NewTripService(tripRepo, log)
	incidentService := service.NewIncidentService(incidentRepo, incidentPublisher, log)

	// Handlers
	handler := v1.NewHandler(authService, tripService, incidentService, tokens, log)

	router := gin.Default()
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "message": "Smart Tourist Safety Backend"})
	})
	api := router.Group("/api")
	handler.RegisterRoutes(api)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	serverAddr := fmt.Sprintf(":%s", cfg.HTTPPort)

	srv := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Error starting HTTP server: %v", err)
		}
	}()
	log.Infof("HTTP server started on port %s", cfg.HTTPPort)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Received shutdown signal, shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Info("Server gracefully stopped")
}
