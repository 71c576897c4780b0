package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	authMiddleware "github.com/bookwise/backend/internal/auth/middleware"
	"github.com/bookwise/backend/internal/auth/service"
	"github.com/bookwise/backend/internal/config"
	"github.com/bookwise/backend/internal/handlers"
	"github.com/bookwise/backend/internal/logger"
	loggerMiddleware "github.com/bookwise/backend/internal/logger/middleware"
	"github.com/bookwise/backend/internal/middlewares"
	"github.com/bookwise/backend/internal/models"
	"github.com/bookwise/backend/internal/repositories"
	"github.com/bookwise/backend/internal/services"

	_ "github.com/bookwise/backend/docs"
)

// @title BookWise Users API
// @version 1.0
// @description API for user identity, authorization, favorites and reporting

// @host localhost:8000
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v\n", err)
	}
	defer logger.Sync()

	logger.Logger.Info("Starting BookWise Users Service")

	// Connect to database
	db, err := connectDB(cfg.DSN())
	if err != nil {
		logger.Logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	if err := runMigrations(db); err != nil {
		logger.Logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Initialize JWT token generator
	tokenGenerator := service.NewTokenGenerator(cfg.JWT.Secret)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db, logger.Logger)
	bookRepo := repositories.NewBookRepository(db, logger.Logger)
	visitorRepo := repositories.NewVisitorRepository(db, logger.Logger)

	// Initialize services
	identityService := services.NewIdentityService(userRepo, tokenGenerator, logger.Logger, cfg.MasterAdminEmail)
	userService := services.NewUserService(userRepo, bookRepo, logger.Logger)
	adminService := services.NewAdminService(userRepo, logger.Logger, cfg.MasterAdminEmail)
	visitorService := services.NewVisitorService(visitorRepo, logger.Logger)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(identityService, logger.Logger)
	userHandler := handlers.NewUserHandler(userService, logger.Logger)
	adminHandler := handlers.NewAdminHandler(adminService, logger.Logger)
	visitHandler := handlers.NewVisitHandler(visitorService, logger.Logger)

	// Initialize auth middleware
	authenticated := authMiddleware.AuthMiddleware(tokenGenerator)
	adminOnly := authMiddleware.RoleMiddleware(tokenGenerator, models.RoleAdmin)

	// Setup router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(middlewares.RequestIDMiddleware)
	r.Use(loggerMiddleware.LoggerMiddleware(logger.Logger))
	r.Use(middlewares.RecoveryMiddleware(logger.Logger))
	r.Use(middlewares.CORSMiddleware(cfg.CORS.AllowedOrigins))
	r.Use(httprate.LimitByIP(100, time.Minute))
	r.Use(middlewares.RequestSizeLimitMiddleware(1 * 1024 * 1024)) // 1MB

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://localhost:%d/swagger/doc.json", cfg.Server.Port)),
	))

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"This is home route"}`))
	})

	// Register public routes
	authHandler.RegisterRoutes(r)
	visitHandler.RegisterRoutes(r)

	// Register authenticated user routes
	r.Group(func(r chi.Router) {
		r.Use(authenticated)
		userHandler.RegisterRoutes(r)
	})

	// Register admin routes with role middleware
	r.Group(func(r chi.Router) {
		r.Use(adminOnly)
		adminHandler.RegisterRoutes(r)
	})

	// Start server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Logger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Logger.Info("Server exited")
}

// connectDB connects to the database
func connectDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// runMigrations runs database migrations
func runMigrations(db *sql.DB) error {
	driver, err := mysql.WithInstance(db, &mysql.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	migrationPath := "file://migrations"
	if _, err := os.Stat("migrations"); os.IsNotExist(err) {
		// Try parent directory if running from cmd
		if _, err := os.Stat("../migrations"); err == nil {
			migrationPath = "file://../migrations"
		}
	}

	m, err := migrate.NewWithDatabaseInstance(
		migrationPath,
		"mysql",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
