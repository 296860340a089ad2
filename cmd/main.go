package main

import (
	"org-service/internal/handler"
	"org-service/internal/middleware"
	"org-service/internal/model"
	"org-service/internal/org"
	"org-service/internal/partition"
	"org-service/pkg/config"
	"org-service/pkg/database"
	"org-service/pkg/jwtutil"
	"org-service/pkg/logger"
	"org-service/prometheus"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger with config
	if err := logger.InitLogger(cfg); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	log.Info("Starting organization service...", zap.String("environment", cfg.Server.Env))

	// Initialize database
	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	if err := database.MigrateModels(&model.Organization{}, &model.Admin{}); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}
	log.Info("Database connection established and migrations completed")

	// Initialize JWT utility with explicit configuration
	jwtUtil := jwtutil.NewJWTUtil(&cfg.JWT)
	log.Info("JWT utility initialized")

	// Wire the lifecycle service over the metadata and partition stores
	metaStore := org.NewGormStore(db)
	partitions := partition.NewGormStore(db)
	orgService := org.NewService(metaStore, partitions, cfg.Auth.BcryptCost)
	handler.Init(orgService, metaStore, jwtUtil)

	// Initialize Prometheus metrics
	prometheus.InitMetrics(cfg)
	log.Info("Prometheus metrics initialized")

	// Initialize Echo framework
	e := echo.New()

	// Apply global middleware - order matters
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestIDMiddleware)
	e.Use(logger.Middleware(log))
	e.Use(prometheus.MetricsMiddleware())

	// Public routes
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", handler.MetricsHandler)

	// Admin authentication
	e.POST("/admin/login", handler.Login)

	// Organization lifecycle. Update authenticates via credentials in the
	// request body; only delete requires a bearer token.
	e.POST("/org/create", handler.CreateOrganization)
	e.GET("/org/get", handler.GetOrganization)
	e.PUT("/org/update", handler.UpdateOrganization)
	e.DELETE("/org/delete", handler.DeleteOrganization, middleware.AuthMiddleware(jwtUtil, metaStore))

	// Start server
	port := cfg.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}
