package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/amontenegro/gadgethub-backend/config"
	"github.com/amontenegro/gadgethub-backend/internal/app/controller"
	"github.com/amontenegro/gadgethub-backend/internal/app/repository"
	"github.com/amontenegro/gadgethub-backend/internal/app/service"
	"github.com/amontenegro/gadgethub-backend/internal/db"
	"github.com/amontenegro/gadgethub-backend/internal/middleware"
	"github.com/amontenegro/gadgethub-backend/internal/router"
	"github.com/amontenegro/gadgethub-backend/internal/scheduler"
	"github.com/amontenegro/gadgethub-backend/internal/storage"
	"github.com/amontenegro/gadgethub-backend/pkg/logger"
	"github.com/amontenegro/gadgethub-backend/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting GadgetHub Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations (also seeds the singleton seller profile)
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Initialize Redis for token revocation (optional)
	if cfg.Redis.Enabled {
		if err := redis.Init(&cfg.Redis); err != nil {
			logger.Warn("Redis unavailable, token revocation disabled", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			defer redis.Close()
		}
	}

	// Initialize storage
	store := storage.NewS3Storage(
		cfg.S3.Region,
		cfg.S3.Bucket,
		cfg.S3.AccessKeyID,
		cfg.S3.SecretAccessKey,
		cfg.S3.BaseURL,
	)

	// Initialize repositories
	productRepo := repository.NewProductRepository(db.GetDB())
	inquiryRepo := repository.NewInquiryRepository(db.GetDB())
	saleRepo := repository.NewSaleRepository(db.GetDB())
	reviewRepo := repository.NewReviewRepository(db.GetDB())
	sellerRepo := repository.NewSellerRepository(db.GetDB())

	// Initialize services
	authService := service.NewAuthService(cfg)
	productService := service.NewProductService(productRepo, store)
	inquiryService := service.NewInquiryService(inquiryRepo, productRepo, saleRepo)
	saleService := service.NewSaleService(saleRepo, inquiryRepo, db.GetDB())
	dashboardService := service.NewDashboardService(productRepo, inquiryRepo, saleRepo)
	reviewService := service.NewReviewService(reviewRepo, productRepo, store)
	sellerService := service.NewSellerService(sellerRepo, store)

	// Initialize controllers
	authController := controller.NewAuthController(authService)
	productController := controller.NewProductController(productService)
	inquiryController := controller.NewInquiryController(inquiryService)
	saleController := controller.NewSaleController(saleService)
	dashboardController := controller.NewDashboardController(dashboardService)
	reviewController := controller.NewReviewController(reviewService)
	sellerController := controller.NewSellerController(sellerService)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Start the daily low stock sweep
	lowStockScheduler := scheduler.NewLowStockScheduler(dashboardService)
	if err := lowStockScheduler.Start(); err != nil {
		logger.Warn("Low stock scheduler failed to start", map[string]interface{}{
			"error": err.Error(),
		})
	}
	defer lowStockScheduler.Stop()

	// Setup router
	r := router.NewRouter(
		authController,
		productController,
		inquiryController,
		saleController,
		dashboardController,
		reviewController,
		sellerController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
