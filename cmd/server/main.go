package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/flamingdiva/flamingdiva-backend/config"
	"github.com/flamingdiva/flamingdiva-backend/internal/app/controller"
	"github.com/flamingdiva/flamingdiva-backend/internal/app/repository"
	"github.com/flamingdiva/flamingdiva-backend/internal/app/service"
	"github.com/flamingdiva/flamingdiva-backend/internal/db"
	"github.com/flamingdiva/flamingdiva-backend/internal/middleware"
	"github.com/flamingdiva/flamingdiva-backend/internal/router"
	"github.com/flamingdiva/flamingdiva-backend/internal/scheduler"
	"github.com/flamingdiva/flamingdiva-backend/internal/storage"
	"github.com/flamingdiva/flamingdiva-backend/pkg/logger"
	"github.com/flamingdiva/flamingdiva-backend/pkg/payment/stripe"
	"github.com/flamingdiva/flamingdiva-backend/pkg/redis"
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

	logger.Info("Starting FLAMING DIVA Backend Server", map[string]interface{}{
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

	// Run migrations and seed the curated catalog if the table is empty
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Redis backs guest carts and token revocation. The server still runs
	// without it, with those features degraded.
	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Warn("Failed to connect to Redis, guest carts and logout are degraded", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// Payment provider client
	stripeClient, err := stripe.NewClient(stripe.Config{
		SecretKey:     cfg.Stripe.SecretKey,
		WebhookSecret: cfg.Stripe.WebhookSecret,
		BaseURL:       cfg.Stripe.BaseURL,
		SuccessURL:    cfg.Stripe.SuccessURL,
		CancelURL:     cfg.Stripe.CancelURL,
	})
	if err != nil {
		logger.Fatal("Failed to initialize payment client", err)
	}

	// Object storage for product imagery
	s3Storage := storage.NewS3Storage(
		cfg.S3.Region,
		cfg.S3.Bucket,
		cfg.S3.AccessKeyID,
		cfg.S3.SecretAccessKey,
		cfg.S3.BaseURL,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	productRepo := repository.NewProductRepository(db.GetDB())
	cartRepo := repository.NewCartRepository(db.GetDB())
	orderRepo := repository.NewOrderRepository(db.GetDB())

	// Initialize services
	authService := service.NewAuthService(
		userRepo,
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	productService := service.NewProductService(productRepo)
	cartService := service.NewCartService(cartRepo, productRepo, productService)
	checkoutService := service.NewCheckoutService(stripeClient, cfg.Stripe.Domain)
	webhookService := service.NewWebhookService(orderRepo, cartRepo, stripeClient, cfg.Stripe.WebhookSecret)
	orderService := service.NewOrderService(orderRepo)

	// Initialize controllers
	authController := controller.NewAuthController(authService, cfg.JWT.AccessTokenExpiry)
	productController := controller.NewProductController(productService)
	cartController := controller.NewCartController(cartService)
	guestCartController := controller.NewGuestCartController(redis.GetClient())
	checkoutController := controller.NewCheckoutController(checkoutService, cartService)
	webhookController := controller.NewWebhookController(webhookService)
	orderController := controller.NewOrderController(orderService)
	uploadController := controller.NewUploadController(s3Storage)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Setup router
	r := router.NewRouter(
		authController,
		productController,
		cartController,
		guestCartController,
		checkoutController,
		webhookController,
		orderController,
		uploadController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	// Abandoned cart cleanup
	cartCleanup := scheduler.NewCartCleanupScheduler(cartRepo)
	if err := cartCleanup.Start(); err != nil {
		logger.Error("Failed to start cart cleanup scheduler", err)
	}
	defer cartCleanup.Stop()

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
