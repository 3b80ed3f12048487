package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/swechhitarimal/SMS/internal/application/service"
	"github.com/swechhitarimal/SMS/internal/config"
	"github.com/swechhitarimal/SMS/internal/infrastructure/repository"
	"github.com/swechhitarimal/SMS/internal/infrastructure/storage"
	"github.com/swechhitarimal/SMS/internal/presentation/http/handler"
	"github.com/swechhitarimal/SMS/internal/presentation/http/routes"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Open the shop data store
	store, err := storage.NewFileStore(cfg.Storage.Path)
	if err != nil {
		log.Fatalf("Failed to open data store: %v", err)
	}

	// Initialize repositories
	productRepo := repository.NewProductRepository(store)
	saleRepo := repository.NewSaleRepository(store)
	customerRepo := repository.NewCustomerRepository(store)

	// Initialize services
	inventoryService := service.NewInventoryService(productRepo)
	salesService := service.NewSalesService(saleRepo, productRepo, customerRepo)
	customerService := service.NewCustomerService(customerRepo, saleRepo)
	dashboardService := service.NewDashboardService(productRepo, saleRepo, customerRepo)
	analyticsService := service.NewAnalyticsService(productRepo, saleRepo, customerRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Product:   handler.NewProductHandler(inventoryService),
		Sale:      handler.NewSaleHandler(salesService),
		Customer:  handler.NewCustomerHandler(customerService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
		Analytics: handler.NewAnalyticsHandler(analyticsService, cfg.Analytics.DefaultWindowDays),
	}

	// Setup routes
	router := routes.Setup(handlers, cfg)

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
