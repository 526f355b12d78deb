package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/mwaniki/serviceos-api/internal/application/service"
	"github.com/mwaniki/serviceos-api/internal/config"
	"github.com/mwaniki/serviceos-api/internal/infrastructure/database"
	"github.com/mwaniki/serviceos-api/internal/infrastructure/repository"
	"github.com/mwaniki/serviceos-api/internal/presentation/http/handler"
	"github.com/mwaniki/serviceos-api/internal/presentation/http/routes"
	"github.com/mwaniki/serviceos-api/pkg/oauth"
	"github.com/mwaniki/serviceos-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	staffRepo := repository.NewStaffRepository(db)
	leadRepo := repository.NewLeadRepository(db)
	stockItemRepo := repository.NewStockItemRepository(db)
	workOrderRepo := repository.NewWorkOrderRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)

	// Initialize Google OAuth service
	googleOAuthService := oauth.NewGoogleOAuthService(oauth.GoogleOAuthConfig{
		ClientID:     cfg.OAuth.GoogleClientID,
		ClientSecret: cfg.OAuth.GoogleClientSecret,
		RedirectURL:  cfg.OAuth.GoogleRedirectURL,
	})

	// Initialize services
	authService := service.NewAuthService(userRepo, companyRepo, jwtManager, googleOAuthService)
	customerService := service.NewCustomerService(customerRepo)
	staffService := service.NewStaffService(staffRepo)
	leadService := service.NewLeadService(leadRepo, customerRepo)
	stockItemService := service.NewStockItemService(stockItemRepo)
	workOrderService := service.NewWorkOrderService(workOrderRepo, stockItemRepo)
	invoiceService := service.NewInvoiceService(invoiceRepo, workOrderRepo)
	financialService := service.NewFinancialService(workOrderRepo, invoiceRepo, stockItemRepo)
	dashboardService := service.NewDashboardService(workOrderRepo, invoiceRepo, customerRepo, leadRepo, stockItemRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Customer:  handler.NewCustomerHandler(customerService),
		Staff:     handler.NewStaffHandler(staffService),
		Lead:      handler.NewLeadHandler(leadService),
		StockItem: handler.NewStockItemHandler(stockItemService),
		WorkOrder: handler.NewWorkOrderHandler(workOrderService),
		Invoice:   handler.NewInvoiceHandler(invoiceService),
		Dashboard: handler.NewDashboardHandler(dashboardService, financialService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager: jwtManager,
		Cfg:        cfg,
	})

	// Get port from environment or use default
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
