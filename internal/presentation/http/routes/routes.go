package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mwaniki/serviceos-api/internal/config"
	"github.com/mwaniki/serviceos-api/internal/presentation/http/handler"
	"github.com/mwaniki/serviceos-api/internal/presentation/http/middleware"
	"github.com/mwaniki/serviceos-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	Customer  *handler.CustomerHandler
	Staff     *handler.StaffHandler
	Lead      *handler.LeadHandler
	StockItem *handler.StockItemHandler
	WorkOrder *handler.WorkOrderHandler
	Invoice   *handler.InvoiceHandler
	Dashboard *handler.DashboardHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager *utils.JWTManager
	Cfg        *config.Config
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))
		protected.Use(middleware.CompanyMiddleware())

		// Per-company rate limiter
		rateLimiter := middleware.NewCompanyRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/register", h.Auth.Register)
		auth.POST("/refresh", h.Auth.RefreshToken)
		// Google OAuth routes
		auth.GET("/google", h.Auth.GoogleLogin)
		auth.GET("/google/callback", h.Auth.GoogleCallback)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers) {
	// Auth/Profile routes
	protected.POST("/auth/logout", h.Auth.Logout)
	protected.GET("/profile", h.Auth.GetProfile)
	protected.PUT("/profile", h.Auth.UpdateProfile)
	protected.PUT("/profile/password", h.Auth.ChangePassword)

	// Customers
	registerCustomerRoutes(protected, h)

	// Staff
	registerStaffRoutes(protected, h)

	// Leads
	registerLeadRoutes(protected, h)

	// Stock items
	registerStockItemRoutes(protected, h)

	// Work orders
	registerWorkOrderRoutes(protected, h)

	// Invoices
	registerInvoiceRoutes(protected, h)

	// Dashboard
	registerDashboardRoutes(protected, h)
}

func registerCustomerRoutes(protected *gin.RouterGroup, h *Handlers) {
	customers := protected.Group("/customers")
	customers.Use(middleware.RequireCompany())
	{
		customers.GET("", h.Customer.List)
		customers.POST("", h.Customer.Create)
		customers.GET("/:id", h.Customer.Get)
		customers.PUT("/:id", h.Customer.Update)
		customers.DELETE("/:id", h.Customer.Delete)
	}
}

func registerStaffRoutes(protected *gin.RouterGroup, h *Handlers) {
	staff := protected.Group("/staff")
	staff.Use(middleware.RequireCompany())
	{
		staff.GET("", h.Staff.List)
		staff.GET("/active", h.Staff.ListActive)
		staff.POST("", h.Staff.Create)
		staff.GET("/:id", h.Staff.Get)
		staff.PUT("/:id", h.Staff.Update)
		staff.DELETE("/:id", h.Staff.Delete)
	}
}

func registerLeadRoutes(protected *gin.RouterGroup, h *Handlers) {
	leads := protected.Group("/leads")
	leads.Use(middleware.RequireCompany())
	{
		leads.GET("", h.Lead.List)
		leads.POST("", h.Lead.Create)
		leads.GET("/:id", h.Lead.Get)
		leads.PUT("/:id", h.Lead.Update)
		leads.POST("/:id/convert", h.Lead.Convert)
		leads.DELETE("/:id", h.Lead.Delete)
	}
}

func registerStockItemRoutes(protected *gin.RouterGroup, h *Handlers) {
	stockItems := protected.Group("/stock-items")
	stockItems.Use(middleware.RequireCompany())
	{
		stockItems.GET("", h.StockItem.List)
		stockItems.POST("", h.StockItem.Create)
		stockItems.GET("/:id", h.StockItem.Get)
		stockItems.PUT("/:id", h.StockItem.Update)
		stockItems.DELETE("/:id", h.StockItem.Delete)
	}
}

func registerWorkOrderRoutes(protected *gin.RouterGroup, h *Handlers) {
	workOrders := protected.Group("/work-orders")
	workOrders.Use(middleware.RequireCompany())
	{
		workOrders.GET("", h.WorkOrder.List)
		workOrders.GET("/feed", h.WorkOrder.Feed)
		workOrders.POST("", h.WorkOrder.Create)
		workOrders.GET("/:id", h.WorkOrder.Get)
		workOrders.PUT("/:id", h.WorkOrder.Update)
		workOrders.DELETE("/:id", h.WorkOrder.Delete)
	}
}

func registerInvoiceRoutes(protected *gin.RouterGroup, h *Handlers) {
	invoices := protected.Group("/invoices")
	invoices.Use(middleware.RequireCompany())
	{
		invoices.GET("", h.Invoice.List)
		invoices.POST("", h.Invoice.Create)
		invoices.POST("/mark-overdue", h.Invoice.MarkOverdue)
		invoices.GET("/:id", h.Invoice.Get)
		invoices.POST("/:id/payments", h.Invoice.RecordPayment)
		invoices.PUT("/:id/status", h.Invoice.UpdateStatus)
		invoices.DELETE("/:id", h.Invoice.Delete)
	}
}

func registerDashboardRoutes(protected *gin.RouterGroup, h *Handlers) {
	dashboard := protected.Group("/dashboard")
	dashboard.Use(middleware.RequireCompany())
	dashboard.Use(middleware.RequireRole("admin", "manager"))
	{
		dashboard.GET("/summary-stats", h.Dashboard.GetSummaryStats)
		dashboard.GET("/financials", h.Dashboard.GetFinancials)
		dashboard.GET("/work-orders-overview", h.Dashboard.GetWorkOrdersOverview)
		dashboard.GET("/work-orders-by-status", h.Dashboard.GetWorkOrdersByStatus)
		dashboard.GET("/recent-activity", h.Dashboard.GetRecentActivity)
	}
}
