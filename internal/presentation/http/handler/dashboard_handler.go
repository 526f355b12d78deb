package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mwaniki/serviceos-api/internal/application/service"
	"github.com/mwaniki/serviceos-api/internal/presentation/http/dto/response"
)

// DashboardHandler handles dashboard and reporting HTTP requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
	financialService service.FinancialService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService, financialService service.FinancialService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		financialService: financialService,
	}
}

// GetSummaryStats handles getting the headline dashboard counters
func (h *DashboardHandler) GetSummaryStats(c *gin.Context) {
	stats, err := h.dashboardService.GetSummaryStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Summary stats retrieved successfully", stats)
}

// GetFinancials handles the financial summary report for a date range
// with optional staff, customer and stock item filters
func (h *DashboardHandler) GetFinancials(c *gin.Context) {
	query := service.FinancialQuery{
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
	}

	if staffIDStr := c.Query("staffId"); staffIDStr != "" {
		staffID, err := uuid.Parse(staffIDStr)
		if err != nil {
			response.BadRequest(c, "Invalid staff ID")
			return
		}
		query.StaffID = &staffID
	}
	if customerIDStr := c.Query("customerId"); customerIDStr != "" {
		customerID, err := uuid.Parse(customerIDStr)
		if err != nil {
			response.BadRequest(c, "Invalid customer ID")
			return
		}
		query.CustomerID = &customerID
	}
	if stockIDStr := c.Query("stockId"); stockIDStr != "" {
		stockID, err := uuid.Parse(stockIDStr)
		if err != nil {
			response.BadRequest(c, "Invalid stock item ID")
			return
		}
		query.StockID = &stockID
	}

	summary, err := h.financialService.GetFinancialSummary(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Financial summary retrieved successfully", summary)
}

// GetWorkOrdersOverview handles getting today's schedule and the
// upcoming workload count
func (h *DashboardHandler) GetWorkOrdersOverview(c *gin.Context) {
	overview, err := h.dashboardService.GetWorkOrdersOverview(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Work orders overview retrieved successfully", overview)
}

// GetWorkOrdersByStatus handles getting the status distribution chart
func (h *DashboardHandler) GetWorkOrdersByStatus(c *gin.Context) {
	breakdown, err := h.dashboardService.GetWorkOrdersByStatus(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Work orders by status retrieved successfully", breakdown)
}

// GetRecentActivity handles getting the latest records feed
func (h *DashboardHandler) GetRecentActivity(c *gin.Context) {
	activity, err := h.dashboardService.GetRecentActivity(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Recent activity retrieved successfully", activity)
}
