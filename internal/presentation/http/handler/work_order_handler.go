package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mwaniki/serviceos-api/internal/application/service"
	"github.com/mwaniki/serviceos-api/internal/domain/enum"
	domainRepo "github.com/mwaniki/serviceos-api/internal/domain/repository"
	"github.com/mwaniki/serviceos-api/internal/presentation/http/dto/response"
	"github.com/mwaniki/serviceos-api/pkg/pagination"
)

// WorkOrderHandler handles work order HTTP requests
type WorkOrderHandler struct {
	workOrderService *service.WorkOrderService
}

// NewWorkOrderHandler creates a new work order handler
func NewWorkOrderHandler(workOrderService *service.WorkOrderService) *WorkOrderHandler {
	return &WorkOrderHandler{workOrderService: workOrderService}
}

// List handles listing work orders
func (h *WorkOrderHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &domainRepo.WorkOrderFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
	}

	if statusStr := c.Query("status"); statusStr != "" {
		statusInt, err := strconv.Atoi(statusStr)
		if err != nil {
			response.BadRequest(c, "Invalid status")
			return
		}
		status := enum.WorkOrderStatus(statusInt)
		params.Status = &status
	}
	if customerIDStr := c.Query("customerId"); customerIDStr != "" {
		customerID, err := uuid.Parse(customerIDStr)
		if err != nil {
			response.BadRequest(c, "Invalid customer ID")
			return
		}
		params.CustomerID = &customerID
	}
	if staffIDStr := c.Query("staffId"); staffIDStr != "" {
		staffID, err := uuid.Parse(staffIDStr)
		if err != nil {
			response.BadRequest(c, "Invalid staff ID")
			return
		}
		params.StaffID = &staffID
	}

	result, err := h.workOrderService.ListWorkOrders(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Work orders retrieved successfully", result)
}

// Feed handles the cursor-paginated work order feed
func (h *WorkOrderHandler) Feed(c *gin.Context) {
	var params pagination.CursorParams
	if err := c.ShouldBindQuery(&params); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.workOrderService.ListWorkOrdersFeed(c.Request.Context(), &params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Work orders retrieved successfully", result)
}

// Create handles creating a work order
func (h *WorkOrderHandler) Create(c *gin.Context) {
	var req struct {
		CustomerID  *uuid.UUID `json:"customer_id"`
		StaffID     *uuid.UUID `json:"staff_id"`
		ServiceType string     `json:"service_type" binding:"required"`
		Date        string     `json:"date" binding:"required"`
		Time        string     `json:"time"`
		Street      *string    `json:"street"`
		City        *string    `json:"city"`
		Notes       *string    `json:"notes"`
		StockUsage  []struct {
			StockItemID uuid.UUID `json:"stock_item_id" binding:"required"`
			Quantity    int       `json:"quantity" binding:"required"`
		} `json:"stock_usage"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		response.BadRequest(c, "Invalid date format, expected YYYY-MM-DD")
		return
	}

	usage := make([]service.StockUsageInput, 0, len(req.StockUsage))
	for _, line := range req.StockUsage {
		usage = append(usage, service.StockUsageInput{
			StockItemID: line.StockItemID,
			Quantity:    line.Quantity,
		})
	}

	order, err := h.workOrderService.CreateWorkOrder(c.Request.Context(), &service.CreateWorkOrderInput{
		CustomerID:  req.CustomerID,
		StaffID:     req.StaffID,
		ServiceType: req.ServiceType,
		Date:        date,
		Time:        req.Time,
		Street:      req.Street,
		City:        req.City,
		Notes:       req.Notes,
		StockUsage:  usage,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Work order created successfully", order)
}

// Get handles getting a single work order
func (h *WorkOrderHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid work order ID")
		return
	}

	order, err := h.workOrderService.GetWorkOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Work order retrieved successfully", order)
}

// Update handles updating a work order
func (h *WorkOrderHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid work order ID")
		return
	}

	var req struct {
		CustomerID  *uuid.UUID            `json:"customer_id"`
		StaffID     *uuid.UUID            `json:"staff_id"`
		ServiceType *string               `json:"service_type"`
		Status      *enum.WorkOrderStatus `json:"status"`
		Date        *string               `json:"date"`
		Time        *string               `json:"time"`
		Street      *string               `json:"street"`
		City        *string               `json:"city"`
		Notes       *string               `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.UpdateWorkOrderInput{
		ID:          id,
		CustomerID:  req.CustomerID,
		StaffID:     req.StaffID,
		ServiceType: req.ServiceType,
		Status:      req.Status,
		Time:        req.Time,
		Street:      req.Street,
		City:        req.City,
		Notes:       req.Notes,
	}
	if req.Date != nil {
		date, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			response.BadRequest(c, "Invalid date format, expected YYYY-MM-DD")
			return
		}
		input.Date = &date
	}

	order, err := h.workOrderService.UpdateWorkOrder(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Work order updated successfully", order)
}

// Delete handles deleting a work order
func (h *WorkOrderHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid work order ID")
		return
	}

	if err := h.workOrderService.DeleteWorkOrder(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
