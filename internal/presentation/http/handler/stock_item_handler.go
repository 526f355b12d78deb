package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mwaniki/serviceos-api/internal/application/service"
	"github.com/mwaniki/serviceos-api/internal/presentation/http/dto/response"
	"github.com/mwaniki/serviceos-api/pkg/pagination"
)

// StockItemHandler handles inventory HTTP requests
type StockItemHandler struct {
	stockItemService *service.StockItemService
}

// NewStockItemHandler creates a new stock item handler
func NewStockItemHandler(stockItemService *service.StockItemService) *StockItemHandler {
	return &StockItemHandler{stockItemService: stockItemService}
}

// List handles listing stock items
func (h *StockItemHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))
	search := c.Query("search")
	lowStock := c.Query("low_stock") == "true"

	params := &pagination.PaginationParams{
		Page:    page,
		PerPage: perPage,
	}

	result, err := h.stockItemService.ListStockItems(c.Request.Context(), params, search, lowStock)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Stock items retrieved successfully", result)
}

// Create handles creating a stock item
func (h *StockItemHandler) Create(c *gin.Context) {
	var req struct {
		Name          string  `json:"name" binding:"required"`
		SKU           *string `json:"sku"`
		PurchasePrice float64 `json:"purchase_price"`
		StockQuantity int     `json:"stock_quantity"`
		ReorderLevel  int     `json:"reorder_level"`
		Notes         *string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	item, err := h.stockItemService.CreateStockItem(c.Request.Context(), &service.CreateStockItemInput{
		Name:          req.Name,
		SKU:           req.SKU,
		PurchasePrice: req.PurchasePrice,
		StockQuantity: req.StockQuantity,
		ReorderLevel:  req.ReorderLevel,
		Notes:         req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Stock item created successfully", item)
}

// Get handles getting a single stock item
func (h *StockItemHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid stock item ID")
		return
	}

	item, err := h.stockItemService.GetStockItem(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Stock item retrieved successfully", item)
}

// Update handles updating a stock item
func (h *StockItemHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid stock item ID")
		return
	}

	var req struct {
		Name          *string  `json:"name"`
		SKU           *string  `json:"sku"`
		PurchasePrice *float64 `json:"purchase_price"`
		StockQuantity *int     `json:"stock_quantity"`
		ReorderLevel  *int     `json:"reorder_level"`
		Notes         *string  `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	item, err := h.stockItemService.UpdateStockItem(c.Request.Context(), &service.UpdateStockItemInput{
		ID:            id,
		Name:          req.Name,
		SKU:           req.SKU,
		PurchasePrice: req.PurchasePrice,
		StockQuantity: req.StockQuantity,
		ReorderLevel:  req.ReorderLevel,
		Notes:         req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Stock item updated successfully", item)
}

// Delete handles deleting a stock item
func (h *StockItemHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid stock item ID")
		return
	}

	if err := h.stockItemService.DeleteStockItem(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
