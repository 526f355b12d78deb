package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mwaniki/serviceos-api/internal/application/service"
	"github.com/mwaniki/serviceos-api/internal/presentation/http/dto/response"
	"github.com/mwaniki/serviceos-api/pkg/pagination"
)

// CustomerHandler handles customer-related HTTP requests
type CustomerHandler struct {
	customerService *service.CustomerService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customerService *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// List handles listing customers
func (h *CustomerHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))
	search := c.Query("search")

	params := &pagination.PaginationParams{
		Page:    page,
		PerPage: perPage,
	}

	result, err := h.customerService.ListCustomers(c.Request.Context(), params, search)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Customers retrieved successfully", result)
}

// Create handles creating a customer
func (h *CustomerHandler) Create(c *gin.Context) {
	var req struct {
		ContactPersonName string  `json:"contact_person_name" binding:"required"`
		CompanyName       *string `json:"company_name"`
		Email             *string `json:"email"`
		Phone             *string `json:"phone"`
		Address           *string `json:"address"`
		Notes             *string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	customer, err := h.customerService.CreateCustomer(c.Request.Context(), &service.CreateCustomerInput{
		ContactPersonName: req.ContactPersonName,
		CompanyName:       req.CompanyName,
		Email:             req.Email,
		Phone:             req.Phone,
		Address:           req.Address,
		Notes:             req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Customer created successfully", customer)
}

// Get handles getting a single customer
func (h *CustomerHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	customer, err := h.customerService.GetCustomer(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer retrieved successfully", customer)
}

// Update handles updating a customer
func (h *CustomerHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	var req struct {
		ContactPersonName *string `json:"contact_person_name"`
		CompanyName       *string `json:"company_name"`
		Email             *string `json:"email"`
		Phone             *string `json:"phone"`
		Address           *string `json:"address"`
		Notes             *string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	customer, err := h.customerService.UpdateCustomer(c.Request.Context(), &service.UpdateCustomerInput{
		ID:                id,
		ContactPersonName: req.ContactPersonName,
		CompanyName:       req.CompanyName,
		Email:             req.Email,
		Phone:             req.Phone,
		Address:           req.Address,
		Notes:             req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer updated successfully", customer)
}

// Delete handles deleting a customer
func (h *CustomerHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	if err := h.customerService.DeleteCustomer(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// StaffHandler handles staff-related HTTP requests
type StaffHandler struct {
	staffService *service.StaffService
}

// NewStaffHandler creates a new staff handler
func NewStaffHandler(staffService *service.StaffService) *StaffHandler {
	return &StaffHandler{staffService: staffService}
}

// List handles listing staff members
func (h *StaffHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))
	search := c.Query("search")

	params := &pagination.PaginationParams{
		Page:    page,
		PerPage: perPage,
	}

	result, err := h.staffService.ListStaff(c.Request.Context(), params, search)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Staff retrieved successfully", result)
}

// ListActive handles listing active staff for assignment dropdowns
func (h *StaffHandler) ListActive(c *gin.Context) {
	staff, err := h.staffService.ListActiveStaff(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Active staff retrieved successfully", staff)
}

// Create handles creating a staff member
func (h *StaffHandler) Create(c *gin.Context) {
	var req struct {
		ContactPersonName string  `json:"contact_person_name" binding:"required"`
		Email             *string `json:"email"`
		Phone             *string `json:"phone"`
		Position          *string `json:"position"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	staff, err := h.staffService.CreateStaff(c.Request.Context(), &service.CreateStaffInput{
		ContactPersonName: req.ContactPersonName,
		Email:             req.Email,
		Phone:             req.Phone,
		Position:          req.Position,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Staff member created successfully", staff)
}

// Get handles getting a single staff member
func (h *StaffHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid staff ID")
		return
	}

	staff, err := h.staffService.GetStaff(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Staff member retrieved successfully", staff)
}

// Update handles updating a staff member
func (h *StaffHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid staff ID")
		return
	}

	var req struct {
		ContactPersonName *string `json:"contact_person_name"`
		Email             *string `json:"email"`
		Phone             *string `json:"phone"`
		Position          *string `json:"position"`
		IsActive          *bool   `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	staff, err := h.staffService.UpdateStaff(c.Request.Context(), &service.UpdateStaffInput{
		ID:                id,
		ContactPersonName: req.ContactPersonName,
		Email:             req.Email,
		Phone:             req.Phone,
		Position:          req.Position,
		IsActive:          req.IsActive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Staff member updated successfully", staff)
}

// Delete handles deleting a staff member
func (h *StaffHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid staff ID")
		return
	}

	if err := h.staffService.DeleteStaff(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
