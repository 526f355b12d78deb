package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mwaniki/serviceos-api/internal/application/service"
	"github.com/mwaniki/serviceos-api/internal/domain/enum"
	"github.com/mwaniki/serviceos-api/internal/presentation/http/dto/response"
	"github.com/mwaniki/serviceos-api/pkg/pagination"
)

// LeadHandler handles lead-related HTTP requests
type LeadHandler struct {
	leadService *service.LeadService
}

// NewLeadHandler creates a new lead handler
func NewLeadHandler(leadService *service.LeadService) *LeadHandler {
	return &LeadHandler{leadService: leadService}
}

// List handles listing leads
func (h *LeadHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))
	search := c.Query("search")

	params := &pagination.PaginationParams{
		Page:    page,
		PerPage: perPage,
	}

	result, err := h.leadService.ListLeads(c.Request.Context(), params, search)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Leads retrieved successfully", result)
}

// Create handles creating a lead
func (h *LeadHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		ContactPersonName string  `json:"contact_person_name" binding:"required"`
		CompanyName       *string `json:"company_name"`
		Email             *string `json:"email"`
		Phone             *string `json:"phone"`
		Address           *string `json:"address"`
		LeadSource        *string `json:"lead_source"`
		SalesPersonName   *string `json:"sales_person_name"`
		Notes             *string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	lead, err := h.leadService.CreateLead(c.Request.Context(), &service.CreateLeadInput{
		CreatedByID:       *userID,
		ContactPersonName: req.ContactPersonName,
		CompanyName:       req.CompanyName,
		Email:             req.Email,
		Phone:             req.Phone,
		Address:           req.Address,
		LeadSource:        req.LeadSource,
		SalesPersonName:   req.SalesPersonName,
		Notes:             req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Lead created successfully", lead)
}

// Get handles getting a single lead
func (h *LeadHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid lead ID")
		return
	}

	lead, err := h.leadService.GetLead(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Lead retrieved successfully", lead)
}

// Update handles updating a lead
func (h *LeadHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid lead ID")
		return
	}

	var req struct {
		ContactPersonName *string          `json:"contact_person_name"`
		CompanyName       *string          `json:"company_name"`
		Email             *string          `json:"email"`
		Phone             *string          `json:"phone"`
		Address           *string          `json:"address"`
		LeadStatus        *enum.LeadStatus `json:"lead_status"`
		LeadSource        *string          `json:"lead_source"`
		SalesPersonName   *string          `json:"sales_person_name"`
		Notes             *string          `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	lead, err := h.leadService.UpdateLead(c.Request.Context(), &service.UpdateLeadInput{
		ID:                id,
		ContactPersonName: req.ContactPersonName,
		CompanyName:       req.CompanyName,
		Email:             req.Email,
		Phone:             req.Phone,
		Address:           req.Address,
		LeadStatus:        req.LeadStatus,
		LeadSource:        req.LeadSource,
		SalesPersonName:   req.SalesPersonName,
		Notes:             req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Lead updated successfully", lead)
}

// Convert handles converting a lead into a customer
func (h *LeadHandler) Convert(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid lead ID")
		return
	}

	customer, err := h.leadService.ConvertLead(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Lead converted successfully", customer)
}

// Delete handles deleting a lead
func (h *LeadHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid lead ID")
		return
	}

	if err := h.leadService.DeleteLead(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
