package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/mwaniki/serviceos-api/internal/domain/entity"
	"github.com/mwaniki/serviceos-api/internal/domain/enum"
	"github.com/mwaniki/serviceos-api/internal/domain/repository"
	infraRepo "github.com/mwaniki/serviceos-api/internal/infrastructure/repository"
	"github.com/mwaniki/serviceos-api/pkg/apperror"
	"github.com/mwaniki/serviceos-api/pkg/pagination"
)

// LeadService handles lead-related operations
type LeadService struct {
	leadRepo     repository.LeadRepository
	customerRepo repository.CustomerRepository
}

// NewLeadService creates a new lead service
func NewLeadService(leadRepo repository.LeadRepository, customerRepo repository.CustomerRepository) *LeadService {
	return &LeadService{leadRepo: leadRepo, customerRepo: customerRepo}
}

// CreateLeadInput represents the create lead input
type CreateLeadInput struct {
	CreatedByID       uuid.UUID
	ContactPersonName string
	CompanyName       *string
	Email             *string
	Phone             *string
	Address           *string
	LeadSource        *string
	SalesPersonName   *string
	Notes             *string
}

// CreateLead creates a new lead
func (s *LeadService) CreateLead(ctx context.Context, input *CreateLeadInput) (*entity.Lead, error) {
	companyID, ok := infraRepo.GetCompanyID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Company context required")
	}

	lead := &entity.Lead{
		CompanyID:         companyID,
		CreatedByID:       input.CreatedByID,
		ContactPersonName: input.ContactPersonName,
		CompanyName:       input.CompanyName,
		Email:             input.Email,
		Phone:             input.Phone,
		Address:           input.Address,
		LeadStatus:        enum.LeadStatusNew,
		LeadSource:        input.LeadSource,
		SalesPersonName:   input.SalesPersonName,
		Notes:             input.Notes,
	}

	if err := s.leadRepo.Create(ctx, lead); err != nil {
		return nil, err
	}

	return lead, nil
}

// GetLead retrieves a lead by ID
func (s *LeadService) GetLead(ctx context.Context, id uuid.UUID) (*entity.Lead, error) {
	lead, err := s.leadRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, apperror.NewNotFoundError("Lead")
	}
	return lead, nil
}

// ListLeads lists leads for the company on the context
func (s *LeadService) ListLeads(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Lead], error) {
	leads, total, err := s.leadRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(leads, pag), nil
}

// UpdateLeadInput represents the update lead input
type UpdateLeadInput struct {
	ID                uuid.UUID
	ContactPersonName *string
	CompanyName       *string
	Email             *string
	Phone             *string
	Address           *string
	LeadStatus        *enum.LeadStatus
	LeadSource        *string
	SalesPersonName   *string
	Notes             *string
}

// UpdateLead updates a lead
func (s *LeadService) UpdateLead(ctx context.Context, input *UpdateLeadInput) (*entity.Lead, error) {
	lead, err := s.leadRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, apperror.NewNotFoundError("Lead")
	}

	if input.ContactPersonName != nil {
		lead.ContactPersonName = *input.ContactPersonName
	}
	if input.CompanyName != nil {
		lead.CompanyName = input.CompanyName
	}
	if input.Email != nil {
		lead.Email = input.Email
	}
	if input.Phone != nil {
		lead.Phone = input.Phone
	}
	if input.Address != nil {
		lead.Address = input.Address
	}
	if input.LeadStatus != nil {
		lead.LeadStatus = *input.LeadStatus
	}
	if input.LeadSource != nil {
		lead.LeadSource = input.LeadSource
	}
	if input.SalesPersonName != nil {
		lead.SalesPersonName = input.SalesPersonName
	}
	if input.Notes != nil {
		lead.Notes = input.Notes
	}

	if err := s.leadRepo.Update(ctx, lead); err != nil {
		return nil, err
	}

	return lead, nil
}

// ConvertLead converts a lead into a customer and marks it converted
func (s *LeadService) ConvertLead(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	lead, err := s.leadRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, apperror.NewNotFoundError("Lead")
	}
	if lead.LeadStatus == enum.LeadStatusConverted {
		return nil, apperror.NewConflictError("Lead already converted")
	}

	customer := &entity.Customer{
		CompanyID:         lead.CompanyID,
		ContactPersonName: lead.ContactPersonName,
		CompanyName:       lead.CompanyName,
		Email:             lead.Email,
		Phone:             lead.Phone,
		Address:           lead.Address,
		Notes:             lead.Notes,
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}

	lead.LeadStatus = enum.LeadStatusConverted
	if err := s.leadRepo.Update(ctx, lead); err != nil {
		return nil, err
	}

	return customer, nil
}

// DeleteLead deletes a lead
func (s *LeadService) DeleteLead(ctx context.Context, id uuid.UUID) error {
	lead, err := s.leadRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if lead == nil {
		return apperror.NewNotFoundError("Lead")
	}

	return s.leadRepo.Delete(ctx, id)
}
