package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/mwaniki/serviceos-api/internal/domain/entity"
	"github.com/mwaniki/serviceos-api/internal/domain/repository"
	infraRepo "github.com/mwaniki/serviceos-api/internal/infrastructure/repository"
	"github.com/mwaniki/serviceos-api/pkg/apperror"
	"github.com/mwaniki/serviceos-api/pkg/pagination"
)

// CustomerService handles customer-related operations
type CustomerService struct {
	customerRepo repository.CustomerRepository
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo repository.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// CreateCustomerInput represents the create customer input
type CreateCustomerInput struct {
	ContactPersonName string
	CompanyName       *string
	Email             *string
	Phone             *string
	Address           *string
	Notes             *string
}

// CreateCustomer creates a new customer
func (s *CustomerService) CreateCustomer(ctx context.Context, input *CreateCustomerInput) (*entity.Customer, error) {
	companyID, ok := infraRepo.GetCompanyID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Company context required")
	}

	customer := &entity.Customer{
		CompanyID:         companyID,
		ContactPersonName: input.ContactPersonName,
		CompanyName:       input.CompanyName,
		Email:             input.Email,
		Phone:             input.Phone,
		Address:           input.Address,
		Notes:             input.Notes,
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}

	return customer, nil
}

// GetCustomer retrieves a customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// ListCustomers lists customers for the company on the context
func (s *CustomerService) ListCustomers(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Customer], error) {
	customers, total, err := s.customerRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(customers, pag), nil
}

// UpdateCustomerInput represents the update customer input
type UpdateCustomerInput struct {
	ID                uuid.UUID
	ContactPersonName *string
	CompanyName       *string
	Email             *string
	Phone             *string
	Address           *string
	Notes             *string
}

// UpdateCustomer updates a customer
func (s *CustomerService) UpdateCustomer(ctx context.Context, input *UpdateCustomerInput) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	if input.ContactPersonName != nil {
		customer.ContactPersonName = *input.ContactPersonName
	}
	if input.CompanyName != nil {
		customer.CompanyName = input.CompanyName
	}
	if input.Email != nil {
		customer.Email = input.Email
	}
	if input.Phone != nil {
		customer.Phone = input.Phone
	}
	if input.Address != nil {
		customer.Address = input.Address
	}
	if input.Notes != nil {
		customer.Notes = input.Notes
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}

	return customer, nil
}

// DeleteCustomer deletes a customer
func (s *CustomerService) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if customer == nil {
		return apperror.NewNotFoundError("Customer")
	}

	return s.customerRepo.Delete(ctx, id)
}

// StaffService handles staff-related operations
type StaffService struct {
	staffRepo repository.StaffRepository
}

// NewStaffService creates a new staff service
func NewStaffService(staffRepo repository.StaffRepository) *StaffService {
	return &StaffService{staffRepo: staffRepo}
}

// CreateStaffInput represents the create staff input
type CreateStaffInput struct {
	ContactPersonName string
	Email             *string
	Phone             *string
	Position          *string
}

// CreateStaff creates a new staff member
func (s *StaffService) CreateStaff(ctx context.Context, input *CreateStaffInput) (*entity.Staff, error) {
	companyID, ok := infraRepo.GetCompanyID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Company context required")
	}

	staff := &entity.Staff{
		CompanyID:         companyID,
		ContactPersonName: input.ContactPersonName,
		Email:             input.Email,
		Phone:             input.Phone,
		Position:          input.Position,
		IsActive:          true,
	}

	if err := s.staffRepo.Create(ctx, staff); err != nil {
		return nil, err
	}

	return staff, nil
}

// GetStaff retrieves a staff member by ID
func (s *StaffService) GetStaff(ctx context.Context, id uuid.UUID) (*entity.Staff, error) {
	staff, err := s.staffRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if staff == nil {
		return nil, apperror.NewNotFoundError("Staff member")
	}
	return staff, nil
}

// ListStaff lists staff members for the company on the context
func (s *StaffService) ListStaff(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Staff], error) {
	staff, total, err := s.staffRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(staff, pag), nil
}

// ListActiveStaff lists active staff members for assignment dropdowns
func (s *StaffService) ListActiveStaff(ctx context.Context) ([]entity.Staff, error) {
	return s.staffRepo.ListActive(ctx)
}

// UpdateStaffInput represents the update staff input
type UpdateStaffInput struct {
	ID                uuid.UUID
	ContactPersonName *string
	Email             *string
	Phone             *string
	Position          *string
	IsActive          *bool
}

// UpdateStaff updates a staff member
func (s *StaffService) UpdateStaff(ctx context.Context, input *UpdateStaffInput) (*entity.Staff, error) {
	staff, err := s.staffRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if staff == nil {
		return nil, apperror.NewNotFoundError("Staff member")
	}

	if input.ContactPersonName != nil {
		staff.ContactPersonName = *input.ContactPersonName
	}
	if input.Email != nil {
		staff.Email = input.Email
	}
	if input.Phone != nil {
		staff.Phone = input.Phone
	}
	if input.Position != nil {
		staff.Position = input.Position
	}
	if input.IsActive != nil {
		staff.IsActive = *input.IsActive
	}

	if err := s.staffRepo.Update(ctx, staff); err != nil {
		return nil, err
	}

	return staff, nil
}

// DeleteStaff deletes a staff member
func (s *StaffService) DeleteStaff(ctx context.Context, id uuid.UUID) error {
	staff, err := s.staffRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if staff == nil {
		return apperror.NewNotFoundError("Staff member")
	}

	return s.staffRepo.Delete(ctx, id)
}
