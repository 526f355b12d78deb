package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/mwaniki/serviceos-api/internal/domain/entity"
	"github.com/mwaniki/serviceos-api/pkg/pagination"
)

// CustomerRepository defines the interface for customer data operations.
// All reads are scoped to the company carried on the context.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
	// GetByIDs returns the customers for the given id set, keyed by id.
	// Missing ids are simply absent from the result.
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error)
	Count(ctx context.Context) (int64, error)
}

// StaffRepository defines the interface for staff data operations
type StaffRepository interface {
	Create(ctx context.Context, staff *entity.Staff) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Staff, error)
	// GetByIDs returns the staff members for the given id set, keyed by id
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]entity.Staff, error)
	Update(ctx context.Context, staff *entity.Staff) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Staff, int64, error)
	// ListActive returns active staff ordered by name, for dropdowns
	ListActive(ctx context.Context) ([]entity.Staff, error)
}

// LeadRepository defines the interface for lead data operations
type LeadRepository interface {
	Create(ctx context.Context, lead *entity.Lead) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Lead, error)
	Update(ctx context.Context, lead *entity.Lead) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Lead, int64, error)
	ListRecent(ctx context.Context, limit int) ([]entity.Lead, error)
	Count(ctx context.Context) (int64, error)
}
