package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/mwaniki/serviceos-api/internal/domain/entity"
	"github.com/mwaniki/serviceos-api/internal/domain/enum"
	"github.com/mwaniki/serviceos-api/pkg/pagination"
)

// InvoiceFilterParams holds filter options for invoice listings
type InvoiceFilterParams struct {
	Pagination *pagination.PaginationParams
	Status     *enum.InvoiceStatus
	CustomerID *uuid.UUID
}

// InvoiceRepository defines the interface for invoice data operations
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	Update(ctx context.Context, invoice *entity.Invoice) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *InvoiceFilterParams) ([]entity.Invoice, int64, error)

	// ListByWorkOrderIDs returns every invoice referencing one of the
	// given work orders. The rollup detects duplicate references itself,
	// so no deduplication happens here.
	ListByWorkOrderIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Invoice, error)

	// ListOpenByStatus returns invoices in any of the given statuses with
	// a positive balance due, company-scoped and independent of any date
	// range
	ListOpenByStatus(ctx context.Context, statuses []enum.InvoiceStatus) ([]entity.Invoice, error)

	// SumPaidTotal sums the totals of paid and completed invoices, in cents
	SumPaidTotal(ctx context.Context) (int64, error)
	ListRecent(ctx context.Context, limit int) ([]entity.Invoice, error)
}
