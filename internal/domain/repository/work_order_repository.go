package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mwaniki/serviceos-api/internal/domain/entity"
	"github.com/mwaniki/serviceos-api/internal/domain/enum"
	"github.com/mwaniki/serviceos-api/pkg/pagination"
)

// WorkOrderFilterParams holds filter options for work order listings
type WorkOrderFilterParams struct {
	Pagination *pagination.PaginationParams
	Status     *enum.WorkOrderStatus
	CustomerID *uuid.UUID
	StaffID    *uuid.UUID
}

// FinancialRangeParams scopes the work orders feeding the financial
// rollup: billable statuses (Completed, Invoiced) created inside
// [Start, End], optionally narrowed to one staff member or customer.
// Staff/customer filters apply here, before the join fan-out.
type FinancialRangeParams struct {
	Start      time.Time
	End        time.Time
	StaffID    *uuid.UUID
	CustomerID *uuid.UUID
}

// StatusCount pairs a work order status with its record count
type StatusCount struct {
	Status enum.WorkOrderStatus
	Count  int64
}

// WorkOrderRepository defines the interface for work order data operations
type WorkOrderRepository interface {
	Create(ctx context.Context, order *entity.WorkOrder) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.WorkOrder, error)
	Update(ctx context.Context, order *entity.WorkOrder) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *WorkOrderFilterParams) ([]entity.WorkOrder, int64, error)

	// ListAfter returns up to limit work orders strictly older than the
	// cursor position, newest first. A nil cursor starts from the newest
	// record.
	ListAfter(ctx context.Context, cursor *pagination.Cursor, limit int) ([]entity.WorkOrder, error)

	// ListForFinancials returns billable work orders in the range with
	// staff, customer and stock usage loaded
	ListForFinancials(ctx context.Context, params FinancialRangeParams) ([]entity.WorkOrder, error)

	// ListForDay returns non-cancelled work orders scheduled on the given
	// day, ordered by time, with customers loaded
	ListForDay(ctx context.Context, day time.Time) ([]entity.WorkOrder, error)
	// CountUpcoming counts open work orders scheduled after the given day
	CountUpcoming(ctx context.Context, after time.Time) (int64, error)
	CountByStatus(ctx context.Context) ([]StatusCount, error)
	CountCompleted(ctx context.Context) (int64, error)
	ListRecent(ctx context.Context, limit int) ([]entity.WorkOrder, error)
}
