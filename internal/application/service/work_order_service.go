package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mwaniki/serviceos-api/internal/domain/entity"
	"github.com/mwaniki/serviceos-api/internal/domain/enum"
	"github.com/mwaniki/serviceos-api/internal/domain/repository"
	infraRepo "github.com/mwaniki/serviceos-api/internal/infrastructure/repository"
	"github.com/mwaniki/serviceos-api/pkg/apperror"
	"github.com/mwaniki/serviceos-api/pkg/pagination"
)

// WorkOrderService handles work order operations
type WorkOrderService struct {
	workOrderRepo repository.WorkOrderRepository
	stockItemRepo repository.StockItemRepository
}

// NewWorkOrderService creates a new work order service
func NewWorkOrderService(workOrderRepo repository.WorkOrderRepository, stockItemRepo repository.StockItemRepository) *WorkOrderService {
	return &WorkOrderService{workOrderRepo: workOrderRepo, stockItemRepo: stockItemRepo}
}

// StockUsageInput is one material line of a work order
type StockUsageInput struct {
	StockItemID uuid.UUID
	Quantity    int
}

// CreateWorkOrderInput represents the create work order input
type CreateWorkOrderInput struct {
	CustomerID  *uuid.UUID
	StaffID     *uuid.UUID
	ServiceType string
	Date        time.Time
	Time        string
	Street      *string
	City        *string
	Notes       *string
	StockUsage  []StockUsageInput
}

// CreateWorkOrder creates a new work order and deducts the used stock
func (s *WorkOrderService) CreateWorkOrder(ctx context.Context, input *CreateWorkOrderInput) (*entity.WorkOrder, error) {
	companyID, ok := infraRepo.GetCompanyID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Company context required")
	}

	usage := make([]entity.WorkOrderStockUsage, 0, len(input.StockUsage))
	for _, line := range input.StockUsage {
		if line.Quantity <= 0 {
			return nil, apperror.NewBadRequestError("Stock usage quantity must be positive")
		}
		item, err := s.stockItemRepo.GetByID(ctx, line.StockItemID)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, apperror.NewNotFoundError("Stock item")
		}
		usage = append(usage, entity.WorkOrderStockUsage{
			StockItemID: line.StockItemID,
			Quantity:    line.Quantity,
		})
	}

	order := &entity.WorkOrder{
		CompanyID:   companyID,
		CustomerID:  input.CustomerID,
		StaffID:     input.StaffID,
		ServiceType: input.ServiceType,
		Status:      enum.WorkOrderStatusScheduled,
		Date:        input.Date,
		Time:        input.Time,
		Street:      input.Street,
		City:        input.City,
		Notes:       input.Notes,
		StockUsage:  usage,
	}

	if err := s.workOrderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	for _, line := range input.StockUsage {
		item, err := s.stockItemRepo.GetByID(ctx, line.StockItemID)
		if err != nil {
			return nil, err
		}
		if item == nil {
			continue
		}
		item.StockQuantity -= line.Quantity
		if err := s.stockItemRepo.Update(ctx, item); err != nil {
			return nil, err
		}
	}

	return order, nil
}

// GetWorkOrder retrieves a work order by ID
func (s *WorkOrderService) GetWorkOrder(ctx context.Context, id uuid.UUID) (*entity.WorkOrder, error) {
	order, err := s.workOrderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Work order")
	}
	return order, nil
}

// ListWorkOrders lists work orders for the company on the context
func (s *WorkOrderService) ListWorkOrders(ctx context.Context, params *repository.WorkOrderFilterParams) (*pagination.PaginatedResult[entity.WorkOrder], error) {
	orders, total, err := s.workOrderRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(orders, pag), nil
}

// ListWorkOrdersFeed lists work orders newest first behind an opaque
// cursor, for clients that scroll instead of jumping to pages
func (s *WorkOrderService) ListWorkOrdersFeed(ctx context.Context, params *pagination.CursorParams) (*pagination.CursorPaginatedResult[entity.WorkOrder], error) {
	params.Validate()

	cursor, err := params.DecodeCursor()
	if err != nil {
		return nil, apperror.NewBadRequestError("Invalid cursor")
	}

	// Fetch one extra row to detect whether another page exists
	orders, err := s.workOrderRepo.ListAfter(ctx, cursor, params.Limit+1)
	if err != nil {
		return nil, err
	}

	pag, orders := pagination.NewCursorPagination(orders, params.Limit,
		func(o entity.WorkOrder) string { return o.ID.String() },
		func(o entity.WorkOrder) time.Time { return o.CreatedAt })
	pag.HasPrev = cursor != nil

	return pagination.NewCursorPaginatedResult(orders, pag), nil
}

// UpdateWorkOrderInput represents the update work order input
type UpdateWorkOrderInput struct {
	ID          uuid.UUID
	CustomerID  *uuid.UUID
	StaffID     *uuid.UUID
	ServiceType *string
	Status      *enum.WorkOrderStatus
	Date        *time.Time
	Time        *string
	Street      *string
	City        *string
	Notes       *string
}

// UpdateWorkOrder updates a work order
func (s *WorkOrderService) UpdateWorkOrder(ctx context.Context, input *UpdateWorkOrderInput) (*entity.WorkOrder, error) {
	order, err := s.workOrderRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Work order")
	}

	if input.CustomerID != nil {
		order.CustomerID = input.CustomerID
	}
	if input.StaffID != nil {
		order.StaffID = input.StaffID
	}
	if input.ServiceType != nil {
		order.ServiceType = *input.ServiceType
	}
	if input.Status != nil {
		if order.Status == enum.WorkOrderStatusCancelled {
			return nil, apperror.NewConflictError("Cancelled work orders cannot change status")
		}
		order.Status = *input.Status
	}
	if input.Date != nil {
		order.Date = *input.Date
	}
	if input.Time != nil {
		order.Time = *input.Time
	}
	if input.Street != nil {
		order.Street = input.Street
	}
	if input.City != nil {
		order.City = input.City
	}
	if input.Notes != nil {
		order.Notes = input.Notes
	}

	if err := s.workOrderRepo.Update(ctx, order); err != nil {
		return nil, err
	}

	return order, nil
}

// DeleteWorkOrder deletes a work order
func (s *WorkOrderService) DeleteWorkOrder(ctx context.Context, id uuid.UUID) error {
	order, err := s.workOrderRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if order == nil {
		return apperror.NewNotFoundError("Work order")
	}

	return s.workOrderRepo.Delete(ctx, id)
}
