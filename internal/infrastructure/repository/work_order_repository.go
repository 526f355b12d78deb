package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/mwaniki/serviceos-api/internal/domain/entity"
	"github.com/mwaniki/serviceos-api/internal/domain/enum"
	domainRepo "github.com/mwaniki/serviceos-api/internal/domain/repository"
	"github.com/mwaniki/serviceos-api/pkg/pagination"
	"gorm.io/gorm"
)

type workOrderRepository struct {
	db *gorm.DB
}

// NewWorkOrderRepository creates a new work order repository
func NewWorkOrderRepository(db *gorm.DB) domainRepo.WorkOrderRepository {
	return &workOrderRepository{db: db}
}

func (r *workOrderRepository) Create(ctx context.Context, order *entity.WorkOrder) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *workOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.WorkOrder, error) {
	var order entity.WorkOrder
	err := r.db.WithContext(ctx).Scopes(CompanyScope(ctx)).
		Preload("Customer").
		Preload("Staff").
		Preload("StockUsage").
		Preload("StockUsage.StockItem").
		First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *workOrderRepository) Update(ctx context.Context, order *entity.WorkOrder) error {
	return r.db.WithContext(ctx).Save(order).Error
}

func (r *workOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Scopes(CompanyScope(ctx)).Delete(&entity.WorkOrder{}, "id = ?", id).Error
}

func (r *workOrderRepository) List(ctx context.Context, params *domainRepo.WorkOrderFilterParams) ([]entity.WorkOrder, int64, error) {
	var orders []entity.WorkOrder
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.WorkOrder{}).Scopes(CompanyScope(ctx))

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}
	if params.StaffID != nil {
		query = query.Where("staff_id = ?", *params.StaffID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Customer").
		Preload("Staff").
		Order("date DESC, time ASC").
		Find(&orders).Error

	return orders, total, err
}

func (r *workOrderRepository) ListAfter(ctx context.Context, cursor *pagination.Cursor, limit int) ([]entity.WorkOrder, error) {
	query := r.db.WithContext(ctx).Scopes(CompanyScope(ctx))

	if cursor != nil {
		// Keyset on (created_at, id) so rows created in the same instant
		// still page deterministically
		query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	var orders []entity.WorkOrder
	err := query.
		Preload("Customer").
		Preload("Staff").
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&orders).Error

	return orders, err
}

func (r *workOrderRepository) ListForFinancials(ctx context.Context, params domainRepo.FinancialRangeParams) ([]entity.WorkOrder, error) {
	var orders []entity.WorkOrder

	query := r.db.WithContext(ctx).Scopes(CompanyScope(ctx)).
		Where("status IN ?", []enum.WorkOrderStatus{enum.WorkOrderStatusCompleted, enum.WorkOrderStatusInvoiced}).
		Where("created_at >= ? AND created_at <= ?", params.Start, params.End)

	if params.StaffID != nil {
		query = query.Where("staff_id = ?", *params.StaffID)
	}
	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}

	err := query.
		Preload("Customer").
		Preload("Staff").
		Preload("StockUsage").
		Order("created_at ASC").
		Find(&orders).Error

	return orders, err
}

func (r *workOrderRepository) ListForDay(ctx context.Context, day time.Time) ([]entity.WorkOrder, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24 * time.Hour)

	var orders []entity.WorkOrder
	err := r.db.WithContext(ctx).Scopes(CompanyScope(ctx)).
		Where("date >= ? AND date < ?", start, end).
		Where("status <> ?", enum.WorkOrderStatusCancelled).
		Preload("Customer").
		Order("time ASC").
		Find(&orders).Error
	return orders, err
}

func (r *workOrderRepository) CountUpcoming(ctx context.Context, after time.Time) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&entity.WorkOrder{}).Scopes(CompanyScope(ctx)).
		Where("date > ?", after).
		Where("status IN ?", []enum.WorkOrderStatus{enum.WorkOrderStatusScheduled, enum.WorkOrderStatusInProgress}).
		Count(&total).Error
	return total, err
}

func (r *workOrderRepository) CountByStatus(ctx context.Context) ([]domainRepo.StatusCount, error) {
	var results []domainRepo.StatusCount
	err := r.db.WithContext(ctx).Model(&entity.WorkOrder{}).Scopes(CompanyScope(ctx)).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&results).Error
	return results, err
}

func (r *workOrderRepository) CountCompleted(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&entity.WorkOrder{}).Scopes(CompanyScope(ctx)).
		Where("status = ?", enum.WorkOrderStatusCompleted).
		Count(&total).Error
	return total, err
}

func (r *workOrderRepository) ListRecent(ctx context.Context, limit int) ([]entity.WorkOrder, error) {
	var orders []entity.WorkOrder
	err := r.db.WithContext(ctx).Scopes(CompanyScope(ctx)).
		Preload("Customer").
		Order("created_at DESC").
		Limit(limit).
		Find(&orders).Error
	return orders, err
}
