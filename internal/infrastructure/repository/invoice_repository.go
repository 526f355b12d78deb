package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/mwaniki/serviceos-api/internal/domain/entity"
	"github.com/mwaniki/serviceos-api/internal/domain/enum"
	domainRepo "github.com/mwaniki/serviceos-api/internal/domain/repository"
	"gorm.io/gorm"
)

type invoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db *gorm.DB) domainRepo.InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) Create(ctx context.Context, invoice *entity.Invoice) error {
	return r.db.WithContext(ctx).Create(invoice).Error
}

func (r *invoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := r.db.WithContext(ctx).Scopes(CompanyScope(ctx)).
		Preload("Customer").
		Preload("WorkOrder").
		First(&invoice, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &invoice, err
}

func (r *invoiceRepository) Update(ctx context.Context, invoice *entity.Invoice) error {
	return r.db.WithContext(ctx).Save(invoice).Error
}

func (r *invoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Scopes(CompanyScope(ctx)).Delete(&entity.Invoice{}, "id = ?", id).Error
}

func (r *invoiceRepository) List(ctx context.Context, params *domainRepo.InvoiceFilterParams) ([]entity.Invoice, int64, error) {
	var invoices []entity.Invoice
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Invoice{}).Scopes(CompanyScope(ctx))

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Customer").
		Order("created_at DESC").
		Find(&invoices).Error

	return invoices, total, err
}

// ListByWorkOrderIDs returns every invoice that references one of the given
// work orders. Duplicate references are returned as-is so callers can detect
// them.
func (r *invoiceRepository) ListByWorkOrderIDs(ctx context.Context, orderIDs []uuid.UUID) ([]entity.Invoice, error) {
	if len(orderIDs) == 0 {
		return nil, nil
	}
	var invoices []entity.Invoice
	err := r.db.WithContext(ctx).Scopes(CompanyScope(ctx)).
		Where("work_order_id IN ?", orderIDs).
		Find(&invoices).Error
	return invoices, err
}

func (r *invoiceRepository) ListOpenByStatus(ctx context.Context, statuses []enum.InvoiceStatus) ([]entity.Invoice, error) {
	var invoices []entity.Invoice
	err := r.db.WithContext(ctx).Scopes(CompanyScope(ctx)).
		Where("status IN ?", statuses).
		Where("balance_due > 0").
		Preload("Customer").
		Find(&invoices).Error
	return invoices, err
}

func (r *invoiceRepository) SumPaidTotal(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&entity.Invoice{}).Scopes(CompanyScope(ctx)).
		Where("status IN ?", []enum.InvoiceStatus{enum.InvoiceStatusPaid, enum.InvoiceStatusCompleted}).
		Select("COALESCE(SUM(total), 0)").
		Scan(&total).Error
	return total, err
}

func (r *invoiceRepository) ListRecent(ctx context.Context, limit int) ([]entity.Invoice, error) {
	var invoices []entity.Invoice
	err := r.db.WithContext(ctx).Scopes(CompanyScope(ctx)).
		Preload("Customer").
		Order("created_at DESC").
		Limit(limit).
		Find(&invoices).Error
	return invoices, err
}
