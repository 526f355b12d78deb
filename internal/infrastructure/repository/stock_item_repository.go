package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/mwaniki/serviceos-api/internal/domain/entity"
	domainRepo "github.com/mwaniki/serviceos-api/internal/domain/repository"
	"gorm.io/gorm"
)

type stockItemRepository struct {
	db *gorm.DB
}

// NewStockItemRepository creates a new stock item repository
func NewStockItemRepository(db *gorm.DB) domainRepo.StockItemRepository {
	return &stockItemRepository{db: db}
}

func (r *stockItemRepository) Create(ctx context.Context, item *entity.StockItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *stockItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.StockItem, error) {
	var item entity.StockItem
	err := r.db.WithContext(ctx).Scopes(CompanyScope(ctx)).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &item, err
}

func (r *stockItemRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]entity.StockItem, error) {
	result := make(map[uuid.UUID]entity.StockItem, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var items []entity.StockItem
	err := r.db.WithContext(ctx).Scopes(CompanyScope(ctx)).Find(&items, "id IN ?", ids).Error
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		result[item.ID] = item
	}
	return result, nil
}

func (r *stockItemRepository) Update(ctx context.Context, item *entity.StockItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *stockItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Scopes(CompanyScope(ctx)).Delete(&entity.StockItem{}, "id = ?", id).Error
}

func (r *stockItemRepository) List(ctx context.Context, params *domainRepo.StockItemFilterParams) ([]entity.StockItem, int64, error) {
	var items []entity.StockItem
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.StockItem{}).Scopes(CompanyScope(ctx))

	if params.Search != "" {
		query = query.Where("name ILIKE ? OR sku ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%")
	}
	if params.LowStock {
		query = query.Where("stock_quantity < reorder_level")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("name ASC").
		Find(&items).Error

	return items, total, err
}

func (r *stockItemRepository) CountLowStock(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&entity.StockItem{}).Scopes(CompanyScope(ctx)).
		Where("stock_quantity < reorder_level").
		Count(&total).Error
	return total, err
}
