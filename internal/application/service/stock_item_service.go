package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/mwaniki/serviceos-api/internal/domain/entity"
	"github.com/mwaniki/serviceos-api/internal/domain/repository"
	infraRepo "github.com/mwaniki/serviceos-api/internal/infrastructure/repository"
	"github.com/mwaniki/serviceos-api/pkg/apperror"
	"github.com/mwaniki/serviceos-api/pkg/pagination"
	"github.com/mwaniki/serviceos-api/pkg/utils"
)

// StockItemService handles inventory operations
type StockItemService struct {
	stockItemRepo repository.StockItemRepository
}

// NewStockItemService creates a new stock item service
func NewStockItemService(stockItemRepo repository.StockItemRepository) *StockItemService {
	return &StockItemService{stockItemRepo: stockItemRepo}
}

// CreateStockItemInput represents the create stock item input
type CreateStockItemInput struct {
	Name          string
	SKU           *string
	PurchasePrice float64
	StockQuantity int
	ReorderLevel  int
	Notes         *string
}

// CreateStockItem creates a new stock item
func (s *StockItemService) CreateStockItem(ctx context.Context, input *CreateStockItemInput) (*entity.StockItem, error) {
	companyID, ok := infraRepo.GetCompanyID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Company context required")
	}

	item := &entity.StockItem{
		CompanyID:     companyID,
		Name:          input.Name,
		StockQuantity: input.StockQuantity,
		ReorderLevel:  input.ReorderLevel,
		Notes:         input.Notes,
	}
	item.SetPurchasePriceFromDecimal(input.PurchasePrice)

	if input.SKU != nil && *input.SKU != "" {
		item.SKU = *input.SKU
	} else {
		item.SKU = utils.GenerateSKU()
	}

	if err := s.stockItemRepo.Create(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

// GetStockItem retrieves a stock item by ID
func (s *StockItemService) GetStockItem(ctx context.Context, id uuid.UUID) (*entity.StockItem, error) {
	item, err := s.stockItemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Stock item")
	}
	return item, nil
}

// ListStockItems lists stock items for the company on the context
func (s *StockItemService) ListStockItems(ctx context.Context, params *pagination.PaginationParams, search string, lowStock bool) (*pagination.PaginatedResult[entity.StockItem], error) {
	filterParams := &repository.StockItemFilterParams{
		Pagination: params,
		Search:     search,
		LowStock:   lowStock,
	}
	items, total, err := s.stockItemRepo.List(ctx, filterParams)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(items, pag), nil
}

// UpdateStockItemInput represents the update stock item input
type UpdateStockItemInput struct {
	ID            uuid.UUID
	Name          *string
	SKU           *string
	PurchasePrice *float64
	StockQuantity *int
	ReorderLevel  *int
	Notes         *string
}

// UpdateStockItem updates a stock item
func (s *StockItemService) UpdateStockItem(ctx context.Context, input *UpdateStockItemInput) (*entity.StockItem, error) {
	item, err := s.stockItemRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Stock item")
	}

	if input.Name != nil {
		item.Name = *input.Name
	}
	if input.SKU != nil {
		item.SKU = *input.SKU
	}
	if input.PurchasePrice != nil {
		item.SetPurchasePriceFromDecimal(*input.PurchasePrice)
	}
	if input.StockQuantity != nil {
		item.StockQuantity = *input.StockQuantity
	}
	if input.ReorderLevel != nil {
		item.ReorderLevel = *input.ReorderLevel
	}
	if input.Notes != nil {
		item.Notes = input.Notes
	}

	if err := s.stockItemRepo.Update(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

// DeleteStockItem deletes a stock item
func (s *StockItemService) DeleteStockItem(ctx context.Context, id uuid.UUID) error {
	item, err := s.stockItemRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if item == nil {
		return apperror.NewNotFoundError("Stock item")
	}

	return s.stockItemRepo.Delete(ctx, id)
}
