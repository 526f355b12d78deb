package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/mwaniki/serviceos-api/internal/domain/entity"
	"github.com/mwaniki/serviceos-api/pkg/pagination"
)

// StockItemFilterParams holds filter options for stock item listings
type StockItemFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	LowStock   bool
}

// StockItemRepository defines the interface for stock item data operations
type StockItemRepository interface {
	Create(ctx context.Context, item *entity.StockItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.StockItem, error)
	// GetByIDs returns the stock items for the given id set, keyed by id.
	// The financial rollup uses this to price usage lines.
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]entity.StockItem, error)
	Update(ctx context.Context, item *entity.StockItem) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *StockItemFilterParams) ([]entity.StockItem, int64, error)
	// CountLowStock counts items whose quantity is below their reorder level
	CountLowStock(ctx context.Context) (int64, error)
}
