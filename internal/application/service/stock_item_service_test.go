package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwaniki/serviceos-api/internal/domain/entity"
	"github.com/mwaniki/serviceos-api/internal/domain/repository"
	"github.com/mwaniki/serviceos-api/pkg/apperror"
)

type fakeStockCrudRepo struct {
	repository.StockItemRepository
	created []*entity.StockItem
}

func (f *fakeStockCrudRepo) Create(ctx context.Context, item *entity.StockItem) error {
	f.created = append(f.created, item)
	return nil
}

func TestCreateStockItem_GeneratesSKU(t *testing.T) {
	repo := &fakeStockCrudRepo{}
	svc := NewStockItemService(repo)

	item, err := svc.CreateStockItem(companyContext(), &CreateStockItemInput{
		Name:          "Copper Pipe",
		PurchasePrice: 12.75,
		StockQuantity: 30,
		ReorderLevel:  5,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1275), item.PurchasePrice)
	assert.True(t, strings.HasPrefix(item.SKU, "SKU-"))
}

func TestCreateStockItem_KeepsProvidedSKU(t *testing.T) {
	repo := &fakeStockCrudRepo{}
	svc := NewStockItemService(repo)

	sku := "PIPE-15MM"
	item, err := svc.CreateStockItem(companyContext(), &CreateStockItemInput{
		Name: "Copper Pipe",
		SKU:  &sku,
	})
	require.NoError(t, err)
	assert.Equal(t, "PIPE-15MM", item.SKU)
}

func TestCreateStockItem_RequiresCompany(t *testing.T) {
	svc := NewStockItemService(&fakeStockCrudRepo{})
	_, err := svc.CreateStockItem(context.Background(), &CreateStockItemInput{Name: "x"})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}
