package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwaniki/serviceos-api/internal/domain/entity"
	"github.com/mwaniki/serviceos-api/internal/domain/enum"
	"github.com/mwaniki/serviceos-api/internal/domain/repository"
	"github.com/mwaniki/serviceos-api/pkg/apperror"
	"github.com/mwaniki/serviceos-api/pkg/pagination"
)

type fakeOrderCrudRepo struct {
	repository.WorkOrderRepository
	byID       map[uuid.UUID]*entity.WorkOrder
	created    []*entity.WorkOrder
	feed       []entity.WorkOrder
	lastCursor *pagination.Cursor
}

func newFakeOrderCrudRepo() *fakeOrderCrudRepo {
	return &fakeOrderCrudRepo{byID: make(map[uuid.UUID]*entity.WorkOrder)}
}

func (f *fakeOrderCrudRepo) Create(ctx context.Context, order *entity.WorkOrder) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	f.byID[order.ID] = order
	f.created = append(f.created, order)
	return nil
}

func (f *fakeOrderCrudRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.WorkOrder, error) {
	return f.byID[id], nil
}

func (f *fakeOrderCrudRepo) Update(ctx context.Context, order *entity.WorkOrder) error {
	f.byID[order.ID] = order
	return nil
}

func (f *fakeOrderCrudRepo) ListAfter(ctx context.Context, cursor *pagination.Cursor, limit int) ([]entity.WorkOrder, error) {
	f.lastCursor = cursor

	start := 0
	if cursor != nil {
		for i := range f.feed {
			if f.feed[i].ID.String() == cursor.ID {
				start = i + 1
				break
			}
		}
	}
	end := start + limit
	if end > len(f.feed) {
		end = len(f.feed)
	}
	return append([]entity.WorkOrder(nil), f.feed[start:end]...), nil
}

type fakeStockItemRepo struct {
	repository.StockItemRepository
	byID map[uuid.UUID]*entity.StockItem
}

func newFakeStockItemRepo() *fakeStockItemRepo {
	return &fakeStockItemRepo{byID: make(map[uuid.UUID]*entity.StockItem)}
}

func (f *fakeStockItemRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.StockItem, error) {
	return f.byID[id], nil
}

func (f *fakeStockItemRepo) Update(ctx context.Context, item *entity.StockItem) error {
	f.byID[item.ID] = item
	return nil
}

func TestCreateWorkOrder_DeductsStock(t *testing.T) {
	orderRepo := newFakeOrderCrudRepo()
	stockRepo := newFakeStockItemRepo()

	item := &entity.StockItem{ID: uuid.New(), Name: "Bolts", StockQuantity: 50}
	stockRepo.byID[item.ID] = item

	svc := NewWorkOrderService(orderRepo, stockRepo)
	order, err := svc.CreateWorkOrder(companyContext(), &CreateWorkOrderInput{
		ServiceType: "Electrical repair",
		Date:        time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		Time:        "09:00",
		StockUsage: []StockUsageInput{
			{StockItemID: item.ID, Quantity: 8},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, enum.WorkOrderStatusScheduled, order.Status)
	require.Len(t, order.StockUsage, 1)
	assert.Equal(t, 8, order.StockUsage[0].Quantity)
	assert.Equal(t, 42, stockRepo.byID[item.ID].StockQuantity)
}

func TestCreateWorkOrder_Rejections(t *testing.T) {
	svc := NewWorkOrderService(newFakeOrderCrudRepo(), newFakeStockItemRepo())

	t.Run("missing company context", func(t *testing.T) {
		_, err := svc.CreateWorkOrder(context.Background(), &CreateWorkOrderInput{ServiceType: "x"})
		require.Error(t, err)
		assert.Equal(t, 400, apperror.GetAppError(err).Code)
	})

	t.Run("non-positive quantity", func(t *testing.T) {
		_, err := svc.CreateWorkOrder(companyContext(), &CreateWorkOrderInput{
			ServiceType: "x",
			StockUsage:  []StockUsageInput{{StockItemID: uuid.New(), Quantity: 0}},
		})
		require.Error(t, err)
		assert.Equal(t, 400, apperror.GetAppError(err).Code)
	})

	t.Run("unknown stock item", func(t *testing.T) {
		_, err := svc.CreateWorkOrder(companyContext(), &CreateWorkOrderInput{
			ServiceType: "x",
			StockUsage:  []StockUsageInput{{StockItemID: uuid.New(), Quantity: 1}},
		})
		require.Error(t, err)
		assert.Equal(t, 404, apperror.GetAppError(err).Code)
	})
}

func TestUpdateWorkOrder_CancelledIsTerminal(t *testing.T) {
	orderRepo := newFakeOrderCrudRepo()
	order := &entity.WorkOrder{ID: uuid.New(), Status: enum.WorkOrderStatusCancelled}
	orderRepo.byID[order.ID] = order

	svc := NewWorkOrderService(orderRepo, newFakeStockItemRepo())
	status := enum.WorkOrderStatusScheduled
	_, err := svc.UpdateWorkOrder(context.Background(), &UpdateWorkOrderInput{
		ID:     order.ID,
		Status: &status,
	})
	require.Error(t, err)
	assert.Equal(t, 409, apperror.GetAppError(err).Code)
}

func TestUpdateWorkOrder_PartialFields(t *testing.T) {
	orderRepo := newFakeOrderCrudRepo()
	order := &entity.WorkOrder{
		ID:          uuid.New(),
		ServiceType: "Plumbing",
		Status:      enum.WorkOrderStatusScheduled,
		Time:        "08:00",
	}
	orderRepo.byID[order.ID] = order

	svc := NewWorkOrderService(orderRepo, newFakeStockItemRepo())
	newTime := "14:30"
	updated, err := svc.UpdateWorkOrder(context.Background(), &UpdateWorkOrderInput{
		ID:   order.ID,
		Time: &newTime,
	})
	require.NoError(t, err)

	assert.Equal(t, "14:30", updated.Time)
	// Untouched fields keep their values
	assert.Equal(t, "Plumbing", updated.ServiceType)
	assert.Equal(t, enum.WorkOrderStatusScheduled, updated.Status)
}

func TestListWorkOrdersFeed_PagesByCursor(t *testing.T) {
	orderRepo := newFakeOrderCrudRepo()
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		orderRepo.feed = append(orderRepo.feed, entity.WorkOrder{
			ID:        uuid.New(),
			CreatedAt: base.Add(-time.Duration(i) * time.Hour),
		})
	}

	svc := NewWorkOrderService(orderRepo, newFakeStockItemRepo())
	first, err := svc.ListWorkOrdersFeed(companyContext(), &pagination.CursorParams{Limit: 3})
	require.NoError(t, err)

	require.Len(t, first.Items, 3)
	assert.True(t, first.Pagination.HasNext)
	assert.False(t, first.Pagination.HasPrev)
	require.NotNil(t, first.Pagination.NextCursor)

	// The next cursor points at the last returned row
	decoded, err := (&pagination.CursorParams{Cursor: *first.Pagination.NextCursor}).DecodeCursor()
	require.NoError(t, err)
	assert.Equal(t, orderRepo.feed[2].ID.String(), decoded.ID)

	// Following the cursor yields the remaining page
	second, err := svc.ListWorkOrdersFeed(companyContext(), &pagination.CursorParams{
		Cursor: *first.Pagination.NextCursor,
		Limit:  3,
	})
	require.NoError(t, err)

	require.NotNil(t, orderRepo.lastCursor)
	assert.Equal(t, orderRepo.feed[2].ID.String(), orderRepo.lastCursor.ID)
	require.Len(t, second.Items, 1)
	assert.Equal(t, orderRepo.feed[3].ID, second.Items[0].ID)
	assert.False(t, second.Pagination.HasNext)
	assert.True(t, second.Pagination.HasPrev)
}

func TestListWorkOrdersFeed_InvalidCursor(t *testing.T) {
	svc := NewWorkOrderService(newFakeOrderCrudRepo(), newFakeStockItemRepo())

	_, err := svc.ListWorkOrdersFeed(companyContext(), &pagination.CursorParams{Cursor: "!!not-a-cursor!!"})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}
