package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwaniki/serviceos-api/internal/domain/entity"
	"github.com/mwaniki/serviceos-api/internal/domain/enum"
	"github.com/mwaniki/serviceos-api/internal/domain/repository"
	"github.com/mwaniki/serviceos-api/pkg/apperror"
)

type stubWorkOrderRepo struct {
	repository.WorkOrderRepository
	orders []entity.WorkOrder
	err    error
}

func (s *stubWorkOrderRepo) ListForFinancials(ctx context.Context, params repository.FinancialRangeParams) ([]entity.WorkOrder, error) {
	if s.err != nil {
		return nil, s.err
	}
	if params.StaffID == nil && params.CustomerID == nil {
		return s.orders, nil
	}
	var filtered []entity.WorkOrder
	for _, order := range s.orders {
		if params.StaffID != nil && (order.StaffID == nil || *order.StaffID != *params.StaffID) {
			continue
		}
		if params.CustomerID != nil && (order.CustomerID == nil || *order.CustomerID != *params.CustomerID) {
			continue
		}
		filtered = append(filtered, order)
	}
	return filtered, nil
}

type stubInvoiceRepo struct {
	repository.InvoiceRepository
	invoices []entity.Invoice
	open     map[enum.InvoiceStatus][]entity.Invoice
	err      error
}

func (s *stubInvoiceRepo) ListByWorkOrderIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Invoice, error) {
	if s.err != nil {
		return nil, s.err
	}
	wanted := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	var matched []entity.Invoice
	for _, invoice := range s.invoices {
		if invoice.WorkOrderID != nil && wanted[*invoice.WorkOrderID] {
			matched = append(matched, invoice)
		}
	}
	return matched, nil
}

func (s *stubInvoiceRepo) ListOpenByStatus(ctx context.Context, statuses []enum.InvoiceStatus) ([]entity.Invoice, error) {
	if s.err != nil {
		return nil, s.err
	}
	var matched []entity.Invoice
	for _, status := range statuses {
		matched = append(matched, s.open[status]...)
	}
	return matched, nil
}

type stubStockItemRepo struct {
	repository.StockItemRepository
	items map[uuid.UUID]entity.StockItem
	err   error
}

func (s *stubStockItemRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]entity.StockItem, error) {
	if s.err != nil {
		return nil, s.err
	}
	found := make(map[uuid.UUID]entity.StockItem, len(ids))
	for _, id := range ids {
		if item, ok := s.items[id]; ok {
			found[id] = item
		}
	}
	return found, nil
}

func newTestFinancialService(orders *stubWorkOrderRepo, invoices *stubInvoiceRepo, items *stubStockItemRepo) *financialService {
	return &financialService{
		workOrderRepo: orders,
		invoiceRepo:   invoices,
		stockItemRepo: items,
		now:           func() time.Time { return time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC) },
	}
}

func TestGetFinancialSummary_RevenueCountedOncePerOrder(t *testing.T) {
	orderID := uuid.New()
	boltsID := uuid.New()
	pipeID := uuid.New()
	staffID := uuid.New()
	customerID := uuid.New()

	orders := &stubWorkOrderRepo{orders: []entity.WorkOrder{
		{
			ID:         orderID,
			Status:     enum.WorkOrderStatusCompleted,
			CreatedAt:  time.Date(2024, 2, 10, 9, 0, 0, 0, time.UTC),
			StaffID:    &staffID,
			CustomerID: &customerID,
			Staff:      &entity.Staff{ContactPersonName: "Jane Field"},
			Customer:   &entity.Customer{ContactPersonName: "Acme Ltd"},
			StockUsage: []entity.WorkOrderStockUsage{
				{WorkOrderID: orderID, StockItemID: boltsID, Quantity: 4},
				{WorkOrderID: orderID, StockItemID: pipeID, Quantity: 1},
			},
		},
	}}
	workOrderID := orderID
	invoices := &stubInvoiceRepo{invoices: []entity.Invoice{
		{ID: uuid.New(), WorkOrderID: &workOrderID, Total: 10000},
	}}
	items := &stubStockItemRepo{items: map[uuid.UUID]entity.StockItem{
		boltsID: {ID: boltsID, Name: "Bolts", PurchasePrice: 125},  // 4 x 1.25 = 5.00
		pipeID:  {ID: pipeID, Name: "PVC Pipe", PurchasePrice: 2000}, // 1 x 20.00
	}}

	svc := newTestFinancialService(orders, invoices, items)
	summary, err := svc.GetFinancialSummary(context.Background(), FinancialQuery{
		StartDate: "2024-02-01",
		EndDate:   "2024-02-29",
	})
	require.NoError(t, err)

	// Invoice total appears once despite two usage lines
	assert.Equal(t, 100.0, summary.TotalRevenue)
	assert.Equal(t, 25.0, summary.TotalCOGS)
	assert.Equal(t, 75.0, summary.GrossProfit)
	assert.Equal(t, 75.0, summary.ProfitMargin)

	require.Len(t, summary.StaffPerformance, 1)
	assert.Equal(t, "Jane Field", summary.StaffPerformance[0].StaffName)
	assert.Equal(t, 100.0, summary.StaffPerformance[0].TotalRevenue)

	require.Len(t, summary.CustomerPerformance, 1)
	assert.Equal(t, "Acme Ltd", summary.CustomerPerformance[0].CustomerName)

	require.Len(t, summary.StockUsageCosts, 2)
	assert.Equal(t, "PVC Pipe", summary.StockUsageCosts[0].StockName)
	assert.Equal(t, 20.0, summary.StockUsageCosts[0].TotalCost)
	assert.Equal(t, "Bolts", summary.StockUsageCosts[1].StockName)
	assert.Equal(t, 5.0, summary.StockUsageCosts[1].TotalCost)
}

func TestGetFinancialSummary_StockFilterKeepsOrderRevenue(t *testing.T) {
	orderID := uuid.New()
	boltsID := uuid.New()
	pipeID := uuid.New()

	orders := &stubWorkOrderRepo{orders: []entity.WorkOrder{
		{
			ID:        orderID,
			Status:    enum.WorkOrderStatusInvoiced,
			CreatedAt: time.Date(2024, 2, 10, 9, 0, 0, 0, time.UTC),
			StockUsage: []entity.WorkOrderStockUsage{
				{WorkOrderID: orderID, StockItemID: boltsID, Quantity: 4},
				{WorkOrderID: orderID, StockItemID: pipeID, Quantity: 1},
			},
		},
	}}
	workOrderID := orderID
	invoices := &stubInvoiceRepo{invoices: []entity.Invoice{
		{ID: uuid.New(), WorkOrderID: &workOrderID, Total: 10000},
	}}
	items := &stubStockItemRepo{items: map[uuid.UUID]entity.StockItem{
		boltsID: {ID: boltsID, Name: "Bolts", PurchasePrice: 125},
		pipeID:  {ID: pipeID, Name: "PVC Pipe", PurchasePrice: 2000},
	}}

	svc := newTestFinancialService(orders, invoices, items)
	summary, err := svc.GetFinancialSummary(context.Background(), FinancialQuery{
		StartDate: "2024-02-01",
		EndDate:   "2024-02-29",
		StockID:   &pipeID,
	})
	require.NoError(t, err)

	// The surviving pipe line carries the order's full revenue; only the
	// pipe cost remains on the COGS side
	assert.Equal(t, 100.0, summary.TotalRevenue)
	assert.Equal(t, 20.0, summary.TotalCOGS)
	require.Len(t, summary.StockUsageCosts, 1)
	assert.Equal(t, pipeID, summary.StockUsageCosts[0].StockID)
}

func TestGetFinancialSummary_StockFilterDropsUnmatchedOrders(t *testing.T) {
	orderID := uuid.New()
	boltsID := uuid.New()
	otherStockID := uuid.New()

	orders := &stubWorkOrderRepo{orders: []entity.WorkOrder{
		{
			ID:        orderID,
			Status:    enum.WorkOrderStatusCompleted,
			CreatedAt: time.Date(2024, 2, 10, 9, 0, 0, 0, time.UTC),
			StockUsage: []entity.WorkOrderStockUsage{
				{WorkOrderID: orderID, StockItemID: boltsID, Quantity: 4},
			},
		},
	}}
	workOrderID := orderID
	invoices := &stubInvoiceRepo{invoices: []entity.Invoice{
		{ID: uuid.New(), WorkOrderID: &workOrderID, Total: 10000},
	}}
	items := &stubStockItemRepo{items: map[uuid.UUID]entity.StockItem{
		boltsID: {ID: boltsID, Name: "Bolts", PurchasePrice: 125},
	}}

	svc := newTestFinancialService(orders, invoices, items)
	summary, err := svc.GetFinancialSummary(context.Background(), FinancialQuery{
		StartDate: "2024-02-01",
		EndDate:   "2024-02-29",
		StockID:   &otherStockID,
	})
	require.NoError(t, err)

	// No line matches, so the order drops out of revenue too
	assert.Equal(t, 0.0, summary.TotalRevenue)
	assert.Equal(t, 0.0, summary.TotalCOGS)
	assert.Equal(t, 0.0, summary.ProfitMargin)
}

func TestGetFinancialSummary_OrderOfRowsDoesNotMatter(t *testing.T) {
	staffA := uuid.New()
	staffB := uuid.New()
	stockID := uuid.New()

	makeOrder := func(id uuid.UUID, staff uuid.UUID, day int) entity.WorkOrder {
		return entity.WorkOrder{
			ID:        id,
			Status:    enum.WorkOrderStatusCompleted,
			CreatedAt: time.Date(2024, 2, day, 9, 0, 0, 0, time.UTC),
			StaffID:   &staff,
			StockUsage: []entity.WorkOrderStockUsage{
				{WorkOrderID: id, StockItemID: stockID, Quantity: 2},
			},
		}
	}

	orderA := uuid.New()
	orderB := uuid.New()
	orderC := uuid.New()
	baseOrders := []entity.WorkOrder{
		makeOrder(orderA, staffA, 1),
		makeOrder(orderB, staffB, 10),
		makeOrder(orderC, staffA, 20),
	}
	baseInvoices := []entity.Invoice{
		{ID: uuid.New(), WorkOrderID: &baseOrders[0].ID, Total: 5000},
		{ID: uuid.New(), WorkOrderID: &baseOrders[1].ID, Total: 7500},
		{ID: uuid.New(), WorkOrderID: &baseOrders[2].ID, Total: 2500},
	}
	items := map[uuid.UUID]entity.StockItem{
		stockID: {ID: stockID, Name: "Filter", PurchasePrice: 300},
	}

	permutations := [][]int{{0, 1, 2}, {2, 0, 1}, {1, 2, 0}}
	var summaries []*FinancialSummary
	for _, perm := range permutations {
		permuted := make([]entity.WorkOrder, 0, len(perm))
		for _, idx := range perm {
			permuted = append(permuted, baseOrders[idx])
		}
		svc := newTestFinancialService(
			&stubWorkOrderRepo{orders: permuted},
			&stubInvoiceRepo{invoices: baseInvoices},
			&stubStockItemRepo{items: items},
		)
		summary, err := svc.GetFinancialSummary(context.Background(), FinancialQuery{
			StartDate: "2024-02-01",
			EndDate:   "2024-02-29",
		})
		require.NoError(t, err)
		summaries = append(summaries, summary)
	}

	for i := 1; i < len(summaries); i++ {
		assert.Equal(t, summaries[0], summaries[i])
	}
	assert.Equal(t, 150.0, summaries[0].TotalRevenue)
	assert.Equal(t, 18.0, summaries[0].TotalCOGS)
}

func TestGetFinancialSummary_MonthSeriesIsComplete(t *testing.T) {
	orderID := uuid.New()
	orders := &stubWorkOrderRepo{orders: []entity.WorkOrder{
		{
			ID:        orderID,
			Status:    enum.WorkOrderStatusCompleted,
			CreatedAt: time.Date(2024, 2, 10, 9, 0, 0, 0, time.UTC),
		},
	}}
	workOrderID := orderID
	invoices := &stubInvoiceRepo{invoices: []entity.Invoice{
		{ID: uuid.New(), WorkOrderID: &workOrderID, Total: 10000},
	}}

	svc := newTestFinancialService(orders, invoices, &stubStockItemRepo{})
	summary, err := svc.GetFinancialSummary(context.Background(), FinancialQuery{
		StartDate: "2024-01-01",
		EndDate:   "2024-02-29",
	})
	require.NoError(t, err)

	require.Len(t, summary.RevenueByMonth, 2)
	assert.Equal(t, "2024-01", summary.RevenueByMonth[0].Month)
	assert.Equal(t, 0.0, summary.RevenueByMonth[0].Revenue)
	assert.Equal(t, 0.0, summary.RevenueByMonth[0].Profit)
	assert.Equal(t, "2024-02", summary.RevenueByMonth[1].Month)
	assert.Equal(t, 100.0, summary.RevenueByMonth[1].Revenue)
	assert.Equal(t, 100.0, summary.RevenueByMonth[1].Profit)
}

func TestGetFinancialSummary_EmptyRangeHasZeroMargin(t *testing.T) {
	svc := newTestFinancialService(&stubWorkOrderRepo{}, &stubInvoiceRepo{}, &stubStockItemRepo{})
	summary, err := svc.GetFinancialSummary(context.Background(), FinancialQuery{
		StartDate: "2024-01-01",
		EndDate:   "2024-03-31",
	})
	require.NoError(t, err)

	assert.Equal(t, 0.0, summary.TotalRevenue)
	assert.Equal(t, 0.0, summary.ProfitMargin)
	assert.Len(t, summary.RevenueByMonth, 3)
	assert.Empty(t, summary.StaffPerformance)
	assert.Empty(t, summary.OverdueInvoices)
}

func TestGetFinancialSummary_OutstandingAndOverdueBalances(t *testing.T) {
	overdue := make([]entity.Invoice, 0, 7)
	for i := 0; i < 7; i++ {
		overdue = append(overdue, entity.Invoice{
			ID:            uuid.New(),
			InvoiceNumber: "INV-" + string(rune('A'+i)),
			Status:        enum.InvoiceStatusOverdue,
			BalanceDue:    int64((i + 1) * 1000),
			DueDate:       time.Date(2024, 1, i+1, 0, 0, 0, 0, time.UTC),
			Customer:      &entity.Customer{ContactPersonName: "Customer " + string(rune('A'+i))},
		})
	}
	invoices := &stubInvoiceRepo{open: map[enum.InvoiceStatus][]entity.Invoice{
		enum.InvoiceStatusSent:          {{ID: uuid.New(), BalanceDue: 4000}},
		enum.InvoiceStatusPartiallyPaid: {{ID: uuid.New(), BalanceDue: 1500}},
		enum.InvoiceStatusOverdue:       overdue,
	}}

	svc := newTestFinancialService(&stubWorkOrderRepo{}, invoices, &stubStockItemRepo{})
	summary, err := svc.GetFinancialSummary(context.Background(), FinancialQuery{
		StartDate: "2024-01-01",
		EndDate:   "2024-01-31",
	})
	require.NoError(t, err)

	assert.Equal(t, 55.0, summary.OutstandingBalance)
	assert.Equal(t, 280.0, summary.OverdueBalance) // 10+20+...+70

	// Only the five largest balances are listed, descending
	require.Len(t, summary.OverdueInvoices, 5)
	assert.Equal(t, 70.0, summary.OverdueInvoices[0].BalanceDue)
	assert.Equal(t, 30.0, summary.OverdueInvoices[4].BalanceDue)
}

func TestGetFinancialSummary_OverdueCustomerFallback(t *testing.T) {
	invoices := &stubInvoiceRepo{open: map[enum.InvoiceStatus][]entity.Invoice{
		enum.InvoiceStatusOverdue: {{
			ID:            uuid.New(),
			InvoiceNumber: "INV-ORPHAN",
			Status:        enum.InvoiceStatusOverdue,
			BalanceDue:    2500,
			DueDate:       time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		}},
	}}

	svc := newTestFinancialService(&stubWorkOrderRepo{}, invoices, &stubStockItemRepo{})
	summary, err := svc.GetFinancialSummary(context.Background(), FinancialQuery{
		StartDate: "2024-01-01",
		EndDate:   "2024-01-31",
	})
	require.NoError(t, err)

	require.Len(t, summary.OverdueInvoices, 1)
	assert.Equal(t, "N/A", summary.OverdueInvoices[0].CustomerName)
	assert.Equal(t, "2024-01-15", summary.OverdueInvoices[0].DueDate)
}

func TestGetFinancialSummary_StaffFilterLeavesBalancesAlone(t *testing.T) {
	staffID := uuid.New()
	otherStaffID := uuid.New()
	orderID := uuid.New()

	orders := &stubWorkOrderRepo{orders: []entity.WorkOrder{
		{
			ID:        orderID,
			Status:    enum.WorkOrderStatusCompleted,
			CreatedAt: time.Date(2024, 2, 10, 9, 0, 0, 0, time.UTC),
			StaffID:   &staffID,
		},
	}}
	workOrderID := orderID
	invoices := &stubInvoiceRepo{
		invoices: []entity.Invoice{{ID: uuid.New(), WorkOrderID: &workOrderID, Total: 10000}},
		open: map[enum.InvoiceStatus][]entity.Invoice{
			enum.InvoiceStatusSent:    {{ID: uuid.New(), BalanceDue: 4000}},
			enum.InvoiceStatusOverdue: {{ID: uuid.New(), BalanceDue: 1000, DueDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}},
		},
	}

	svc := newTestFinancialService(orders, invoices, &stubStockItemRepo{})
	summary, err := svc.GetFinancialSummary(context.Background(), FinancialQuery{
		StartDate: "2024-02-01",
		EndDate:   "2024-02-29",
		StaffID:   &otherStaffID,
	})
	require.NoError(t, err)

	// The staff filter narrows the rollup but not the balance figures
	assert.Equal(t, 0.0, summary.TotalRevenue)
	assert.Equal(t, 40.0, summary.OutstandingBalance)
	assert.Equal(t, 10.0, summary.OverdueBalance)
}

func TestGetFinancialSummary_DuplicateInvoicesRejected(t *testing.T) {
	orderID := uuid.New()
	orders := &stubWorkOrderRepo{orders: []entity.WorkOrder{
		{ID: orderID, Status: enum.WorkOrderStatusCompleted, CreatedAt: time.Date(2024, 2, 10, 9, 0, 0, 0, time.UTC)},
	}}
	workOrderID := orderID
	invoices := &stubInvoiceRepo{invoices: []entity.Invoice{
		{ID: uuid.New(), WorkOrderID: &workOrderID, Total: 10000},
		{ID: uuid.New(), WorkOrderID: &workOrderID, Total: 5000},
	}}

	svc := newTestFinancialService(orders, invoices, &stubStockItemRepo{})
	_, err := svc.GetFinancialSummary(context.Background(), FinancialQuery{
		StartDate: "2024-02-01",
		EndDate:   "2024-02-29",
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindDataIntegrityViolation))
	assert.Equal(t, 500, apperror.GetAppError(err).Code)
}

func TestGetFinancialSummary_MissingDatesSuggestDefaultRange(t *testing.T) {
	svc := newTestFinancialService(&stubWorkOrderRepo{}, &stubInvoiceRepo{}, &stubStockItemRepo{})
	_, err := svc.GetFinancialSummary(context.Background(), FinancialQuery{})
	require.Error(t, err)
	require.True(t, apperror.IsKind(err, apperror.KindMissingDateRange))

	appErr := apperror.GetAppError(err)
	assert.Equal(t, 400, appErr.Code)

	details, ok := appErr.Details.(map[string]string)
	require.True(t, ok)
	// Injected clock is 2024-03-15, so the suggested window is the start
	// of the month eleven months back through today
	assert.Equal(t, "2023-04-01", details["suggested_start_date"])
	assert.Equal(t, "2024-03-15", details["suggested_end_date"])
}

func TestGetFinancialSummary_InvalidDates(t *testing.T) {
	svc := newTestFinancialService(&stubWorkOrderRepo{}, &stubInvoiceRepo{}, &stubStockItemRepo{})

	t.Run("malformed start date", func(t *testing.T) {
		_, err := svc.GetFinancialSummary(context.Background(), FinancialQuery{
			StartDate: "02/01/2024",
			EndDate:   "2024-02-29",
		})
		require.Error(t, err)
		assert.True(t, apperror.IsKind(err, apperror.KindInvalidDateFormat))
	})

	t.Run("end before start", func(t *testing.T) {
		_, err := svc.GetFinancialSummary(context.Background(), FinancialQuery{
			StartDate: "2024-02-29",
			EndDate:   "2024-02-01",
		})
		require.Error(t, err)
		assert.Equal(t, 400, apperror.GetAppError(err).Code)
	})
}

func TestGetFinancialSummary_StoreFailureSurfaces(t *testing.T) {
	orders := &stubWorkOrderRepo{err: errors.New("connection refused")}
	svc := newTestFinancialService(orders, &stubInvoiceRepo{}, &stubStockItemRepo{})

	_, err := svc.GetFinancialSummary(context.Background(), FinancialQuery{
		StartDate: "2024-02-01",
		EndDate:   "2024-02-29",
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindStoreUnavailable))
	assert.Equal(t, 503, apperror.GetAppError(err).Code)
}

func TestGetFinancialSummary_OrderWithoutInvoiceOrUsage(t *testing.T) {
	orderID := uuid.New()
	orders := &stubWorkOrderRepo{orders: []entity.WorkOrder{
		{ID: orderID, Status: enum.WorkOrderStatusCompleted, CreatedAt: time.Date(2024, 2, 10, 9, 0, 0, 0, time.UTC)},
	}}

	svc := newTestFinancialService(orders, &stubInvoiceRepo{}, &stubStockItemRepo{})
	summary, err := svc.GetFinancialSummary(context.Background(), FinancialQuery{
		StartDate: "2024-02-01",
		EndDate:   "2024-02-29",
	})
	require.NoError(t, err)

	assert.Equal(t, 0.0, summary.TotalRevenue)
	assert.Equal(t, 0.0, summary.TotalCOGS)
}
