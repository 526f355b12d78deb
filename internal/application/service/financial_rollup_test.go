package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwaniki/serviceos-api/internal/domain/entity"
)

func TestBuildJoinedRows_FanOut(t *testing.T) {
	orderID := uuid.New()
	stockA := uuid.New()
	stockB := uuid.New()

	orders := []entity.WorkOrder{{
		ID:        orderID,
		CreatedAt: time.Date(2024, 5, 20, 8, 0, 0, 0, time.UTC),
		StockUsage: []entity.WorkOrderStockUsage{
			{WorkOrderID: orderID, StockItemID: stockA, Quantity: 3},
			{WorkOrderID: orderID, StockItemID: stockB, Quantity: 1},
		},
	}}
	invoiceByOrder := map[uuid.UUID]entity.Invoice{
		orderID: {Total: 20000},
	}
	items := map[uuid.UUID]entity.StockItem{
		stockA: {ID: stockA, Name: "Cable", PurchasePrice: 500},
		stockB: {ID: stockB, Name: "Socket", PurchasePrice: 1200},
	}

	rows := buildJoinedRows(orders, invoiceByOrder, items)
	require.Len(t, rows, 2)

	// The invoice total rides on every row until tagging
	assert.Equal(t, int64(20000), rows[0].invoiceTotal)
	assert.Equal(t, int64(20000), rows[1].invoiceTotal)
	assert.Equal(t, "2024-05", rows[0].month)
	assert.Equal(t, int64(1500), rows[0].lineCost)
	assert.Equal(t, int64(1200), rows[1].lineCost)
}

func TestBuildJoinedRows_NoUsageLines(t *testing.T) {
	orderID := uuid.New()
	orders := []entity.WorkOrder{{
		ID:        orderID,
		CreatedAt: time.Date(2024, 5, 20, 8, 0, 0, 0, time.UTC),
	}}
	invoiceByOrder := map[uuid.UUID]entity.Invoice{
		orderID: {Total: 20000},
	}

	rows := buildJoinedRows(orders, invoiceByOrder, nil)
	require.Len(t, rows, 1)
	assert.Nil(t, rows[0].stockItemID)
	assert.Equal(t, int64(0), rows[0].lineCost)
	assert.Equal(t, int64(20000), rows[0].invoiceTotal)
}

func TestTagFirstLines_AfterFiltering(t *testing.T) {
	orderID := uuid.New()
	stockA := uuid.New()
	stockB := uuid.New()

	rows := []joinedRow{
		{workOrderID: orderID, stockItemID: &stockA, invoiceTotal: 10000},
		{workOrderID: orderID, stockItemID: &stockB, invoiceTotal: 10000},
	}

	// Filtering away the first line moves the tag to the survivor
	filtered := filterByStock(rows, stockB)
	tagFirstLines(filtered)

	require.Len(t, filtered, 1)
	assert.True(t, filtered[0].firstLine)
	assert.Equal(t, stockB, *filtered[0].stockItemID)
}

func TestRollupAdd_RevenueOnlyOnFirstLine(t *testing.T) {
	orderID := uuid.New()
	stockA := uuid.New()
	stockB := uuid.New()

	agg := newRollup()
	agg.add(joinedRow{workOrderID: orderID, month: "2024-05", invoiceTotal: 10000, lineCost: 300, stockItemID: &stockA, stockKnown: true, quantity: 1, firstLine: true})
	agg.add(joinedRow{workOrderID: orderID, month: "2024-05", invoiceTotal: 10000, lineCost: 700, stockItemID: &stockB, stockKnown: true, quantity: 2})

	assert.Equal(t, int64(10000), agg.totalRevenue)
	assert.Equal(t, int64(1000), agg.totalCOGS)

	monthEntry := agg.byMonth.entries["2024-05"]
	assert.Equal(t, int64(10000), monthEntry.revenue)
	assert.Equal(t, int64(1000), monthEntry.cogs)
}

func TestRollup_UnresolvedStockLineLeftOutOfBreakdown(t *testing.T) {
	orderID := uuid.New()
	ghostItem := uuid.New()

	orders := []entity.WorkOrder{{
		ID:        orderID,
		CreatedAt: time.Date(2024, 5, 20, 8, 0, 0, 0, time.UTC),
		StockUsage: []entity.WorkOrderStockUsage{
			{WorkOrderID: orderID, StockItemID: ghostItem, Quantity: 4},
		},
	}}
	invoiceByOrder := map[uuid.UUID]entity.Invoice{
		orderID: {Total: 20000},
	}

	// The referenced stock item no longer exists
	rows := buildJoinedRows(orders, invoiceByOrder, map[uuid.UUID]entity.StockItem{})
	tagFirstLines(rows)

	agg := newRollup()
	for _, row := range rows {
		agg.add(row)
	}

	assert.Equal(t, int64(20000), agg.totalRevenue)
	assert.Equal(t, int64(0), agg.totalCOGS)
	assert.Empty(t, agg.byStock.entries)
}

func TestCompleteMonths_ZeroFillsGaps(t *testing.T) {
	byMonth := newGroupMap[string, monthTotals]()
	byMonth.entries["2023-11"] = monthTotals{revenue: 5000, cogs: 2000}
	byMonth.entries["2024-01"] = monthTotals{revenue: 10000, cogs: 0}

	start := time.Date(2023, 11, 5, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)

	series := completeMonths(byMonth, start, end)
	require.Len(t, series, 3)
	assert.Equal(t, "2023-11", series[0].Month)
	assert.Equal(t, 30.0, series[0].Profit)
	assert.Equal(t, "2023-12", series[1].Month)
	assert.Equal(t, 0.0, series[1].Revenue)
	assert.Equal(t, "2024-01", series[2].Month)
	assert.Equal(t, 100.0, series[2].Revenue)
}

func TestCompleteMonths_YearBoundary(t *testing.T) {
	byMonth := newGroupMap[string, monthTotals]()
	start := time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	series := completeMonths(byMonth, start, end)
	require.Len(t, series, 2)
	assert.Equal(t, "2023-12", series[0].Month)
	assert.Equal(t, "2024-01", series[1].Month)
}

func TestRankStaff_TieBrokenByID(t *testing.T) {
	idA := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	idB := uuid.MustParse("00000000-0000-0000-0000-000000000002")

	byStaff := newGroupMap[uuid.UUID, staffTotals]()
	byStaff.entries[idB] = staffTotals{name: "B", revenue: 5000}
	byStaff.entries[idA] = staffTotals{name: "A", revenue: 5000}

	ranked := rankStaff(byStaff)
	require.Len(t, ranked, 2)
	assert.Equal(t, idA, ranked[0].StaffID)
	assert.Equal(t, idB, ranked[1].StaffID)
}

func TestTopOverdue_TruncatesAndOrders(t *testing.T) {
	invoices := make([]entity.Invoice, 0, 6)
	for i := 0; i < 6; i++ {
		invoices = append(invoices, entity.Invoice{
			ID:         uuid.New(),
			BalanceDue: int64((i + 1) * 100),
			DueDate:    time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		})
	}

	top := topOverdue(invoices, 5)
	require.Len(t, top, 5)
	assert.Equal(t, 6.0, top[0].BalanceDue)
	assert.Equal(t, 2.0, top[4].BalanceDue)

	// Input slice is left untouched
	assert.Equal(t, int64(100), invoices[0].BalanceDue)
}
