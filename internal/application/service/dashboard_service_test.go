package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwaniki/serviceos-api/internal/domain/entity"
	"github.com/mwaniki/serviceos-api/internal/domain/enum"
	"github.com/mwaniki/serviceos-api/internal/domain/repository"
	"github.com/mwaniki/serviceos-api/pkg/apperror"
)

type stubDashboardWorkOrderRepo struct {
	repository.WorkOrderRepository
	completed    int64
	today        []entity.WorkOrder
	upcoming     int64
	statusCounts []repository.StatusCount
	recent       []entity.WorkOrder
	err          error
}

func (s *stubDashboardWorkOrderRepo) CountCompleted(ctx context.Context) (int64, error) {
	return s.completed, s.err
}

func (s *stubDashboardWorkOrderRepo) ListForDay(ctx context.Context, day time.Time) ([]entity.WorkOrder, error) {
	return s.today, s.err
}

func (s *stubDashboardWorkOrderRepo) CountUpcoming(ctx context.Context, after time.Time) (int64, error) {
	return s.upcoming, s.err
}

func (s *stubDashboardWorkOrderRepo) CountByStatus(ctx context.Context) ([]repository.StatusCount, error) {
	return s.statusCounts, s.err
}

func (s *stubDashboardWorkOrderRepo) ListRecent(ctx context.Context, limit int) ([]entity.WorkOrder, error) {
	return s.recent, s.err
}

type stubDashboardInvoiceRepo struct {
	repository.InvoiceRepository
	paidTotal int64
	recent    []entity.Invoice
	err       error
}

func (s *stubDashboardInvoiceRepo) SumPaidTotal(ctx context.Context) (int64, error) {
	return s.paidTotal, s.err
}

func (s *stubDashboardInvoiceRepo) ListRecent(ctx context.Context, limit int) ([]entity.Invoice, error) {
	return s.recent, s.err
}

type stubCustomerRepo struct {
	repository.CustomerRepository
	count int64
	err   error
}

func (s *stubCustomerRepo) Count(ctx context.Context) (int64, error) {
	return s.count, s.err
}

type stubLeadRepo struct {
	repository.LeadRepository
	count  int64
	recent []entity.Lead
	err    error
}

func (s *stubLeadRepo) Count(ctx context.Context) (int64, error) {
	return s.count, s.err
}

func (s *stubLeadRepo) ListRecent(ctx context.Context, limit int) ([]entity.Lead, error) {
	return s.recent, s.err
}

type stubDashboardStockItemRepo struct {
	repository.StockItemRepository
	lowStock int64
	err      error
}

func (s *stubDashboardStockItemRepo) CountLowStock(ctx context.Context) (int64, error) {
	return s.lowStock, s.err
}

func TestGetSummaryStats(t *testing.T) {
	svc := NewDashboardService(
		&stubDashboardWorkOrderRepo{completed: 12},
		&stubDashboardInvoiceRepo{paidTotal: 123450},
		&stubCustomerRepo{count: 40},
		&stubLeadRepo{count: 7},
		&stubDashboardStockItemRepo{lowStock: 3},
	)

	stats, err := svc.GetSummaryStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(40), stats.TotalCustomers)
	assert.Equal(t, int64(7), stats.TotalLeads)
	assert.Equal(t, int64(12), stats.CompletedWorkOrders)
	assert.Equal(t, 1234.5, stats.TotalPaidRevenue)
	assert.Equal(t, int64(3), stats.LowStockCount)
}

func TestGetSummaryStats_RepoFailure(t *testing.T) {
	svc := NewDashboardService(
		&stubDashboardWorkOrderRepo{},
		&stubDashboardInvoiceRepo{err: errors.New("timeout")},
		&stubCustomerRepo{},
		&stubLeadRepo{},
		&stubDashboardStockItemRepo{},
	)

	_, err := svc.GetSummaryStats(context.Background())
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindStoreUnavailable))
}

func TestGetWorkOrdersOverview(t *testing.T) {
	svc := NewDashboardService(
		&stubDashboardWorkOrderRepo{upcoming: 4},
		&stubDashboardInvoiceRepo{},
		&stubCustomerRepo{},
		&stubLeadRepo{},
		&stubDashboardStockItemRepo{},
	)

	overview, err := svc.GetWorkOrdersOverview(context.Background())
	require.NoError(t, err)

	// A day with no orders comes back as an empty list, not null
	assert.NotNil(t, overview.Today)
	assert.Empty(t, overview.Today)
	assert.Equal(t, int64(4), overview.UpcomingCount)
}

func TestGetWorkOrdersByStatus(t *testing.T) {
	svc := NewDashboardService(
		&stubDashboardWorkOrderRepo{statusCounts: []repository.StatusCount{
			{Status: enum.WorkOrderStatusScheduled, Count: 5},
			{Status: enum.WorkOrderStatusCompleted, Count: 2},
		}},
		&stubDashboardInvoiceRepo{},
		&stubCustomerRepo{},
		&stubLeadRepo{},
		&stubDashboardStockItemRepo{},
	)

	breakdown, err := svc.GetWorkOrdersByStatus(context.Background())
	require.NoError(t, err)

	require.Len(t, breakdown, 2)
	assert.Equal(t, "Scheduled", breakdown[0].Status)
	assert.Equal(t, int64(5), breakdown[0].Count)
	assert.Equal(t, "Completed", breakdown[1].Status)
}

func TestGetRecentActivity(t *testing.T) {
	svc := NewDashboardService(
		&stubDashboardWorkOrderRepo{recent: []entity.WorkOrder{{ServiceType: "Plumbing"}}},
		&stubDashboardInvoiceRepo{},
		&stubCustomerRepo{},
		&stubLeadRepo{recent: []entity.Lead{{ContactPersonName: "Walk-in"}}},
		&stubDashboardStockItemRepo{},
	)

	activity, err := svc.GetRecentActivity(context.Background())
	require.NoError(t, err)

	require.Len(t, activity.Leads, 1)
	require.Len(t, activity.WorkOrders, 1)
	// Empty sections still marshal as lists
	assert.NotNil(t, activity.Invoices)
	assert.Empty(t, activity.Invoices)
}
