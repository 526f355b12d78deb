package service

import (
	"context"
	"time"

	"github.com/mwaniki/serviceos-api/internal/domain/entity"
	"github.com/mwaniki/serviceos-api/internal/domain/repository"
	"github.com/mwaniki/serviceos-api/pkg/apperror"
	"golang.org/x/sync/errgroup"
)

// DashboardService provides dashboard statistics
type DashboardService struct {
	workOrderRepo repository.WorkOrderRepository
	invoiceRepo   repository.InvoiceRepository
	customerRepo  repository.CustomerRepository
	leadRepo      repository.LeadRepository
	stockItemRepo repository.StockItemRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	workOrderRepo repository.WorkOrderRepository,
	invoiceRepo repository.InvoiceRepository,
	customerRepo repository.CustomerRepository,
	leadRepo repository.LeadRepository,
	stockItemRepo repository.StockItemRepository,
) *DashboardService {
	return &DashboardService{
		workOrderRepo: workOrderRepo,
		invoiceRepo:   invoiceRepo,
		customerRepo:  customerRepo,
		leadRepo:      leadRepo,
		stockItemRepo: stockItemRepo,
	}
}

// SummaryStats represents the headline counters of the dashboard
type SummaryStats struct {
	TotalCustomers      int64   `json:"total_customers"`
	TotalLeads          int64   `json:"total_leads"`
	CompletedWorkOrders int64   `json:"completed_work_orders"`
	TotalPaidRevenue    float64 `json:"total_paid_revenue"`
	LowStockCount       int64   `json:"low_stock_count"`
}

// WorkOrdersOverview pairs today's schedule with the upcoming workload
type WorkOrdersOverview struct {
	Today         []entity.WorkOrder `json:"today"`
	UpcomingCount int64              `json:"upcoming_count"`
}

// StatusBreakdown is one slice of the work orders by status chart
type StatusBreakdown struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// RecentActivity lists the latest records across the main entities
type RecentActivity struct {
	Leads      []entity.Lead      `json:"leads"`
	WorkOrders []entity.WorkOrder `json:"work_orders"`
	Invoices   []entity.Invoice   `json:"invoices"`
}

const recentActivityLimit = 5

// GetSummaryStats returns the headline counters. The five reads are
// independent and run concurrently.
func (s *DashboardService) GetSummaryStats(ctx context.Context) (*SummaryStats, error) {
	stats := &SummaryStats{}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		count, err := s.customerRepo.Count(gctx)
		if err != nil {
			return apperror.NewStoreUnavailableError(err)
		}
		stats.TotalCustomers = count
		return nil
	})

	g.Go(func() error {
		count, err := s.leadRepo.Count(gctx)
		if err != nil {
			return apperror.NewStoreUnavailableError(err)
		}
		stats.TotalLeads = count
		return nil
	})

	g.Go(func() error {
		count, err := s.workOrderRepo.CountCompleted(gctx)
		if err != nil {
			return apperror.NewStoreUnavailableError(err)
		}
		stats.CompletedWorkOrders = count
		return nil
	})

	g.Go(func() error {
		cents, err := s.invoiceRepo.SumPaidTotal(gctx)
		if err != nil {
			return apperror.NewStoreUnavailableError(err)
		}
		stats.TotalPaidRevenue = centsToDecimal(cents)
		return nil
	})

	g.Go(func() error {
		count, err := s.stockItemRepo.CountLowStock(gctx)
		if err != nil {
			return apperror.NewStoreUnavailableError(err)
		}
		stats.LowStockCount = count
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}

// GetWorkOrdersOverview returns today's schedule plus the count of open
// work orders scheduled after today
func (s *DashboardService) GetWorkOrdersOverview(ctx context.Context) (*WorkOrdersOverview, error) {
	today := time.Now()

	todayOrders, err := s.workOrderRepo.ListForDay(ctx, today)
	if err != nil {
		return nil, apperror.NewStoreUnavailableError(err)
	}

	upcoming, err := s.workOrderRepo.CountUpcoming(ctx, today)
	if err != nil {
		return nil, apperror.NewStoreUnavailableError(err)
	}

	if todayOrders == nil {
		todayOrders = []entity.WorkOrder{}
	}
	return &WorkOrdersOverview{
		Today:         todayOrders,
		UpcomingCount: upcoming,
	}, nil
}

// GetWorkOrdersByStatus returns the status distribution of work orders
func (s *DashboardService) GetWorkOrdersByStatus(ctx context.Context) ([]StatusBreakdown, error) {
	counts, err := s.workOrderRepo.CountByStatus(ctx)
	if err != nil {
		return nil, apperror.NewStoreUnavailableError(err)
	}

	breakdown := make([]StatusBreakdown, 0, len(counts))
	for _, c := range counts {
		breakdown = append(breakdown, StatusBreakdown{
			Status: c.Status.String(),
			Count:  c.Count,
		})
	}
	return breakdown, nil
}

// GetRecentActivity returns the latest leads, work orders and invoices
func (s *DashboardService) GetRecentActivity(ctx context.Context) (*RecentActivity, error) {
	activity := &RecentActivity{
		Leads:      []entity.Lead{},
		WorkOrders: []entity.WorkOrder{},
		Invoices:   []entity.Invoice{},
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		leads, err := s.leadRepo.ListRecent(gctx, recentActivityLimit)
		if err != nil {
			return apperror.NewStoreUnavailableError(err)
		}
		if leads != nil {
			activity.Leads = leads
		}
		return nil
	})

	g.Go(func() error {
		orders, err := s.workOrderRepo.ListRecent(gctx, recentActivityLimit)
		if err != nil {
			return apperror.NewStoreUnavailableError(err)
		}
		if orders != nil {
			activity.WorkOrders = orders
		}
		return nil
	})

	g.Go(func() error {
		invoices, err := s.invoiceRepo.ListRecent(gctx, recentActivityLimit)
		if err != nil {
			return apperror.NewStoreUnavailableError(err)
		}
		if invoices != nil {
			activity.Invoices = invoices
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return activity, nil
}
