package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mwaniki/serviceos-api/internal/domain/entity"
	"github.com/mwaniki/serviceos-api/internal/domain/enum"
	"github.com/mwaniki/serviceos-api/internal/domain/repository"
	"github.com/mwaniki/serviceos-api/pkg/apperror"
	"golang.org/x/sync/errgroup"
)

// FinancialQuery carries the raw query parameters of a financial summary
// request. Dates are the raw strings so missing and malformed values can
// be told apart.
type FinancialQuery struct {
	StartDate  string
	EndDate    string
	StaffID    *uuid.UUID
	CustomerID *uuid.UUID
	StockID    *uuid.UUID
}

// FinancialSummary is the multi-dimensional rollup for one date range.
// All money fields are decimal values.
type FinancialSummary struct {
	TotalRevenue        float64               `json:"total_revenue"`
	TotalCOGS           float64               `json:"total_cogs"`
	GrossProfit         float64               `json:"gross_profit"`
	ProfitMargin        float64               `json:"profit_margin"`
	OutstandingBalance  float64               `json:"outstanding_balance"`
	OverdueBalance      float64               `json:"overdue_balance"`
	OverdueInvoices     []OverdueInvoice      `json:"overdue_invoices"`
	RevenueByMonth      []MonthRevenue        `json:"revenue_by_month"`
	StaffPerformance    []StaffPerformance    `json:"staff_performance"`
	CustomerPerformance []CustomerPerformance `json:"customer_performance"`
	StockUsageCosts     []StockUsageCost      `json:"stock_usage_costs"`
}

// MonthRevenue is one calendar month bucket of the revenue series
type MonthRevenue struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
	COGS    float64 `json:"cogs"`
	Profit  float64 `json:"profit"`
}

// StaffPerformance ranks one staff member by revenue
type StaffPerformance struct {
	StaffID      uuid.UUID `json:"staff_id"`
	StaffName    string    `json:"staff_name"`
	TotalRevenue float64   `json:"total_revenue"`
}

// CustomerPerformance ranks one customer by revenue
type CustomerPerformance struct {
	CustomerID   uuid.UUID `json:"customer_id"`
	CustomerName string    `json:"customer_name"`
	TotalRevenue float64   `json:"total_revenue"`
}

// StockUsageCost ranks one stock item by consumption cost
type StockUsageCost struct {
	StockID      uuid.UUID `json:"stock_id"`
	StockName    string    `json:"stock_name"`
	QuantityUsed int       `json:"quantity_used"`
	TotalCost    float64   `json:"total_cost"`
}

// OverdueInvoice is one entry of the top overdue ranking
type OverdueInvoice struct {
	InvoiceID     uuid.UUID `json:"invoice_id"`
	InvoiceNumber string    `json:"invoice_number"`
	CustomerName  string    `json:"customer_name"`
	DueDate       string    `json:"due_date"`
	BalanceDue    float64   `json:"balance_due"`
}

// FinancialService computes financial summaries
type FinancialService interface {
	GetFinancialSummary(ctx context.Context, query FinancialQuery) (*FinancialSummary, error)
}

type financialService struct {
	workOrderRepo repository.WorkOrderRepository
	invoiceRepo   repository.InvoiceRepository
	stockItemRepo repository.StockItemRepository
	now           func() time.Time
}

// NewFinancialService creates a new financial service
func NewFinancialService(
	workOrderRepo repository.WorkOrderRepository,
	invoiceRepo repository.InvoiceRepository,
	stockItemRepo repository.StockItemRepository,
) FinancialService {
	return &financialService{
		workOrderRepo: workOrderRepo,
		invoiceRepo:   invoiceRepo,
		stockItemRepo: stockItemRepo,
		now:           time.Now,
	}
}

// GetFinancialSummary computes the rollup for the requested range. The
// summary is all-or-nothing: any read failure aborts the invocation and
// no partial result is returned.
func (s *financialService) GetFinancialSummary(ctx context.Context, query FinancialQuery) (*FinancialSummary, error) {
	start, end, err := s.parseRange(query)
	if err != nil {
		return nil, err
	}

	var (
		orders           []entity.WorkOrder
		invoiceByOrder   map[uuid.UUID]entity.Invoice
		stockItems       map[uuid.UUID]entity.StockItem
		outstandingCents int64
		overdueCents     int64
		overdueInvoices  []entity.Invoice
	)

	// The work-order join chain and the two invoice sums have no data
	// dependency on each other
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		orders, err = s.workOrderRepo.ListForFinancials(gctx, repository.FinancialRangeParams{
			Start:      start,
			End:        end,
			StaffID:    query.StaffID,
			CustomerID: query.CustomerID,
		})
		if err != nil {
			return apperror.NewStoreUnavailableError(err)
		}

		orderIDs := make([]uuid.UUID, 0, len(orders))
		stockItemIDs := make(map[uuid.UUID]struct{})
		for i := range orders {
			orderIDs = append(orderIDs, orders[i].ID)
			for _, usage := range orders[i].StockUsage {
				stockItemIDs[usage.StockItemID] = struct{}{}
			}
		}

		invoices, err := s.invoiceRepo.ListByWorkOrderIDs(gctx, orderIDs)
		if err != nil {
			return apperror.NewStoreUnavailableError(err)
		}

		invoiceByOrder = make(map[uuid.UUID]entity.Invoice, len(invoices))
		for i := range invoices {
			if invoices[i].WorkOrderID == nil {
				continue
			}
			orderID := *invoices[i].WorkOrderID
			if _, exists := invoiceByOrder[orderID]; exists {
				return apperror.NewDataIntegrityError(
					fmt.Sprintf("multiple invoices reference work order %s", orderID))
			}
			invoiceByOrder[orderID] = invoices[i]
		}

		ids := make([]uuid.UUID, 0, len(stockItemIDs))
		for id := range stockItemIDs {
			ids = append(ids, id)
		}
		stockItems, err = s.stockItemRepo.GetByIDs(gctx, ids)
		if err != nil {
			return apperror.NewStoreUnavailableError(err)
		}
		return nil
	})

	g.Go(func() error {
		open, err := s.invoiceRepo.ListOpenByStatus(gctx, []enum.InvoiceStatus{
			enum.InvoiceStatusSent, enum.InvoiceStatusPartiallyPaid,
		})
		if err != nil {
			return apperror.NewStoreUnavailableError(err)
		}
		for i := range open {
			outstandingCents += open[i].BalanceDue
		}
		return nil
	})

	g.Go(func() error {
		var err error
		overdueInvoices, err = s.invoiceRepo.ListOpenByStatus(gctx, []enum.InvoiceStatus{
			enum.InvoiceStatusOverdue,
		})
		if err != nil {
			return apperror.NewStoreUnavailableError(err)
		}
		for i := range overdueInvoices {
			overdueCents += overdueInvoices[i].BalanceDue
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	rows := buildJoinedRows(orders, invoiceByOrder, stockItems)
	if query.StockID != nil {
		rows = filterByStock(rows, *query.StockID)
	}
	tagFirstLines(rows)

	agg := newRollup()
	for _, row := range rows {
		agg.add(row)
	}

	grossProfit := agg.totalRevenue - agg.totalCOGS
	profitMargin := 0.0
	if agg.totalRevenue != 0 {
		profitMargin = float64(grossProfit) / float64(agg.totalRevenue) * 100
	}

	return &FinancialSummary{
		TotalRevenue:        centsToDecimal(agg.totalRevenue),
		TotalCOGS:           centsToDecimal(agg.totalCOGS),
		GrossProfit:         centsToDecimal(grossProfit),
		ProfitMargin:        profitMargin,
		OutstandingBalance:  centsToDecimal(outstandingCents),
		OverdueBalance:      centsToDecimal(overdueCents),
		OverdueInvoices:     topOverdue(overdueInvoices, 5),
		RevenueByMonth:      completeMonths(agg.byMonth, start, end),
		StaffPerformance:    rankStaff(agg.byStaff),
		CustomerPerformance: rankCustomers(agg.byCustomer),
		StockUsageCosts:     rankStockUsage(agg.byStock),
	}, nil
}

// parseRange validates the requested dates. Both are mandatory; a missing
// pair is rejected with a suggested 12-month default the caller can retry
// with, never computed on silently.
func (s *financialService) parseRange(query FinancialQuery) (time.Time, time.Time, error) {
	if query.StartDate == "" || query.EndDate == "" {
		today := s.now()
		defaultStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -11, 0)
		return time.Time{}, time.Time{}, apperror.NewMissingDateRangeError(defaultStart, today)
	}

	start, err := time.Parse("2006-01-02", query.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, apperror.NewInvalidDateFormatError("startDate", query.StartDate)
	}
	end, err := time.Parse("2006-01-02", query.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, apperror.NewInvalidDateFormatError("endDate", query.EndDate)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, apperror.NewBadRequestError("endDate must not be before startDate")
	}

	// End of the requested day, inclusive
	end = end.Add(24*time.Hour - time.Nanosecond)
	return start, end, nil
}
