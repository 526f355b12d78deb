package service

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/mwaniki/serviceos-api/internal/domain/entity"
)

// joinedRow is one row of the flattened (work order, invoice, stock usage
// line) join. A work order with N usage lines produces N rows; one with
// none produces a single row with zero line cost. The invoice total rides
// on every row of its order, so revenue sums must only read it from the
// row tagged firstLine.
type joinedRow struct {
	workOrderID  uuid.UUID
	month        string
	invoiceTotal int64
	lineCost     int64
	quantity     int
	staffID      *uuid.UUID
	staffName    string
	customerID   *uuid.UUID
	customerName string
	stockItemID  *uuid.UUID
	stockName    string
	// stockKnown is false when the usage line references a stock item
	// that no longer resolves; such lines stay out of the per-item
	// breakdown but the order still counts toward revenue.
	stockKnown bool
	firstLine  bool
}

// groupMap merges partial sums keyed by an arbitrary comparable key.
// upsert inserts the delta when the key is absent and otherwise folds it
// into the existing record; the merge function must be commutative so row
// order never affects the result.
type groupMap[K comparable, V any] struct {
	entries map[K]V
}

func newGroupMap[K comparable, V any]() *groupMap[K, V] {
	return &groupMap[K, V]{entries: make(map[K]V)}
}

func (g *groupMap[K, V]) upsert(key K, delta V, merge func(existing, delta V) V) {
	if existing, ok := g.entries[key]; ok {
		g.entries[key] = merge(existing, delta)
		return
	}
	g.entries[key] = delta
}

type monthTotals struct {
	revenue int64
	cogs    int64
}

type staffTotals struct {
	name    string
	revenue int64
}

type customerTotals struct {
	name    string
	revenue int64
}

type stockTotals struct {
	name     string
	quantity int
	cost     int64
}

// rollup accumulates the four group-by aggregates plus the grand totals
type rollup struct {
	totalRevenue int64
	totalCOGS    int64
	byMonth      *groupMap[string, monthTotals]
	byStaff      *groupMap[uuid.UUID, staffTotals]
	byCustomer   *groupMap[uuid.UUID, customerTotals]
	byStock      *groupMap[uuid.UUID, stockTotals]
}

func newRollup() *rollup {
	return &rollup{
		byMonth:    newGroupMap[string, monthTotals](),
		byStaff:    newGroupMap[uuid.UUID, staffTotals](),
		byCustomer: newGroupMap[uuid.UUID, customerTotals](),
		byStock:    newGroupMap[uuid.UUID, stockTotals](),
	}
}

// add folds one row into the aggregates. Revenue is only counted on the
// first surviving row of each work order; per-line cost is counted on
// every row.
func (r *rollup) add(row joinedRow) {
	revenue := int64(0)
	if row.firstLine {
		revenue = row.invoiceTotal
	}

	r.totalRevenue += revenue
	r.totalCOGS += row.lineCost

	r.byMonth.upsert(row.month, monthTotals{revenue: revenue, cogs: row.lineCost},
		func(existing, delta monthTotals) monthTotals {
			existing.revenue += delta.revenue
			existing.cogs += delta.cogs
			return existing
		})

	if row.staffID != nil {
		r.byStaff.upsert(*row.staffID, staffTotals{name: row.staffName, revenue: revenue},
			func(existing, delta staffTotals) staffTotals {
				existing.revenue += delta.revenue
				return existing
			})
	}

	if row.customerID != nil {
		r.byCustomer.upsert(*row.customerID, customerTotals{name: row.customerName, revenue: revenue},
			func(existing, delta customerTotals) customerTotals {
				existing.revenue += delta.revenue
				return existing
			})
	}

	if row.stockItemID != nil && row.stockKnown {
		r.byStock.upsert(*row.stockItemID, stockTotals{name: row.stockName, quantity: row.quantity, cost: row.lineCost},
			func(existing, delta stockTotals) stockTotals {
				existing.quantity += delta.quantity
				existing.cost += delta.cost
				return existing
			})
	}
}

// buildJoinedRows flattens work orders against their invoice and stock
// usage lines. Rows are not yet tagged firstLine; tagging happens after
// the stock filter so the revenue lands on the first surviving row.
func buildJoinedRows(orders []entity.WorkOrder, invoiceByOrder map[uuid.UUID]entity.Invoice, items map[uuid.UUID]entity.StockItem) []joinedRow {
	rows := make([]joinedRow, 0, len(orders))

	for i := range orders {
		order := &orders[i]

		base := joinedRow{
			workOrderID: order.ID,
			month:       order.CreatedAt.Format("2006-01"),
			staffID:     order.StaffID,
			customerID:  order.CustomerID,
		}
		if order.Staff != nil {
			base.staffName = order.Staff.ContactPersonName
		}
		if order.Customer != nil {
			base.customerName = order.Customer.ContactPersonName
		}
		if invoice, ok := invoiceByOrder[order.ID]; ok {
			base.invoiceTotal = invoice.Total
		}

		if len(order.StockUsage) == 0 {
			rows = append(rows, base)
			continue
		}

		for _, usage := range order.StockUsage {
			row := base
			stockItemID := usage.StockItemID
			row.stockItemID = &stockItemID
			row.quantity = usage.Quantity
			if item, ok := items[usage.StockItemID]; ok {
				row.stockKnown = true
				row.stockName = item.Name
				row.lineCost = int64(usage.Quantity) * item.PurchasePrice
			}
			rows = append(rows, row)
		}
	}

	return rows
}

// filterByStock keeps only rows whose usage line matches the given stock
// item. Orders whose lines are all dropped disappear from every
// downstream sum, revenue included.
func filterByStock(rows []joinedRow, stockID uuid.UUID) []joinedRow {
	filtered := rows[:0]
	for _, row := range rows {
		if row.stockItemID != nil && *row.stockItemID == stockID {
			filtered = append(filtered, row)
		}
	}
	return filtered
}

// tagFirstLines marks the first row seen for each work order so revenue
// is added exactly once per order regardless of line fan-out
func tagFirstLines(rows []joinedRow) {
	seen := make(map[uuid.UUID]bool, len(rows))
	for i := range rows {
		if !seen[rows[i].workOrderID] {
			rows[i].firstLine = true
			seen[rows[i].workOrderID] = true
		}
	}
}

// completeMonths expands the by-month aggregate into one entry per
// calendar month between start and end inclusive, ascending, inserting
// zero entries for months with no rows
func completeMonths(byMonth *groupMap[string, monthTotals], start, end time.Time) []MonthRevenue {
	var series []MonthRevenue

	cursor := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, time.UTC)

	for !cursor.After(last) {
		key := cursor.Format("2006-01")
		totals := byMonth.entries[key]
		series = append(series, MonthRevenue{
			Month:   key,
			Revenue: centsToDecimal(totals.revenue),
			COGS:    centsToDecimal(totals.cogs),
			Profit:  centsToDecimal(totals.revenue - totals.cogs),
		})
		cursor = cursor.AddDate(0, 1, 0)
	}

	return series
}

// rankStaff sorts staff revenue descending, ties broken by id
func rankStaff(byStaff *groupMap[uuid.UUID, staffTotals]) []StaffPerformance {
	ranked := make([]StaffPerformance, 0, len(byStaff.entries))
	for id, totals := range byStaff.entries {
		ranked = append(ranked, StaffPerformance{
			StaffID:      id,
			StaffName:    totals.name,
			TotalRevenue: centsToDecimal(totals.revenue),
		})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].TotalRevenue != ranked[j].TotalRevenue {
			return ranked[i].TotalRevenue > ranked[j].TotalRevenue
		}
		return ranked[i].StaffID.String() < ranked[j].StaffID.String()
	})
	return ranked
}

// rankCustomers sorts customer revenue descending, ties broken by id
func rankCustomers(byCustomer *groupMap[uuid.UUID, customerTotals]) []CustomerPerformance {
	ranked := make([]CustomerPerformance, 0, len(byCustomer.entries))
	for id, totals := range byCustomer.entries {
		ranked = append(ranked, CustomerPerformance{
			CustomerID:   id,
			CustomerName: totals.name,
			TotalRevenue: centsToDecimal(totals.revenue),
		})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].TotalRevenue != ranked[j].TotalRevenue {
			return ranked[i].TotalRevenue > ranked[j].TotalRevenue
		}
		return ranked[i].CustomerID.String() < ranked[j].CustomerID.String()
	})
	return ranked
}

// rankStockUsage sorts stock usage cost descending, ties broken by id
func rankStockUsage(byStock *groupMap[uuid.UUID, stockTotals]) []StockUsageCost {
	ranked := make([]StockUsageCost, 0, len(byStock.entries))
	for id, totals := range byStock.entries {
		ranked = append(ranked, StockUsageCost{
			StockID:      id,
			StockName:    totals.name,
			QuantityUsed: totals.quantity,
			TotalCost:    centsToDecimal(totals.cost),
		})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].TotalCost != ranked[j].TotalCost {
			return ranked[i].TotalCost > ranked[j].TotalCost
		}
		return ranked[i].StockID.String() < ranked[j].StockID.String()
	})
	return ranked
}

// topOverdue returns the n overdue invoices with the largest balance due,
// descending, ties broken by invoice id. Customer names fall back to
// "N/A" when the customer cannot be resolved.
func topOverdue(invoices []entity.Invoice, n int) []OverdueInvoice {
	sorted := make([]entity.Invoice, len(invoices))
	copy(sorted, invoices)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].BalanceDue != sorted[j].BalanceDue {
			return sorted[i].BalanceDue > sorted[j].BalanceDue
		}
		return sorted[i].ID.String() < sorted[j].ID.String()
	})

	if len(sorted) > n {
		sorted = sorted[:n]
	}

	top := make([]OverdueInvoice, 0, len(sorted))
	for i := range sorted {
		invoice := &sorted[i]
		customerName := "N/A"
		if invoice.Customer != nil {
			customerName = invoice.Customer.ContactPersonName
		}
		top = append(top, OverdueInvoice{
			InvoiceID:     invoice.ID,
			InvoiceNumber: invoice.InvoiceNumber,
			CustomerName:  customerName,
			DueDate:       invoice.DueDate.Format("2006-01-02"),
			BalanceDue:    centsToDecimal(invoice.BalanceDue),
		})
	}

	return top
}

func centsToDecimal(cents int64) float64 {
	return float64(cents) / 100
}
