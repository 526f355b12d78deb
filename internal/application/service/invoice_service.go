package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mwaniki/serviceos-api/internal/domain/entity"
	"github.com/mwaniki/serviceos-api/internal/domain/enum"
	"github.com/mwaniki/serviceos-api/internal/domain/repository"
	infraRepo "github.com/mwaniki/serviceos-api/internal/infrastructure/repository"
	"github.com/mwaniki/serviceos-api/pkg/apperror"
	"github.com/mwaniki/serviceos-api/pkg/pagination"
	"github.com/mwaniki/serviceos-api/pkg/utils"
)

// InvoiceService handles invoice operations
type InvoiceService struct {
	invoiceRepo   repository.InvoiceRepository
	workOrderRepo repository.WorkOrderRepository
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(invoiceRepo repository.InvoiceRepository, workOrderRepo repository.WorkOrderRepository) *InvoiceService {
	return &InvoiceService{invoiceRepo: invoiceRepo, workOrderRepo: workOrderRepo}
}

// CreateInvoiceInput represents the create invoice input
type CreateInvoiceInput struct {
	WorkOrderID *uuid.UUID
	CustomerID  *uuid.UUID
	Total       float64
	DueDate     time.Time
}

// CreateInvoice creates a new invoice. When the invoice references a work
// order, at most one invoice may exist per order and the order moves to
// Invoiced.
func (s *InvoiceService) CreateInvoice(ctx context.Context, input *CreateInvoiceInput) (*entity.Invoice, error) {
	companyID, ok := infraRepo.GetCompanyID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Company context required")
	}
	if input.Total < 0 {
		return nil, apperror.NewBadRequestError("Invoice total must not be negative")
	}

	var order *entity.WorkOrder
	if input.WorkOrderID != nil {
		var err error
		order, err = s.workOrderRepo.GetByID(ctx, *input.WorkOrderID)
		if err != nil {
			return nil, err
		}
		if order == nil {
			return nil, apperror.NewNotFoundError("Work order")
		}

		existing, err := s.invoiceRepo.ListByWorkOrderIDs(ctx, []uuid.UUID{order.ID})
		if err != nil {
			return nil, err
		}
		if len(existing) > 0 {
			return nil, apperror.NewConflictError("Work order already has an invoice")
		}
	}

	totalCents := int64(input.Total * 100)
	invoice := &entity.Invoice{
		CompanyID:     companyID,
		WorkOrderID:   input.WorkOrderID,
		CustomerID:    input.CustomerID,
		InvoiceNumber: utils.GenerateInvoiceNo("INV-"),
		Total:         totalCents,
		BalanceDue:    totalCents,
		Status:        enum.InvoiceStatusDraft,
		DueDate:       input.DueDate,
	}
	if invoice.CustomerID == nil && order != nil {
		invoice.CustomerID = order.CustomerID
	}

	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, err
	}

	if order != nil && order.Status == enum.WorkOrderStatusCompleted {
		order.Status = enum.WorkOrderStatusInvoiced
		if err := s.workOrderRepo.Update(ctx, order); err != nil {
			return nil, err
		}
	}

	return invoice, nil
}

// GetInvoice retrieves an invoice by ID
func (s *InvoiceService) GetInvoice(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return invoice, nil
}

// ListInvoices lists invoices for the company on the context
func (s *InvoiceService) ListInvoices(ctx context.Context, params *repository.InvoiceFilterParams) (*pagination.PaginatedResult[entity.Invoice], error) {
	invoices, total, err := s.invoiceRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(invoices, pag), nil
}

// RecordPaymentInput represents a payment against an invoice
type RecordPaymentInput struct {
	InvoiceID uuid.UUID
	Amount    float64
}

// RecordPayment applies a payment to an invoice and advances its status
func (s *InvoiceService) RecordPayment(ctx context.Context, input *RecordPaymentInput) (*entity.Invoice, error) {
	if input.Amount <= 0 {
		return nil, apperror.NewBadRequestError("Payment amount must be positive")
	}

	invoice, err := s.invoiceRepo.GetByID(ctx, input.InvoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}

	amountCents := int64(input.Amount * 100)
	if amountCents > invoice.BalanceDue {
		return nil, apperror.NewBadRequestError("Payment exceeds balance due")
	}

	invoice.BalanceDue -= amountCents
	if invoice.BalanceDue == 0 {
		invoice.Status = enum.InvoiceStatusPaid
	} else {
		invoice.Status = enum.InvoiceStatusPartiallyPaid
	}

	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		return nil, err
	}

	return invoice, nil
}

// UpdateInvoiceStatus sets the status of an invoice
func (s *InvoiceService) UpdateInvoiceStatus(ctx context.Context, id uuid.UUID, status enum.InvoiceStatus) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}

	invoice.Status = status
	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		return nil, err
	}

	return invoice, nil
}

// MarkOverdueInvoices flags sent and partially paid invoices whose due
// date has passed. Intended to be called periodically or on dashboard
// load.
func (s *InvoiceService) MarkOverdueInvoices(ctx context.Context) (int, error) {
	open, err := s.invoiceRepo.ListOpenByStatus(ctx, []enum.InvoiceStatus{
		enum.InvoiceStatusSent, enum.InvoiceStatusPartiallyPaid,
	})
	if err != nil {
		return 0, err
	}

	today := time.Now()
	marked := 0
	for i := range open {
		if open[i].DueDate.Before(today) {
			open[i].Status = enum.InvoiceStatusOverdue
			if err := s.invoiceRepo.Update(ctx, &open[i]); err != nil {
				return marked, err
			}
			marked++
		}
	}
	return marked, nil
}

// DeleteInvoice deletes an invoice
func (s *InvoiceService) DeleteInvoice(ctx context.Context, id uuid.UUID) error {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if invoice == nil {
		return apperror.NewNotFoundError("Invoice")
	}

	return s.invoiceRepo.Delete(ctx, id)
}
