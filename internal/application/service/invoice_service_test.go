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
	infraRepo "github.com/mwaniki/serviceos-api/internal/infrastructure/repository"
	"github.com/mwaniki/serviceos-api/pkg/apperror"
)

type fakeInvoiceRepo struct {
	repository.InvoiceRepository
	byID    map[uuid.UUID]*entity.Invoice
	byOrder map[uuid.UUID][]entity.Invoice
	open    []entity.Invoice
	created []*entity.Invoice
	updated []*entity.Invoice
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{
		byID:    make(map[uuid.UUID]*entity.Invoice),
		byOrder: make(map[uuid.UUID][]entity.Invoice),
	}
}

func (f *fakeInvoiceRepo) Create(ctx context.Context, invoice *entity.Invoice) error {
	if invoice.ID == uuid.Nil {
		invoice.ID = uuid.New()
	}
	f.byID[invoice.ID] = invoice
	f.created = append(f.created, invoice)
	return nil
}

func (f *fakeInvoiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	return f.byID[id], nil
}

func (f *fakeInvoiceRepo) Update(ctx context.Context, invoice *entity.Invoice) error {
	f.byID[invoice.ID] = invoice
	f.updated = append(f.updated, invoice)
	return nil
}

func (f *fakeInvoiceRepo) ListByWorkOrderIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Invoice, error) {
	var matched []entity.Invoice
	for _, id := range ids {
		matched = append(matched, f.byOrder[id]...)
	}
	return matched, nil
}

func (f *fakeInvoiceRepo) ListOpenByStatus(ctx context.Context, statuses []enum.InvoiceStatus) ([]entity.Invoice, error) {
	var matched []entity.Invoice
	for _, invoice := range f.open {
		for _, status := range statuses {
			if invoice.Status == status {
				matched = append(matched, invoice)
			}
		}
	}
	return matched, nil
}

type fakeWorkOrderRepo struct {
	repository.WorkOrderRepository
	byID    map[uuid.UUID]*entity.WorkOrder
	updated []*entity.WorkOrder
}

func newFakeWorkOrderRepo() *fakeWorkOrderRepo {
	return &fakeWorkOrderRepo{byID: make(map[uuid.UUID]*entity.WorkOrder)}
}

func (f *fakeWorkOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.WorkOrder, error) {
	return f.byID[id], nil
}

func (f *fakeWorkOrderRepo) Update(ctx context.Context, order *entity.WorkOrder) error {
	f.byID[order.ID] = order
	f.updated = append(f.updated, order)
	return nil
}

func companyContext() context.Context {
	return infraRepo.WithCompany(context.Background(), uuid.New())
}

func TestCreateInvoice_AgainstWorkOrder(t *testing.T) {
	invoiceRepo := newFakeInvoiceRepo()
	orderRepo := newFakeWorkOrderRepo()

	customerID := uuid.New()
	order := &entity.WorkOrder{
		ID:         uuid.New(),
		Status:     enum.WorkOrderStatusCompleted,
		CustomerID: &customerID,
	}
	orderRepo.byID[order.ID] = order

	svc := NewInvoiceService(invoiceRepo, orderRepo)
	invoice, err := svc.CreateInvoice(companyContext(), &CreateInvoiceInput{
		WorkOrderID: &order.ID,
		Total:       150.50,
		DueDate:     time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(15050), invoice.Total)
	assert.Equal(t, int64(15050), invoice.BalanceDue)
	assert.Equal(t, enum.InvoiceStatusDraft, invoice.Status)
	assert.NotEmpty(t, invoice.InvoiceNumber)

	// Customer inherited from the order
	require.NotNil(t, invoice.CustomerID)
	assert.Equal(t, customerID, *invoice.CustomerID)

	// Completed order moves to Invoiced
	assert.Equal(t, enum.WorkOrderStatusInvoiced, order.Status)
}

func TestCreateInvoice_DuplicateOrderRejected(t *testing.T) {
	invoiceRepo := newFakeInvoiceRepo()
	orderRepo := newFakeWorkOrderRepo()

	order := &entity.WorkOrder{ID: uuid.New(), Status: enum.WorkOrderStatusInvoiced}
	orderRepo.byID[order.ID] = order
	invoiceRepo.byOrder[order.ID] = []entity.Invoice{{ID: uuid.New(), WorkOrderID: &order.ID}}

	svc := NewInvoiceService(invoiceRepo, orderRepo)
	_, err := svc.CreateInvoice(companyContext(), &CreateInvoiceInput{
		WorkOrderID: &order.ID,
		Total:       100,
		DueDate:     time.Now(),
	})
	require.Error(t, err)
	assert.Equal(t, 409, apperror.GetAppError(err).Code)
}

func TestCreateInvoice_Validation(t *testing.T) {
	svc := NewInvoiceService(newFakeInvoiceRepo(), newFakeWorkOrderRepo())

	t.Run("negative total", func(t *testing.T) {
		_, err := svc.CreateInvoice(companyContext(), &CreateInvoiceInput{Total: -5})
		require.Error(t, err)
		assert.Equal(t, 400, apperror.GetAppError(err).Code)
	})

	t.Run("missing company context", func(t *testing.T) {
		_, err := svc.CreateInvoice(context.Background(), &CreateInvoiceInput{Total: 10})
		require.Error(t, err)
		assert.Equal(t, 400, apperror.GetAppError(err).Code)
	})

	t.Run("unknown work order", func(t *testing.T) {
		missing := uuid.New()
		_, err := svc.CreateInvoice(companyContext(), &CreateInvoiceInput{
			WorkOrderID: &missing,
			Total:       10,
		})
		require.Error(t, err)
		assert.Equal(t, 404, apperror.GetAppError(err).Code)
	})
}

func TestRecordPayment_Transitions(t *testing.T) {
	invoiceRepo := newFakeInvoiceRepo()
	invoice := &entity.Invoice{
		ID:         uuid.New(),
		Total:      10000,
		BalanceDue: 10000,
		Status:     enum.InvoiceStatusSent,
	}
	invoiceRepo.byID[invoice.ID] = invoice

	svc := NewInvoiceService(invoiceRepo, newFakeWorkOrderRepo())

	updated, err := svc.RecordPayment(context.Background(), &RecordPaymentInput{
		InvoiceID: invoice.ID,
		Amount:    40,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(6000), updated.BalanceDue)
	assert.Equal(t, enum.InvoiceStatusPartiallyPaid, updated.Status)

	updated, err = svc.RecordPayment(context.Background(), &RecordPaymentInput{
		InvoiceID: invoice.ID,
		Amount:    60,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), updated.BalanceDue)
	assert.Equal(t, enum.InvoiceStatusPaid, updated.Status)
}

func TestRecordPayment_Rejections(t *testing.T) {
	invoiceRepo := newFakeInvoiceRepo()
	invoice := &entity.Invoice{ID: uuid.New(), Total: 5000, BalanceDue: 5000, Status: enum.InvoiceStatusSent}
	invoiceRepo.byID[invoice.ID] = invoice

	svc := NewInvoiceService(invoiceRepo, newFakeWorkOrderRepo())

	t.Run("non-positive amount", func(t *testing.T) {
		_, err := svc.RecordPayment(context.Background(), &RecordPaymentInput{InvoiceID: invoice.ID, Amount: 0})
		require.Error(t, err)
		assert.Equal(t, 400, apperror.GetAppError(err).Code)
	})

	t.Run("overpayment", func(t *testing.T) {
		_, err := svc.RecordPayment(context.Background(), &RecordPaymentInput{InvoiceID: invoice.ID, Amount: 99.99})
		require.Error(t, err)
		assert.Equal(t, 400, apperror.GetAppError(err).Code)
	})

	t.Run("missing invoice", func(t *testing.T) {
		_, err := svc.RecordPayment(context.Background(), &RecordPaymentInput{InvoiceID: uuid.New(), Amount: 10})
		require.Error(t, err)
		assert.Equal(t, 404, apperror.GetAppError(err).Code)
	})
}

func TestMarkOverdueInvoices(t *testing.T) {
	invoiceRepo := newFakeInvoiceRepo()
	pastDue := entity.Invoice{
		ID:         uuid.New(),
		Status:     enum.InvoiceStatusSent,
		BalanceDue: 3000,
		DueDate:    time.Now().AddDate(0, 0, -10),
	}
	notYetDue := entity.Invoice{
		ID:         uuid.New(),
		Status:     enum.InvoiceStatusPartiallyPaid,
		BalanceDue: 2000,
		DueDate:    time.Now().AddDate(0, 0, 10),
	}
	invoiceRepo.open = []entity.Invoice{pastDue, notYetDue}
	invoiceRepo.byID[pastDue.ID] = &pastDue
	invoiceRepo.byID[notYetDue.ID] = &notYetDue

	svc := NewInvoiceService(invoiceRepo, newFakeWorkOrderRepo())
	marked, err := svc.MarkOverdueInvoices(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, marked)
	require.Len(t, invoiceRepo.updated, 1)
	assert.Equal(t, enum.InvoiceStatusOverdue, invoiceRepo.updated[0].Status)
	assert.Equal(t, pastDue.ID, invoiceRepo.updated[0].ID)
}
