package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwaniki/serviceos-api/internal/domain/entity"
	"github.com/mwaniki/serviceos-api/internal/domain/enum"
	"github.com/mwaniki/serviceos-api/internal/domain/repository"
	"github.com/mwaniki/serviceos-api/pkg/apperror"
)

type fakeLeadRepo struct {
	repository.LeadRepository
	byID map[uuid.UUID]*entity.Lead
}

func newFakeLeadRepo() *fakeLeadRepo {
	return &fakeLeadRepo{byID: make(map[uuid.UUID]*entity.Lead)}
}

func (f *fakeLeadRepo) Create(ctx context.Context, lead *entity.Lead) error {
	if lead.ID == uuid.Nil {
		lead.ID = uuid.New()
	}
	f.byID[lead.ID] = lead
	return nil
}

func (f *fakeLeadRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Lead, error) {
	return f.byID[id], nil
}

func (f *fakeLeadRepo) Update(ctx context.Context, lead *entity.Lead) error {
	f.byID[lead.ID] = lead
	return nil
}

type fakeCustomerRepo struct {
	repository.CustomerRepository
	created []*entity.Customer
}

func (f *fakeCustomerRepo) Create(ctx context.Context, customer *entity.Customer) error {
	if customer.ID == uuid.Nil {
		customer.ID = uuid.New()
	}
	f.created = append(f.created, customer)
	return nil
}

func TestCreateLead_StartsNew(t *testing.T) {
	leadRepo := newFakeLeadRepo()
	svc := NewLeadService(leadRepo, &fakeCustomerRepo{})

	lead, err := svc.CreateLead(companyContext(), &CreateLeadInput{
		CreatedByID:       uuid.New(),
		ContactPersonName: "Sam Prospect",
	})
	require.NoError(t, err)
	assert.Equal(t, enum.LeadStatusNew, lead.LeadStatus)
	assert.Equal(t, "Sam Prospect", lead.ContactPersonName)
}

func TestConvertLead(t *testing.T) {
	leadRepo := newFakeLeadRepo()
	customerRepo := &fakeCustomerRepo{}

	email := "sam@prospect.example"
	lead := &entity.Lead{
		ID:                uuid.New(),
		CompanyID:         uuid.New(),
		ContactPersonName: "Sam Prospect",
		Email:             &email,
		LeadStatus:        enum.LeadStatusQualified,
	}
	leadRepo.byID[lead.ID] = lead

	svc := NewLeadService(leadRepo, customerRepo)
	customer, err := svc.ConvertLead(context.Background(), lead.ID)
	require.NoError(t, err)

	assert.Equal(t, "Sam Prospect", customer.ContactPersonName)
	require.NotNil(t, customer.Email)
	assert.Equal(t, email, *customer.Email)
	assert.Equal(t, lead.CompanyID, customer.CompanyID)
	assert.Equal(t, enum.LeadStatusConverted, leadRepo.byID[lead.ID].LeadStatus)

	// A second conversion is refused
	_, err = svc.ConvertLead(context.Background(), lead.ID)
	require.Error(t, err)
	assert.Equal(t, 409, apperror.GetAppError(err).Code)
}

func TestConvertLead_NotFound(t *testing.T) {
	svc := NewLeadService(newFakeLeadRepo(), &fakeCustomerRepo{})
	_, err := svc.ConvertLead(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}
