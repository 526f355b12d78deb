package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/mwaniki/serviceos-api/internal/domain/entity"
	domainRepo "github.com/mwaniki/serviceos-api/internal/domain/repository"
	"github.com/mwaniki/serviceos-api/pkg/pagination"
	"gorm.io/gorm"
)

type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *gorm.DB) domainRepo.CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

func (r *customerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	var customer entity.Customer
	err := r.db.WithContext(ctx).Scopes(CompanyScope(ctx)).First(&customer, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &customer, err
}

func (r *customerRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]entity.Customer, error) {
	result := make(map[uuid.UUID]entity.Customer, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var customers []entity.Customer
	err := r.db.WithContext(ctx).Scopes(CompanyScope(ctx)).Find(&customers, "id IN ?", ids).Error
	if err != nil {
		return nil, err
	}
	for _, c := range customers {
		result[c.ID] = c
	}
	return result, nil
}

func (r *customerRepository) Update(ctx context.Context, customer *entity.Customer) error {
	return r.db.WithContext(ctx).Save(customer).Error
}

func (r *customerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Scopes(CompanyScope(ctx)).Delete(&entity.Customer{}, "id = ?", id).Error
}

func (r *customerRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error) {
	var customers []entity.Customer
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Customer{}).Scopes(CompanyScope(ctx))

	if search != "" {
		query = query.Where("contact_person_name ILIKE ? OR company_name ILIKE ? OR email ILIKE ? OR phone ILIKE ?",
			"%"+search+"%", "%"+search+"%", "%"+search+"%", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("contact_person_name ASC").
		Find(&customers).Error

	return customers, total, err
}

func (r *customerRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&entity.Customer{}).Scopes(CompanyScope(ctx)).Count(&total).Error
	return total, err
}

type staffRepository struct {
	db *gorm.DB
}

// NewStaffRepository creates a new staff repository
func NewStaffRepository(db *gorm.DB) domainRepo.StaffRepository {
	return &staffRepository{db: db}
}

func (r *staffRepository) Create(ctx context.Context, staff *entity.Staff) error {
	return r.db.WithContext(ctx).Create(staff).Error
}

func (r *staffRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Staff, error) {
	var staff entity.Staff
	err := r.db.WithContext(ctx).Scopes(CompanyScope(ctx)).First(&staff, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &staff, err
}

func (r *staffRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]entity.Staff, error) {
	result := make(map[uuid.UUID]entity.Staff, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var members []entity.Staff
	err := r.db.WithContext(ctx).Scopes(CompanyScope(ctx)).Find(&members, "id IN ?", ids).Error
	if err != nil {
		return nil, err
	}
	for _, s := range members {
		result[s.ID] = s
	}
	return result, nil
}

func (r *staffRepository) Update(ctx context.Context, staff *entity.Staff) error {
	return r.db.WithContext(ctx).Save(staff).Error
}

func (r *staffRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Scopes(CompanyScope(ctx)).Delete(&entity.Staff{}, "id = ?", id).Error
}

func (r *staffRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Staff, int64, error) {
	var members []entity.Staff
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Staff{}).Scopes(CompanyScope(ctx))

	if search != "" {
		query = query.Where("contact_person_name ILIKE ? OR email ILIKE ? OR phone ILIKE ?",
			"%"+search+"%", "%"+search+"%", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("contact_person_name ASC").
		Find(&members).Error

	return members, total, err
}

func (r *staffRepository) ListActive(ctx context.Context) ([]entity.Staff, error) {
	var members []entity.Staff
	err := r.db.WithContext(ctx).Scopes(CompanyScope(ctx)).
		Where("is_active = ?", true).
		Order("contact_person_name ASC").
		Find(&members).Error
	return members, err
}

type leadRepository struct {
	db *gorm.DB
}

// NewLeadRepository creates a new lead repository
func NewLeadRepository(db *gorm.DB) domainRepo.LeadRepository {
	return &leadRepository{db: db}
}

func (r *leadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	return r.db.WithContext(ctx).Create(lead).Error
}

func (r *leadRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Lead, error) {
	var lead entity.Lead
	err := r.db.WithContext(ctx).Scopes(CompanyScope(ctx)).First(&lead, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &lead, err
}

func (r *leadRepository) Update(ctx context.Context, lead *entity.Lead) error {
	return r.db.WithContext(ctx).Save(lead).Error
}

func (r *leadRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Scopes(CompanyScope(ctx)).Delete(&entity.Lead{}, "id = ?", id).Error
}

func (r *leadRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Lead, int64, error) {
	var leads []entity.Lead
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Lead{}).Scopes(CompanyScope(ctx))

	if search != "" {
		query = query.Where("contact_person_name ILIKE ? OR company_name ILIKE ? OR email ILIKE ?",
			"%"+search+"%", "%"+search+"%", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("created_at DESC").
		Find(&leads).Error

	return leads, total, err
}

func (r *leadRepository) ListRecent(ctx context.Context, limit int) ([]entity.Lead, error) {
	var leads []entity.Lead
	err := r.db.WithContext(ctx).Scopes(CompanyScope(ctx)).
		Order("created_at DESC").
		Limit(limit).
		Find(&leads).Error
	return leads, err
}

func (r *leadRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&entity.Lead{}).Scopes(CompanyScope(ctx)).Count(&total).Error
	return total, err
}
