package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/otica-api/internal/domain/entity"
	domainRepo "github.com/sangkips/otica-api/internal/domain/repository"
	"github.com/sangkips/otica-api/pkg/pagination"
	"gorm.io/gorm"
)

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) domainRepo.PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, p *entity.Payment) error {
	return r.db.WithContext(ctx).Omit("ServiceOrder").Create(p).Error
}

func (r *paymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	var p entity.Payment
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &p, err
}

func (r *paymentRepository) GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	var p entity.Payment
	err := r.db.WithContext(ctx).
		Preload("ServiceOrder").
		Preload("ServiceOrder.Client").
		First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &p, err
}

func (r *paymentRepository) Update(ctx context.Context, p *entity.Payment) error {
	return r.db.WithContext(ctx).Omit("ServiceOrder").Save(p).Error
}

func (r *paymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Payment{}, "id = ?", id).Error
}

func (r *paymentRepository) List(ctx context.Context, params *pagination.PaginationParams, filter domainRepo.PaymentFilter) ([]entity.Payment, int64, error) {
	var payments []entity.Payment
	var total int64

	params.Validate()
	query := r.db.WithContext(ctx).Model(&entity.Payment{})
	if filter.ServiceOrderID != nil {
		query = query.Where("pagamento.id_os = ?", *filter.ServiceOrderID)
	}
	if filter.Status != "" {
		query = query.Where("pagamento.status = ?", filter.Status)
	}
	if params.Search != "" {
		like := "%" + params.Search + "%"
		query = query.
			Joins("JOIN ordem_servico ON ordem_servico.id = pagamento.id_os").
			Joins("LEFT JOIN cliente ON cliente.id = ordem_servico.id_cliente").
			Where("ordem_servico.numero_os ILIKE ? OR cliente.nome ILIKE ?", like, like)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("ServiceOrder").
		Preload("ServiceOrder.Client").
		Offset(params.Offset()).Limit(params.PerPage).
		Order("pagamento.created_at DESC").
		Find(&payments).Error

	return payments, total, err
}
