package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/otica-api/internal/domain/entity"
	domainRepo "github.com/sangkips/otica-api/internal/domain/repository"
	"github.com/sangkips/otica-api/pkg/pagination"
	"github.com/sangkips/otica-api/pkg/utils"
	"gorm.io/gorm"
)

type serviceOrderRepository struct {
	db *gorm.DB
}

// NewServiceOrderRepository creates a new service order repository
func NewServiceOrderRepository(db *gorm.DB) domainRepo.ServiceOrderRepository {
	return &serviceOrderRepository{db: db}
}

func (r *serviceOrderRepository) Create(ctx context.Context, order *entity.ServiceOrder) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *serviceOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.ServiceOrder, error) {
	var order entity.ServiceOrder
	err := r.db.WithContext(ctx).
		Preload("Client").
		First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *serviceOrderRepository) GetByNumber(ctx context.Context, number string) (*entity.ServiceOrder, error) {
	var order entity.ServiceOrder
	err := r.db.WithContext(ctx).Unscoped().First(&order, "numero_os = ?", number).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *serviceOrderRepository) Update(ctx context.Context, order *entity.ServiceOrder) error {
	return r.db.WithContext(ctx).Omit("Client").Save(order).Error
}

func (r *serviceOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.ServiceOrder{}, "id = ?", id).Error
}

func (r *serviceOrderRepository) List(ctx context.Context, params *pagination.PaginationParams, filter domainRepo.ServiceOrderFilter) ([]entity.ServiceOrder, int64, error) {
	var orders []entity.ServiceOrder
	var total int64

	params.Validate()
	query := r.db.WithContext(ctx).Model(&entity.ServiceOrder{})
	if filter.ClientID != nil {
		query = query.Where("ordem_servico.id_cliente = ?", *filter.ClientID)
	}
	if params.Search != "" {
		like := "%" + params.Search + "%"
		query = query.Joins("LEFT JOIN cliente ON cliente.id = ordem_servico.id_cliente").
			Where("ordem_servico.numero_os ILIKE ? OR cliente.nome ILIKE ?", like, like)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Client").
		Offset(params.Offset()).Limit(params.PerPage).
		Order("ordem_servico.data_pedido DESC, ordem_servico.created_at DESC").
		Find(&orders).Error

	return orders, total, err
}

func (r *serviceOrderRepository) LastNumber(ctx context.Context) (string, error) {
	var numbers []string
	err := r.db.WithContext(ctx).Unscoped().
		Model(&entity.ServiceOrder{}).
		Where("numero_os ~ ?", utils.OrderNumberSQLPattern).
		Order("CAST(substring(numero_os from 3) AS bigint) DESC").
		Limit(1).
		Pluck("numero_os", &numbers).Error
	if err != nil || len(numbers) == 0 {
		return "", err
	}
	return numbers[0], nil
}
