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

type clientRepository struct {
	db *gorm.DB
}

// NewClientRepository creates a new client repository
func NewClientRepository(db *gorm.DB) domainRepo.ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) Create(ctx context.Context, client *entity.Client) error {
	return r.db.WithContext(ctx).Create(client).Error
}

func (r *clientRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Client, error) {
	var client entity.Client
	err := r.db.WithContext(ctx).First(&client, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &client, err
}

func (r *clientRepository) GetByCPF(ctx context.Context, cpf string) (*entity.Client, error) {
	var client entity.Client
	err := r.db.WithContext(ctx).First(&client, "cpf = ?", cpf).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &client, err
}

func (r *clientRepository) Update(ctx context.Context, client *entity.Client) error {
	return r.db.WithContext(ctx).Save(client).Error
}

func (r *clientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Client{}, "id = ?", id).Error
}

func (r *clientRepository) List(ctx context.Context, params *pagination.PaginationParams) ([]entity.Client, int64, error) {
	var clients []entity.Client
	var total int64

	params.Validate()
	query := r.db.WithContext(ctx).Model(&entity.Client{})
	if params.Search != "" {
		like := "%" + params.Search + "%"
		query = query.Where("nome ILIKE ? OR cpf ILIKE ? OR telefone ILIKE ?", like, like, like)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("nome ASC").
		Find(&clients).Error

	return clients, total, err
}
