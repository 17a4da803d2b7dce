package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/otica-api/internal/domain/entity"
	domainRepo "github.com/sangkips/otica-api/internal/domain/repository"
	"gorm.io/gorm"
)

type frameLensRepository struct {
	db *gorm.DB
}

// NewFrameLensRepository creates a new frame/lens repository
func NewFrameLensRepository(db *gorm.DB) domainRepo.FrameLensRepository {
	return &frameLensRepository{db: db}
}

func (r *frameLensRepository) Create(ctx context.Context, fl *entity.FrameLens) error {
	return r.db.WithContext(ctx).Create(fl).Error
}

func (r *frameLensRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.FrameLens, error) {
	var fl entity.FrameLens
	err := r.db.WithContext(ctx).First(&fl, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &fl, err
}

func (r *frameLensRepository) Update(ctx context.Context, fl *entity.FrameLens) error {
	return r.db.WithContext(ctx).Omit("ServiceOrder").Save(fl).Error
}

func (r *frameLensRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.FrameLens{}, "id = ?", id).Error
}

func (r *frameLensRepository) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]entity.FrameLens, error) {
	var items []entity.FrameLens
	err := r.db.WithContext(ctx).
		Where("id_os = ?", orderID).
		Order("created_at ASC").
		Find(&items).Error
	return items, err
}

func (r *frameLensRepository) FirstByOrder(ctx context.Context, orderID uuid.UUID) (*entity.FrameLens, error) {
	var fl entity.FrameLens
	err := r.db.WithContext(ctx).
		Where("id_os = ?", orderID).
		Order("created_at ASC").
		First(&fl).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &fl, err
}
