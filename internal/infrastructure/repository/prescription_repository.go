package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/otica-api/internal/domain/entity"
	domainRepo "github.com/sangkips/otica-api/internal/domain/repository"
	"gorm.io/gorm"
)

type prescriptionRepository struct {
	db *gorm.DB
}

// NewPrescriptionRepository creates a new prescription repository
func NewPrescriptionRepository(db *gorm.DB) domainRepo.PrescriptionRepository {
	return &prescriptionRepository{db: db}
}

func (r *prescriptionRepository) Create(ctx context.Context, p *entity.Prescription) error {
	return r.db.WithContext(ctx).Omit("ServiceOrder").Create(p).Error
}

func (r *prescriptionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Prescription, error) {
	var p entity.Prescription
	err := r.db.WithContext(ctx).
		Preload("ServiceOrder").
		First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &p, err
}

// Update saves every column, so near fields cleared by re-derivation are
// written back as NULL.
func (r *prescriptionRepository) Update(ctx context.Context, p *entity.Prescription) error {
	return r.db.WithContext(ctx).Omit("ServiceOrder").Save(p).Error
}

func (r *prescriptionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Prescription{}, "id = ?", id).Error
}

func (r *prescriptionRepository) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]entity.Prescription, error) {
	var items []entity.Prescription
	err := r.db.WithContext(ctx).
		Where("id_os = ?", orderID).
		Order("created_at ASC").
		Find(&items).Error
	return items, err
}
