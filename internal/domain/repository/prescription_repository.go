package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/otica-api/internal/domain/entity"
)

// PrescriptionRepository defines the interface for prescription (receita) data operations
type PrescriptionRepository interface {
	Create(ctx context.Context, p *entity.Prescription) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Prescription, error)
	Update(ctx context.Context, p *entity.Prescription) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]entity.Prescription, error)
}
