package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/otica-api/internal/domain/entity"
)

// FrameLensRepository defines the interface for frame/lens selection data operations
type FrameLensRepository interface {
	Create(ctx context.Context, fl *entity.FrameLens) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.FrameLens, error)
	Update(ctx context.Context, fl *entity.FrameLens) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]entity.FrameLens, error)
	// FirstByOrder returns the earliest selection of an order, or nil.
	FirstByOrder(ctx context.Context, orderID uuid.UUID) (*entity.FrameLens, error)
}
