package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/otica-api/internal/domain/entity"
	"github.com/sangkips/otica-api/pkg/pagination"
)

// PaymentFilter narrows a payment listing.
type PaymentFilter struct {
	ServiceOrderID *uuid.UUID
	Status         string
}

// PaymentRepository defines the interface for payment data operations
type PaymentRepository interface {
	Create(ctx context.Context, p *entity.Payment) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error)
	// GetWithDetails loads the payment with its service order and client.
	GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Payment, error)
	Update(ctx context.Context, p *entity.Payment) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, filter PaymentFilter) ([]entity.Payment, int64, error)
}
