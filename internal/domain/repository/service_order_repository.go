package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/otica-api/internal/domain/entity"
	"github.com/sangkips/otica-api/pkg/pagination"
)

// ServiceOrderFilter narrows a service order listing.
type ServiceOrderFilter struct {
	ClientID *uuid.UUID
}

// ServiceOrderRepository defines the interface for service order data operations
type ServiceOrderRepository interface {
	Create(ctx context.Context, order *entity.ServiceOrder) error
	// GetByID loads the order with its client.
	GetByID(ctx context.Context, id uuid.UUID) (*entity.ServiceOrder, error)
	// GetByNumber includes deleted orders, whose numbers stay reserved.
	GetByNumber(ctx context.Context, number string) (*entity.ServiceOrder, error)
	Update(ctx context.Context, order *entity.ServiceOrder) error
	Delete(ctx context.Context, id uuid.UUID) error
	// List returns orders newest first; params.Search matches the order number or client name.
	List(ctx context.Context, params *pagination.PaginationParams, filter ServiceOrderFilter) ([]entity.ServiceOrder, int64, error)
	// LastNumber returns the highest OS<digits> number ever issued, deleted
	// orders included, or "" when there is none.
	LastNumber(ctx context.Context) (string, error)
}
