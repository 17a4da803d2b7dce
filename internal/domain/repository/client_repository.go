package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/otica-api/internal/domain/entity"
	"github.com/sangkips/otica-api/pkg/pagination"
)

// ClientRepository defines the interface for client data operations
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Client, error)
	GetByCPF(ctx context.Context, cpf string) (*entity.Client, error)
	Update(ctx context.Context, client *entity.Client) error
	Delete(ctx context.Context, id uuid.UUID) error
	// List returns clients ordered by name; params.Search matches name, CPF or phone.
	List(ctx context.Context, params *pagination.PaginationParams) ([]entity.Client, int64, error)
}
