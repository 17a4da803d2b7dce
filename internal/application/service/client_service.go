package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/otica-api/internal/domain/entity"
	"github.com/sangkips/otica-api/internal/domain/repository"
	"github.com/sangkips/otica-api/pkg/apperror"
	"github.com/sangkips/otica-api/pkg/pagination"
	"github.com/sangkips/otica-api/pkg/utils"
	"go.uber.org/zap"
)

// ClientService handles client-related operations
type ClientService struct {
	reportHook

	clientRepo repository.ClientRepository
	log        *zap.Logger
}

// NewClientService creates a new client service
func NewClientService(clientRepo repository.ClientRepository, log *zap.Logger) *ClientService {
	return &ClientService{clientRepo: clientRepo, log: log}
}

// CreateClientInput represents the create client input
type CreateClientInput struct {
	Name      string
	CPF       *string
	Phone     *string
	Address   *string
	District  *string
	City      *string
	BirthDate *time.Time
}

// CreateClient registers a new client. A CPF, when given, must have 11
// digits and be unique.
func (s *ClientService) CreateClient(ctx context.Context, input *CreateClientInput) (*entity.Client, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperror.NewFieldError("nome", "is required")
	}

	cpf, err := normalizeCPF(input.CPF)
	if err != nil {
		return nil, err
	}
	if err := s.ensureCPFFree(ctx, cpf, uuid.Nil); err != nil {
		return nil, err
	}

	client := &entity.Client{
		Name:      name,
		CPF:       cpf,
		Phone:     trimmed(input.Phone),
		Address:   trimmed(input.Address),
		District:  trimmed(input.District),
		City:      trimmed(input.City),
		BirthDate: input.BirthDate,
	}

	if err := s.clientRepo.Create(ctx, client); err != nil {
		return nil, err
	}
	s.invalidateReports(ctx)

	s.log.Info("client created", zap.String("client_id", client.ID.String()))
	return client, nil
}

// GetClient retrieves a client by ID
func (s *ClientService) GetClient(ctx context.Context, id uuid.UUID) (*entity.Client, error) {
	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, apperror.NewNotFoundError("Client")
	}
	return client, nil
}

// ListClients lists clients, filtered by params.Search
func (s *ClientService) ListClients(ctx context.Context, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Client], error) {
	clients, total, err := s.clientRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(clients, pag), nil
}

// UpdateClientInput represents the update client input. Nil fields are left
// unchanged; an empty string clears an optional field.
type UpdateClientInput struct {
	ID        uuid.UUID
	Name      *string
	CPF       *string
	Phone     *string
	Address   *string
	District  *string
	City      *string
	BirthDate *time.Time
}

// UpdateClient updates a client
func (s *ClientService) UpdateClient(ctx context.Context, input *UpdateClientInput) (*entity.Client, error) {
	client, err := s.GetClient(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apperror.NewFieldError("nome", "is required")
		}
		client.Name = name
	}
	if input.CPF != nil {
		cpf, err := normalizeCPF(input.CPF)
		if err != nil {
			return nil, err
		}
		if err := s.ensureCPFFree(ctx, cpf, client.ID); err != nil {
			return nil, err
		}
		client.CPF = cpf
	}
	if input.Phone != nil {
		client.Phone = trimmed(input.Phone)
	}
	if input.Address != nil {
		client.Address = trimmed(input.Address)
	}
	if input.District != nil {
		client.District = trimmed(input.District)
	}
	if input.City != nil {
		client.City = trimmed(input.City)
	}
	if input.BirthDate != nil {
		client.BirthDate = input.BirthDate
	}

	if err := s.clientRepo.Update(ctx, client); err != nil {
		return nil, err
	}
	s.invalidateReports(ctx)
	return client, nil
}

// DeleteClient deletes a client
func (s *ClientService) DeleteClient(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetClient(ctx, id); err != nil {
		return err
	}
	if err := s.clientRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateReports(ctx)
	return nil
}

func (s *ClientService) ensureCPFFree(ctx context.Context, cpf *string, self uuid.UUID) error {
	if cpf == nil {
		return nil
	}
	existing, err := s.clientRepo.GetByCPF(ctx, *cpf)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != self {
		return apperror.NewConflictError("A client with this CPF already exists")
	}
	return nil
}

// normalizeCPF formats a CPF as 000.000.000-00. Blank input clears it.
func normalizeCPF(raw *string) (*string, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	d := utils.OnlyDigits(*raw)
	if len(d) != 11 {
		return nil, apperror.NewFieldError("cpf", "must have 11 digits")
	}
	cpf := d[0:3] + "." + d[3:6] + "." + d[6:9] + "-" + d[9:11]
	return &cpf, nil
}

// trimmed returns nil for nil or blank input.
func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
