package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/otica-api/internal/domain/entity"
	"github.com/sangkips/otica-api/internal/domain/enum"
	"github.com/sangkips/otica-api/internal/domain/repository"
	"github.com/sangkips/otica-api/pkg/apperror"
	"github.com/sangkips/otica-api/pkg/pagination"
	"github.com/sangkips/otica-api/pkg/utils"
	"go.uber.org/zap"
)

// maxNumberAttempts bounds the search for a free generated number.
const maxNumberAttempts = 1000

// ServiceOrderService handles service order (ordem de serviço) operations
type ServiceOrderService struct {
	reportHook

	orderRepo  repository.ServiceOrderRepository
	clientRepo repository.ClientRepository
	log        *zap.Logger
	now        func() time.Time
}

// NewServiceOrderService creates a new service order service
func NewServiceOrderService(
	orderRepo repository.ServiceOrderRepository,
	clientRepo repository.ClientRepository,
	log *zap.Logger,
) *ServiceOrderService {
	return &ServiceOrderService{
		orderRepo:  orderRepo,
		clientRepo: clientRepo,
		log:        log,
		now:        time.Now,
	}
}

// CreateServiceOrderInput represents the create service order input
type CreateServiceOrderInput struct {
	ClientID  uuid.UUID
	Number    string     // generated when empty
	OrderDate *time.Time // today when nil
	Status    enum.ServiceOrderStatus
}

// CreateServiceOrder opens a service order for an existing client
func (s *ServiceOrderService) CreateServiceOrder(ctx context.Context, input *CreateServiceOrderInput) (*entity.ServiceOrder, error) {
	client, err := s.clientRepo.GetByID(ctx, input.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, apperror.NewFieldError("id_cliente", "client does not exist")
	}

	status := input.Status
	if status == "" {
		status = enum.ServiceOrderStatusOpen
	}
	if !status.IsValid() {
		return nil, apperror.NewFieldError("status", "invalid service order status")
	}

	number := strings.ToUpper(strings.TrimSpace(input.Number))
	if number == "" {
		if number, err = s.nextNumber(ctx); err != nil {
			return nil, err
		}
	} else if err := s.ensureNumberFree(ctx, number, uuid.Nil); err != nil {
		return nil, err
	}

	orderDate := s.now()
	if input.OrderDate != nil {
		orderDate = *input.OrderDate
	}

	order := &entity.ServiceOrder{
		Number:    number,
		OrderDate: orderDate,
		ClientID:  client.ID,
		Status:    status,
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}
	s.invalidateReports(ctx)
	order.Client = client

	s.log.Info("service order created",
		zap.String("order_id", order.ID.String()),
		zap.String("numero_os", order.Number))
	return order, nil
}

// GetServiceOrder retrieves a service order with its client
func (s *ServiceOrderService) GetServiceOrder(ctx context.Context, id uuid.UUID) (*entity.ServiceOrder, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Service order")
	}
	return order, nil
}

// ListServiceOrders lists service orders, newest first
func (s *ServiceOrderService) ListServiceOrders(ctx context.Context, params *pagination.PaginationParams, filter repository.ServiceOrderFilter) (*pagination.PaginatedResult[entity.ServiceOrder], error) {
	orders, total, err := s.orderRepo.List(ctx, params, filter)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(orders, pag), nil
}

// UpdateServiceOrderInput represents the update service order input
type UpdateServiceOrderInput struct {
	ID        uuid.UUID
	ClientID  *uuid.UUID
	Number    *string
	OrderDate *time.Time
	Status    *enum.ServiceOrderStatus
}

// UpdateServiceOrder updates a service order
func (s *ServiceOrderService) UpdateServiceOrder(ctx context.Context, input *UpdateServiceOrderInput) (*entity.ServiceOrder, error) {
	order, err := s.GetServiceOrder(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.ClientID != nil && *input.ClientID != order.ClientID {
		client, err := s.clientRepo.GetByID(ctx, *input.ClientID)
		if err != nil {
			return nil, err
		}
		if client == nil {
			return nil, apperror.NewFieldError("id_cliente", "client does not exist")
		}
		order.ClientID = client.ID
		order.Client = client
	}
	if input.Number != nil {
		number := strings.ToUpper(strings.TrimSpace(*input.Number))
		if number == "" {
			return nil, apperror.NewFieldError("numero_os", "cannot be empty")
		}
		if number != order.Number {
			if err := s.ensureNumberFree(ctx, number, order.ID); err != nil {
				return nil, err
			}
			order.Number = number
		}
	}
	if input.OrderDate != nil {
		order.OrderDate = *input.OrderDate
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, apperror.NewFieldError("status", "invalid service order status")
		}
		order.Status = *input.Status
	}

	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}
	s.invalidateReports(ctx)
	return order, nil
}

// DeleteServiceOrder deletes a service order
func (s *ServiceOrderService) DeleteServiceOrder(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetServiceOrder(ctx, id); err != nil {
		return err
	}
	if err := s.orderRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateReports(ctx)
	return nil
}

// NextNumber previews the number the next order would receive.
func (s *ServiceOrderService) NextNumber(ctx context.Context) (string, error) {
	return s.nextNumber(ctx)
}

// nextNumber follows the highest issued number and skips any candidate
// already taken, e.g. a hand-typed "OS007" stored as-is.
func (s *ServiceOrderService) nextNumber(ctx context.Context) (string, error) {
	last, err := s.orderRepo.LastNumber(ctx)
	if err != nil {
		return "", err
	}

	number := utils.NextOrderNumber(last)
	for i := 0; i < maxNumberAttempts; i++ {
		existing, err := s.orderRepo.GetByNumber(ctx, number)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return number, nil
		}
		number = utils.NextOrderNumber(number)
	}
	return "", apperror.NewConflictError("Could not allocate a free service order number")
}

func (s *ServiceOrderService) ensureNumberFree(ctx context.Context, number string, self uuid.UUID) error {
	existing, err := s.orderRepo.GetByNumber(ctx, number)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != self {
		return apperror.NewConflictError("Service order number " + number + " is already in use")
	}
	return nil
}
