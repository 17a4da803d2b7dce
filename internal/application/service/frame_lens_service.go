package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/otica-api/internal/domain/entity"
	"github.com/sangkips/otica-api/internal/domain/repository"
	"github.com/sangkips/otica-api/pkg/apperror"
	"go.uber.org/zap"
)

// FrameLensService handles the frame and lens selections of service orders
type FrameLensService struct {
	frameLensRepo repository.FrameLensRepository
	orderRepo     repository.ServiceOrderRepository
	log           *zap.Logger
}

// NewFrameLensService creates a new frame/lens service
func NewFrameLensService(
	frameLensRepo repository.FrameLensRepository,
	orderRepo repository.ServiceOrderRepository,
	log *zap.Logger,
) *FrameLensService {
	return &FrameLensService{frameLensRepo: frameLensRepo, orderRepo: orderRepo, log: log}
}

// FrameLensFields are the descriptive fields of a selection. In updates a
// nil field is left unchanged and an empty string clears it.
type FrameLensFields struct {
	FrameBrand      *string
	FrameReference  *string
	FrameMaterial   *string
	Lens            *string
	Treatment       *string
	Tint            *string
	Horizontal      *string
	Vertical        *string
	Bridge          *string
	LargestDiagonal *string
}

func (f *FrameLensFields) apply(fl *entity.FrameLens) {
	set := func(dst **string, v *string) {
		if v != nil {
			*dst = trimmed(v)
		}
	}
	set(&fl.FrameBrand, f.FrameBrand)
	set(&fl.FrameReference, f.FrameReference)
	set(&fl.FrameMaterial, f.FrameMaterial)
	set(&fl.Lens, f.Lens)
	set(&fl.Treatment, f.Treatment)
	set(&fl.Tint, f.Tint)
	set(&fl.Horizontal, f.Horizontal)
	set(&fl.Vertical, f.Vertical)
	set(&fl.Bridge, f.Bridge)
	set(&fl.LargestDiagonal, f.LargestDiagonal)
}

// CreateFrameLens records a selection for an existing service order
func (s *FrameLensService) CreateFrameLens(ctx context.Context, orderID uuid.UUID, fields *FrameLensFields) (*entity.FrameLens, error) {
	if err := requireOrder(ctx, s.orderRepo, orderID); err != nil {
		return nil, err
	}

	fl := &entity.FrameLens{ServiceOrderID: orderID}
	fields.apply(fl)

	if err := s.frameLensRepo.Create(ctx, fl); err != nil {
		return nil, err
	}
	return fl, nil
}

// GetFrameLens retrieves a selection by ID
func (s *FrameLensService) GetFrameLens(ctx context.Context, id uuid.UUID) (*entity.FrameLens, error) {
	fl, err := s.frameLensRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if fl == nil {
		return nil, apperror.NewNotFoundError("Frame/lens selection")
	}
	return fl, nil
}

// ListByOrder lists the selections of a service order
func (s *FrameLensService) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]entity.FrameLens, error) {
	return s.frameLensRepo.ListByOrder(ctx, orderID)
}

// UpdateFrameLens updates a selection
func (s *FrameLensService) UpdateFrameLens(ctx context.Context, id uuid.UUID, fields *FrameLensFields) (*entity.FrameLens, error) {
	fl, err := s.GetFrameLens(ctx, id)
	if err != nil {
		return nil, err
	}
	fields.apply(fl)

	if err := s.frameLensRepo.Update(ctx, fl); err != nil {
		return nil, err
	}
	return fl, nil
}

// DeleteFrameLens deletes a selection
func (s *FrameLensService) DeleteFrameLens(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetFrameLens(ctx, id); err != nil {
		return err
	}
	return s.frameLensRepo.Delete(ctx, id)
}

// requireOrder refuses records whose service order does not exist.
func requireOrder(ctx context.Context, orders repository.ServiceOrderRepository, id uuid.UUID) error {
	if id == uuid.Nil {
		return apperror.NewFieldError("id_os", "is required")
	}
	order, err := orders.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if order == nil {
		return apperror.NewFieldError("id_os", "service order does not exist")
	}
	return nil
}
