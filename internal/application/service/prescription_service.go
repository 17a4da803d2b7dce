package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/otica-api/internal/domain/entity"
	"github.com/sangkips/otica-api/internal/domain/repository"
	"github.com/sangkips/otica-api/pkg/apperror"
	"github.com/sangkips/otica-api/pkg/optics"
	"go.uber.org/zap"
)

// PrescriptionService stores receitas. Near vision is always derived here
// from the far-vision fields, never accepted from the caller.
type PrescriptionService struct {
	reportHook

	prescriptionRepo repository.PrescriptionRepository
	orderRepo        repository.ServiceOrderRepository
	log              *zap.Logger
}

// NewPrescriptionService creates a new prescription service
func NewPrescriptionService(
	prescriptionRepo repository.PrescriptionRepository,
	orderRepo repository.ServiceOrderRepository,
	log *zap.Logger,
) *PrescriptionService {
	return &PrescriptionService{prescriptionRepo: prescriptionRepo, orderRepo: orderRepo, log: log}
}

// EyeInput holds one eye's far-vision fields as typed into the form. In
// updates a nil field is left unchanged; an empty string clears it.
type EyeInput struct {
	Sphere                *string
	Cylinder              *string
	Axis                  *string
	NearPupillaryDistance *string
	SegmentHeight         *string
	Addition              *string
}

// IsEmpty reports whether no field was sent.
func (in *EyeInput) IsEmpty() bool {
	return in == nil || (in.Sphere == nil && in.Cylinder == nil && in.Axis == nil &&
		in.NearPupillaryDistance == nil && in.SegmentHeight == nil && in.Addition == nil)
}

// patch applies the sent fields onto far. Cylinders are stored in negative
// notation whatever sign was typed.
func (in *EyeInput) patch(far optics.FarVision) optics.FarVision {
	if in == nil {
		return far
	}
	set := func(dst *optics.Value, raw *string) {
		if raw != nil {
			*dst = optics.ParseValue(*raw)
		}
	}
	set(&far.Sphere, in.Sphere)
	set(&far.Cylinder, in.Cylinder)
	set(&far.Axis, in.Axis)
	set(&far.NearPupillaryDistance, in.NearPupillaryDistance)
	set(&far.SegmentHeight, in.SegmentHeight)
	set(&far.Addition, in.Addition)
	far.Cylinder = optics.NormalizeCylinder(far.Cylinder)
	return far
}

// PrescriptionInput carries both eyes of a receita.
type PrescriptionInput struct {
	Right *EyeInput
	Left  *EyeInput
}

func (in *PrescriptionInput) eye(e optics.Eye) *EyeInput {
	if e == optics.Left {
		return in.Left
	}
	return in.Right
}

// CreatePrescription stores a receita for an existing service order. The
// operation is refused when the order does not exist.
func (s *PrescriptionService) CreatePrescription(ctx context.Context, orderID uuid.UUID, input *PrescriptionInput) (*entity.Prescription, error) {
	if err := requireOrder(ctx, s.orderRepo, orderID); err != nil {
		return nil, err
	}

	var far [2]optics.FarVision
	for _, e := range optics.Eyes {
		far[e] = input.eye(e).patch(optics.FarVision{})
	}
	if err := checkEyes(far); err != nil {
		return nil, err
	}

	p := &entity.Prescription{ServiceOrderID: orderID}
	p.SetOptics(optics.NewPrescription(far[optics.Right], far[optics.Left]))

	if err := s.prescriptionRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	s.invalidateReports(ctx)

	s.log.Info("prescription created",
		zap.String("prescription_id", p.ID.String()),
		zap.String("order_id", orderID.String()))
	return p, nil
}

// GetPrescription retrieves a receita by ID
func (s *PrescriptionService) GetPrescription(ctx context.Context, id uuid.UUID) (*entity.Prescription, error) {
	p, err := s.prescriptionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperror.NewNotFoundError("Prescription")
	}
	return p, nil
}

// ListByOrder lists the receitas of a service order
func (s *PrescriptionService) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]entity.Prescription, error) {
	return s.prescriptionRepo.ListByOrder(ctx, orderID)
}

// UpdatePrescription applies the sent far-vision fields. Each eye whose far
// fields changed is re-derived on its own; clearing an addition clears that
// eye's near fields.
func (s *PrescriptionService) UpdatePrescription(ctx context.Context, id uuid.UUID, input *PrescriptionInput) (*entity.Prescription, error) {
	p, err := s.GetPrescription(ctx, id)
	if err != nil {
		return nil, err
	}

	rx := p.Optics()
	var far [2]optics.FarVision
	for _, e := range optics.Eyes {
		far[e] = input.eye(e).patch(rx.Far(e))
	}
	if err := checkEyes(far); err != nil {
		return nil, err
	}

	changed := false
	for _, e := range optics.Eyes {
		if input.eye(e).IsEmpty() || sameFar(rx.Far(e), far[e]) {
			continue
		}
		rx = rx.WithFar(e, far[e])
		changed = true
	}
	if !changed {
		return p, nil
	}

	p.SetOptics(rx)
	if err := s.prescriptionRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// DeletePrescription deletes a receita
func (s *PrescriptionService) DeletePrescription(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetPrescription(ctx, id); err != nil {
		return err
	}
	if err := s.prescriptionRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateReports(ctx)
	return nil
}

// DeriveInput is one eye of a live form preview, raw as typed.
type DeriveInput struct {
	Sphere   string
	Cylinder string
	Axis     string
	Addition string
}

// DeriveNear previews the near vision of each eye without storing anything.
func (s *PrescriptionService) DeriveNear(right, left DeriveInput) [2]optics.FormattedNear {
	var out [2]optics.FormattedNear
	for e, in := range [2]DeriveInput{optics.Right: right, optics.Left: left} {
		out[e] = optics.DeriveFromInput(in.Sphere, in.Cylinder, in.Axis, in.Addition)
	}
	return out
}

// Options are the picklists offered by the prescription form.
type Options struct {
	Sphere   []string `json:"esferico"`
	Cylinder []string `json:"cilindrico"`
	Addition []string `json:"adicao"`
}

// GetOptions returns the selectable diopter values.
func (s *PrescriptionService) GetOptions() *Options {
	return &Options{
		Sphere:   optics.SphereOptions(),
		Cylinder: optics.CylinderOptions(),
		Addition: optics.AdditionOptions(),
	}
}

func checkEyes(far [2]optics.FarVision) error {
	var fieldErrors []apperror.FieldError
	for _, e := range optics.Eyes {
		for _, issue := range optics.Check(e, far[e]) {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: issue.Field, Message: issue.Message})
		}
	}
	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}

func sameFar(a, b optics.FarVision) bool {
	return a.Sphere.Equal(b.Sphere) &&
		a.Cylinder.Equal(b.Cylinder) &&
		a.Axis.Equal(b.Axis) &&
		a.NearPupillaryDistance.Equal(b.NearPupillaryDistance) &&
		a.SegmentHeight.Equal(b.SegmentHeight) &&
		a.Addition.Equal(b.Addition)
}
