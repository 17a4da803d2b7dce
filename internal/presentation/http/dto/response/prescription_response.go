package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/otica-api/internal/domain/entity"
	"github.com/sangkips/otica-api/pkg/optics"
)

// EyeResponse is one eye of a receita, rendered with the shop's sign
// conventions. Absent fields are "".
type EyeResponse struct {
	Sphere       string `json:"esferico_longe"`
	Cylinder     string `json:"cilindrico_longe"`
	Axis         string `json:"eixo_longe"`
	DNP          string `json:"dnp_longe"`
	Height       string `json:"altura"`
	Addition     string `json:"adicao"`
	NearSphere   string `json:"esferico_perto"`
	NearCylinder string `json:"cilindrico_perto"`
	NearAxis     string `json:"eixo_perto"`
}

// PrescriptionResponse is a receita as shown to the shop
type PrescriptionResponse struct {
	ID             uuid.UUID   `json:"id"`
	ServiceOrderID uuid.UUID   `json:"id_os"`
	Right          EyeResponse `json:"od"`
	Left           EyeResponse `json:"oe"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// NewPrescriptionResponse formats a stored receita
func NewPrescriptionResponse(p *entity.Prescription) PrescriptionResponse {
	rx := p.Optics()
	return PrescriptionResponse{
		ID:             p.ID,
		ServiceOrderID: p.ServiceOrderID,
		Right:          newEyeResponse(rx.Eye(optics.Right)),
		Left:           newEyeResponse(rx.Eye(optics.Left)),
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

// NewPrescriptionList formats a list of receitas
func NewPrescriptionList(list []entity.Prescription) []PrescriptionResponse {
	out := make([]PrescriptionResponse, 0, len(list))
	for i := range list {
		out = append(out, NewPrescriptionResponse(&list[i]))
	}
	return out
}

func newEyeResponse(e optics.EyePrescription) EyeResponse {
	near := e.Near.Format()
	return EyeResponse{
		Sphere:       optics.FormatSpherical(e.Far.Sphere.Plain()),
		Cylinder:     optics.FormatCylinder(e.Far.Cylinder.Plain()),
		Axis:         optics.FormatAxis(e.Far.Axis.Plain()),
		DNP:          optics.FormatMillimeters(e.Far.NearPupillaryDistance.Plain()),
		Height:       optics.FormatMillimeters(e.Far.SegmentHeight.Plain()),
		Addition:     optics.FormatAddition(e.Far.Addition.Plain()),
		NearSphere:   near.Sphere,
		NearCylinder: near.Cylinder,
		NearAxis:     near.Axis,
	}
}

// NearResponse is the live derivation preview of both eyes
type NearResponse struct {
	Right optics.FormattedNear `json:"od"`
	Left  optics.FormattedNear `json:"oe"`
}
