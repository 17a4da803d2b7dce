package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/otica-api/pkg/optics"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Prescription is a receita attached to a service order. Near-vision
// columns are never written directly; they are derived from the far-vision
// columns through SetOptics.
type Prescription struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ServiceOrderID uuid.UUID `gorm:"column:id_os;type:uuid;not null;index" json:"id_os"`

	SphereFarOD    decimal.NullDecimal `gorm:"column:esferico_longe_od;type:numeric(5,2)" json:"esferico_longe_od"`
	CylinderFarOD  decimal.NullDecimal `gorm:"column:cilindrico_longe_od;type:numeric(5,2)" json:"cilindrico_longe_od"`
	AxisFarOD      decimal.NullDecimal `gorm:"column:eixo_longe_od;type:numeric(3,0)" json:"eixo_longe_od"`
	DNPFarOD       decimal.NullDecimal `gorm:"column:dnp_longe_od;type:numeric(5,2)" json:"dnp_longe_od"`
	HeightOD       decimal.NullDecimal `gorm:"column:altura_od;type:numeric(5,2)" json:"altura_od"`
	AdditionOD     decimal.NullDecimal `gorm:"column:adicao_od;type:numeric(4,2)" json:"adicao_od"`
	SphereNearOD   decimal.NullDecimal `gorm:"column:esferico_perto_od;type:numeric(5,2)" json:"esferico_perto_od"`
	CylinderNearOD decimal.NullDecimal `gorm:"column:cilindrico_perto_od;type:numeric(5,2)" json:"cilindrico_perto_od"`
	AxisNearOD     decimal.NullDecimal `gorm:"column:eixo_perto_od;type:numeric(3,0)" json:"eixo_perto_od"`

	SphereFarOE    decimal.NullDecimal `gorm:"column:esferico_longe_oe;type:numeric(5,2)" json:"esferico_longe_oe"`
	CylinderFarOE  decimal.NullDecimal `gorm:"column:cilindrico_longe_oe;type:numeric(5,2)" json:"cilindrico_longe_oe"`
	AxisFarOE      decimal.NullDecimal `gorm:"column:eixo_longe_oe;type:numeric(3,0)" json:"eixo_longe_oe"`
	DNPFarOE       decimal.NullDecimal `gorm:"column:dnp_longe_oe;type:numeric(5,2)" json:"dnp_longe_oe"`
	HeightOE       decimal.NullDecimal `gorm:"column:altura_oe;type:numeric(5,2)" json:"altura_oe"`
	AdditionOE     decimal.NullDecimal `gorm:"column:adicao_oe;type:numeric(4,2)" json:"adicao_oe"`
	SphereNearOE   decimal.NullDecimal `gorm:"column:esferico_perto_oe;type:numeric(5,2)" json:"esferico_perto_oe"`
	CylinderNearOE decimal.NullDecimal `gorm:"column:cilindrico_perto_oe;type:numeric(5,2)" json:"cilindrico_perto_oe"`
	AxisNearOE     decimal.NullDecimal `gorm:"column:eixo_perto_oe;type:numeric(3,0)" json:"eixo_perto_oe"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	ServiceOrder *ServiceOrder `gorm:"foreignKey:ServiceOrderID" json:"ordem_servico,omitempty"`
}

// BeforeCreate generates a UUID before creating a new prescription
func (p *Prescription) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Prescription model
func (Prescription) TableName() string {
	return "receita"
}

type eyeColumns struct {
	sphere, cylinder, axis, dnp, height, addition *decimal.NullDecimal
	nearSphere, nearCylinder, nearAxis            *decimal.NullDecimal
}

func (p *Prescription) columns(e optics.Eye) eyeColumns {
	if e == optics.Left {
		return eyeColumns{
			&p.SphereFarOE, &p.CylinderFarOE, &p.AxisFarOE, &p.DNPFarOE, &p.HeightOE, &p.AdditionOE,
			&p.SphereNearOE, &p.CylinderNearOE, &p.AxisNearOE,
		}
	}
	return eyeColumns{
		&p.SphereFarOD, &p.CylinderFarOD, &p.AxisFarOD, &p.DNPFarOD, &p.HeightOD, &p.AdditionOD,
		&p.SphereNearOD, &p.CylinderNearOD, &p.AxisNearOD,
	}
}

// Optics returns the stored values as an optics.Prescription, near fields
// exactly as persisted.
func (p *Prescription) Optics() optics.Prescription {
	return optics.Restore(p.eye(optics.Right), p.eye(optics.Left))
}

func (p *Prescription) eye(e optics.Eye) optics.EyePrescription {
	c := p.columns(e)
	return optics.EyePrescription{
		Far: optics.FarVision{
			Sphere:                optics.ValueFromNull(*c.sphere),
			Cylinder:              optics.ValueFromNull(*c.cylinder),
			Axis:                  optics.ValueFromNull(*c.axis),
			NearPupillaryDistance: optics.ValueFromNull(*c.dnp),
			SegmentHeight:         optics.ValueFromNull(*c.height),
			Addition:              optics.ValueFromNull(*c.addition),
		},
		Near: optics.NearVision{
			Sphere:   optics.ValueFromNull(*c.nearSphere),
			Cylinder: optics.ValueFromNull(*c.nearCylinder),
			Axis:     optics.ValueFromNull(*c.nearAxis),
		},
	}
}

// SetOptics overwrites every far and near column of both eyes. Absent
// values are stored as NULL.
func (p *Prescription) SetOptics(rx optics.Prescription) {
	for _, e := range optics.Eyes {
		c := p.columns(e)
		eye := rx.Eye(e)
		*c.sphere = eye.Far.Sphere.Null()
		*c.cylinder = eye.Far.Cylinder.Null()
		*c.axis = eye.Far.Axis.Null()
		*c.dnp = eye.Far.NearPupillaryDistance.Null()
		*c.height = eye.Far.SegmentHeight.Null()
		*c.addition = eye.Far.Addition.Null()
		*c.nearSphere = eye.Near.Sphere.Null()
		*c.nearCylinder = eye.Near.Cylinder.Null()
		*c.nearAxis = eye.Near.Axis.Null()
	}
}
