package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FrameLens is the frame and lens selection of a service order (armação e
// lente). Measurements are kept as typed by the shop.
type FrameLens struct {
	ID              uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	ServiceOrderID  uuid.UUID      `gorm:"column:id_os;type:uuid;not null;index" json:"id_os"`
	FrameBrand      *string        `gorm:"column:marca_armacao;size:120" json:"marca_armacao,omitempty"`
	FrameReference  *string        `gorm:"column:referencia_armacao;size:120" json:"referencia_armacao,omitempty"`
	FrameMaterial   *string        `gorm:"column:material_armacao;size:120" json:"material_armacao,omitempty"`
	Lens            *string        `gorm:"column:lente_comprada;size:255" json:"lente_comprada,omitempty"`
	Treatment       *string        `gorm:"column:tratamento;size:255" json:"tratamento,omitempty"`
	Tint            *string        `gorm:"column:coloracao;size:120" json:"coloracao,omitempty"`
	Horizontal      *string        `gorm:"column:horizontal;size:20" json:"horizontal,omitempty"`
	Vertical        *string        `gorm:"column:vertical;size:20" json:"vertical,omitempty"`
	Bridge          *string        `gorm:"column:ponte;size:20" json:"ponte,omitempty"`
	LargestDiagonal *string        `gorm:"column:diagonal_maior;size:20" json:"diagonal_maior,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	ServiceOrder *ServiceOrder `gorm:"foreignKey:ServiceOrderID" json:"ordem_servico,omitempty"`
}

// BeforeCreate generates a UUID before creating a new frame/lens selection
func (f *FrameLens) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the FrameLens model
func (FrameLens) TableName() string {
	return "armacao_lente"
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
