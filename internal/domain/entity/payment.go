package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/otica-api/internal/domain/enum"
	"github.com/sangkips/otica-api/pkg/comprovante"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Payment is the pagamento of a service order. Amounts are BRL.
type Payment struct {
	ID               uuid.UUID           `gorm:"type:uuid;primary_key" json:"id"`
	ServiceOrderID   uuid.UUID           `gorm:"column:id_os;type:uuid;not null;index" json:"id_os"`
	FrameValue       decimal.NullDecimal `gorm:"column:valor_armacao;type:numeric(12,2)" json:"valor_armacao"`
	LensValue        decimal.NullDecimal `gorm:"column:valor_lente;type:numeric(12,2)" json:"valor_lente"`
	Total            decimal.Decimal     `gorm:"column:valor_total;type:numeric(12,2);not null" json:"valor_total"`
	DownPayment      decimal.NullDecimal `gorm:"column:entrada;type:numeric(12,2)" json:"entrada"`
	Installments     int                 `gorm:"column:parcelas;default:0" json:"parcelas"`
	InstallmentValue decimal.NullDecimal `gorm:"column:valor_parcelas;type:numeric(12,2)" json:"valor_parcelas"`
	Method           enum.PaymentMethod  `gorm:"column:forma_pagamento;size:30" json:"forma_pagamento"`
	Status           enum.PaymentStatus  `gorm:"column:status;size:20;default:pendente;index" json:"status"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
	DeletedAt        gorm.DeletedAt      `gorm:"index" json:"-"`

	ServiceOrder *ServiceOrder `gorm:"foreignKey:ServiceOrderID" json:"ordem_servico,omitempty"`
}

// BeforeCreate generates a UUID before creating a new payment
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Status == "" {
		p.Status = enum.PaymentStatusPending
	}
	return nil
}

// TableName returns the table name for the Payment model
func (Payment) TableName() string {
	return "pagamento"
}

// Snapshot is the read-only view the comprovante is built from. The
// service order (with its client) should be preloaded; frameLens is the
// order's first frame/lens selection and may be nil.
func (p *Payment) Snapshot(frameLens *FrameLens) *comprovante.Payment {
	snap := &comprovante.Payment{
		FrameValue:       p.FrameValue,
		LensValue:        p.LensValue,
		Total:            p.Total,
		DownPayment:      p.DownPayment,
		Installments:     p.Installments,
		InstallmentValue: p.InstallmentValue,
		Method:           p.Method.String(),
		Status:           p.Status.String(),
	}
	if p.ServiceOrder != nil {
		snap.OrderNumber = p.ServiceOrder.Number
		snap.CustomerName = p.ServiceOrder.ClientName()
	}
	if frameLens != nil {
		snap.FrameBrand = deref(frameLens.FrameBrand)
		snap.FrameReference = deref(frameLens.FrameReference)
		snap.Lens = deref(frameLens.Lens)
	}
	return snap
}
