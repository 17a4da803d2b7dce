package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/otica-api/internal/domain/enum"
	"gorm.io/gorm"
)

// ServiceOrder is an ordem de serviço: one client's order for glasses.
type ServiceOrder struct {
	ID        uuid.UUID               `gorm:"type:uuid;primary_key" json:"id"`
	Number    string                  `gorm:"column:numero_os;size:20;uniqueIndex;not null" json:"numero_os"`
	OrderDate time.Time               `gorm:"column:data_pedido;type:date;not null" json:"data_pedido"`
	ClientID  uuid.UUID               `gorm:"column:id_cliente;type:uuid;not null;index" json:"id_cliente"`
	Status    enum.ServiceOrderStatus `gorm:"column:status;size:20;default:aberta" json:"status"`
	CreatedAt time.Time               `json:"created_at"`
	UpdatedAt time.Time               `json:"updated_at"`
	DeletedAt gorm.DeletedAt          `gorm:"index" json:"-"`

	// Relationships
	Client        *Client        `gorm:"foreignKey:ClientID" json:"cliente,omitempty"`
	FrameLenses   []FrameLens    `gorm:"foreignKey:ServiceOrderID" json:"-"`
	Prescriptions []Prescription `gorm:"foreignKey:ServiceOrderID" json:"-"`
	Payments      []Payment      `gorm:"foreignKey:ServiceOrderID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new service order
func (o *ServiceOrder) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	if o.Status == "" {
		o.Status = enum.ServiceOrderStatusOpen
	}
	return nil
}

// TableName returns the table name for the ServiceOrder model
func (ServiceOrder) TableName() string {
	return "ordem_servico"
}

// ClientName returns the loaded client's name, or "" when not loaded.
func (o *ServiceOrder) ClientName() string {
	if o == nil || o.Client == nil {
		return ""
	}
	return o.Client.Name
}
