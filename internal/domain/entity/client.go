package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Client is a customer of the shop (cliente)
type Client struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name      string         `gorm:"column:nome;size:255;not null;index" json:"nome"`
	CPF       *string        `gorm:"column:cpf;size:14;index" json:"cpf,omitempty"`
	Phone     *string        `gorm:"column:telefone;size:30" json:"telefone,omitempty"`
	Address   *string        `gorm:"column:endereco;type:text" json:"endereco,omitempty"`
	District  *string        `gorm:"column:bairro;size:120" json:"bairro,omitempty"`
	City      *string        `gorm:"column:cidade;size:120" json:"cidade,omitempty"`
	BirthDate *time.Time     `gorm:"column:data_nascimento;type:date" json:"data_nascimento,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Orders []ServiceOrder `gorm:"foreignKey:ClientID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new client
func (c *Client) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Client model
func (Client) TableName() string {
	return "cliente"
}

// PhoneNumber returns the phone or "" when none was recorded.
func (c *Client) PhoneNumber() string {
	if c == nil || c.Phone == nil {
		return ""
	}
	return *c.Phone
}
