package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tipos de documento de identidad
const (
	DocDNI       = "DNI"
	DocRUC       = "RUC"
	DocCE        = "CE"
	DocPasaporte = "PASAPORTE"
)

// Cliente is the invoicing party. NumeroDocumento is unique per tipo among
// active rows; facturas require a cliente with RUC.
type Cliente struct {
	ID              uuid.UUID `gorm:"type:char(36);primaryKey"`
	TipoDocumento   string    `gorm:"type:varchar(15);not null;index:idx_cliente_doc"`
	NumeroDocumento string    `gorm:"type:varchar(20);not null;index:idx_cliente_doc"`
	Nombres         *string
	Apellidos       *string
	RazonSocial     *string
	Direccion       *string
	Telefono        *string `gorm:"type:varchar(20)"`
	Email           *string
	Activo          bool `gorm:"not null;default:true"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (c *Cliente) BeforeCreate(_ *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// NombreCompleto returns the display name: razón social for companies,
// nombres + apellidos for persons.
func (c *Cliente) NombreCompleto() string {
	if c.RazonSocial != nil && *c.RazonSocial != "" {
		return *c.RazonSocial
	}
	nombre := ""
	if c.Nombres != nil {
		nombre = *c.Nombres
	}
	if c.Apellidos != nil && *c.Apellidos != "" {
		if nombre != "" {
			nombre += " "
		}
		nombre += *c.Apellidos
	}
	return nombre
}
