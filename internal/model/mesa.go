package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Estados de mesa
const (
	MesaLibre         = "libre"
	MesaOcupada       = "ocupada"
	MesaReservada     = "reservada"
	MesaCuenta        = "cuenta"
	MesaMantenimiento = "mantenimiento"
)

// MesaEstadoValido reports whether estado belongs to the fixed set.
func MesaEstadoValido(estado string) bool {
	switch estado {
	case MesaLibre, MesaOcupada, MesaReservada, MesaCuenta, MesaMantenimiento:
		return true
	}
	return false
}

// Mesa is a restaurant table. Geometry fields are layout hints for the
// floor-plan UI, not business data.
type Mesa struct {
	ID        uuid.UUID  `gorm:"type:char(36);primaryKey"`
	Nombre    string     `gorm:"not null"`
	ZonaID    *uuid.UUID `gorm:"type:char(36);index"`
	Capacidad int        `gorm:"not null;default:4"`
	Estado    string     `gorm:"type:varchar(20);not null;default:'libre'"`
	PosX      int        `gorm:"not null;default:0"`
	PosY      int        `gorm:"not null;default:0"`
	Forma     string     `gorm:"type:varchar(20);not null;default:'cuadrada'"`
	Activo    bool       `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Zona *Zona `gorm:"foreignKey:ZonaID"`
}

func (m *Mesa) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
