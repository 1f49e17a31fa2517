package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Zona groups tables by floor area (salón, terraza, barra…).
type Zona struct {
	ID        uuid.UUID `gorm:"type:char(36);primaryKey"`
	Nombre    string    `gorm:"not null"`
	Color     *string   `gorm:"type:varchar(10)"`
	Activo    bool      `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (z *Zona) BeforeCreate(_ *gorm.DB) error {
	if z.ID == uuid.Nil {
		z.ID = uuid.New()
	}
	return nil
}
