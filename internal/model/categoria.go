package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Categoria struct {
	ID        uuid.UUID `gorm:"type:char(36);primaryKey"`
	Nombre    string    `gorm:"not null"`
	Color     *string   `gorm:"type:varchar(10)"`
	Orden     int       `gorm:"not null;default:0"`
	Activo    bool      `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c *Categoria) BeforeCreate(_ *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
