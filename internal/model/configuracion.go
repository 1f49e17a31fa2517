package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Configuration groups
const (
	GrupoNegocio = "negocio"
	GrupoPOS     = "pos"
)

// Well-known keys
const (
	ClaveTiempoAlertaKDS = "pos_tiempo_alerta_kds"
	ClaveNegocioRUC      = "negocio_ruc"
)

// Configuracion is a grouped key/value setting (business identity, POS
// tunables). Read-heavy; the KDS alert threshold is cached in Redis.
type Configuracion struct {
	ID        uuid.UUID `gorm:"type:char(36);primaryKey"`
	Grupo     string    `gorm:"type:varchar(30);not null;index"`
	Clave     string    `gorm:"type:varchar(60);not null;uniqueIndex"`
	Valor     string    `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c *Configuracion) BeforeCreate(_ *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
