package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Reserved tipo for the comanda number counter; comandas share the same
// locked-counter mechanism as fiscal series.
const (
	TipoComanda   = "COMANDA"
	SerieComanda  = "CMD"
	SerieFallback = "NV01"
)

// SerieComprobante is the per-(tipo, serie) correlative counter. The next
// number is allocated by incrementing CorrelativoActual under SELECT … FOR
// UPDATE inside the caller's transaction: two concurrent sales for the same
// series can never draw the same number.
type SerieComprobante struct {
	ID                uuid.UUID `gorm:"type:char(36);primaryKey"`
	Tipo              string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_serie_tipo"`
	Serie             string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_serie_tipo"`
	CorrelativoActual int64     `gorm:"not null;default:0"`
	Activo            bool      `gorm:"not null;default:true"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (s *SerieComprobante) BeforeCreate(_ *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
