package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Producto is a sellable catalog item. Precio is IGV-inclusive.
// Stock never goes below zero: decrements are clamped, not rejected.
type Producto struct {
	ID          uuid.UUID `gorm:"type:char(36);primaryKey"`
	Codigo      *string   `gorm:"type:varchar(30);uniqueIndex"`
	Nombre      string    `gorm:"index;not null"`
	Descripcion *string
	CategoriaID *uuid.UUID      `gorm:"type:char(36);index"`
	Precio      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Costo       decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Stock       decimal.Decimal `gorm:"type:decimal(10,3);not null;default:0"`
	StockMinimo decimal.Decimal `gorm:"type:decimal(10,3);not null;default:0"`
	// UnidadMedida follows SUNAT catalog 03 mnemonics ("NIU" = unit)
	UnidadMedida string `gorm:"type:varchar(10);not null;default:'NIU'"`
	// TiempoPreparacion in minutes, shown on the kitchen display
	TiempoPreparacion int  `gorm:"not null;default:0"`
	Disponible        bool `gorm:"not null;default:true"`
	Activo            bool `gorm:"not null;default:true"`
	CreatedAt         time.Time
	UpdatedAt         time.Time

	Categoria *Categoria `gorm:"foreignKey:CategoriaID"`
}

func (p *Producto) BeforeCreate(_ *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
