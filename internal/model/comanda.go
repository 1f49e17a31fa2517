package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Estados de comanda
const (
	ComandaAbierta   = "abierta"
	ComandaEnCocina  = "en_cocina"
	ComandaLista     = "lista"
	ComandaEntregada = "entregada"
	ComandaCerrada   = "cerrada"
	ComandaCancelada = "cancelada"
)

// Estados de item de comanda
const (
	ItemPendiente  = "pendiente"
	ItemEnviado    = "enviado"
	ItemPreparando = "preparando"
	ItemListo      = "listo"
	ItemEntregado  = "entregado"
	ItemCancelado  = "cancelado"
)

// Tipos de servicio
const (
	ServicioMesa   = "mesa"
	ServicioLlevar = "llevar"
)

// ComandaEstadoValido reports set membership for order states.
func ComandaEstadoValido(estado string) bool {
	switch estado {
	case ComandaAbierta, ComandaEnCocina, ComandaLista, ComandaEntregada, ComandaCerrada, ComandaCancelada:
		return true
	}
	return false
}

// ComandaEstadoTerminal reports whether estado admits no further transitions.
func ComandaEstadoTerminal(estado string) bool {
	return estado == ComandaCerrada || estado == ComandaCancelada
}

// ItemEstadoValido reports set membership for item states. There is no
// transition graph: any state is reachable from any other, matching the
// original system's permissiveness.
func ItemEstadoValido(estado string) bool {
	switch estado {
	case ItemPendiente, ItemEnviado, ItemPreparando, ItemListo, ItemEntregado, ItemCancelado:
		return true
	}
	return false
}

// Comanda is a kitchen/floor order, precursor to a Venta. Totals are
// recomputed and persisted after every item mutation; they are
// authoritative, never derived lazily at read time.
type Comanda struct {
	ID            uuid.UUID  `gorm:"type:char(36);primaryKey"`
	Numero        string     `gorm:"type:varchar(15);uniqueIndex;not null"`
	MesaID        *uuid.UUID `gorm:"type:char(36);index"`
	UsuarioID     uuid.UUID  `gorm:"type:char(36);not null"`
	SesionCajaID  uuid.UUID  `gorm:"type:char(36);not null;index"`
	VentaID       *uuid.UUID `gorm:"type:char(36);index"`
	TipoServicio  string     `gorm:"type:varchar(10);not null;default:'mesa'"`
	Comensales    int        `gorm:"not null;default:1"`
	Estado        string     `gorm:"type:varchar(20);not null;default:'abierta';index"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	IGV           decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Total         decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Notas         *string
	FechaApertura time.Time `gorm:"not null"`
	FechaCierre   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Mesa    *Mesa         `gorm:"foreignKey:MesaID"`
	Usuario *Usuario      `gorm:"foreignKey:UsuarioID"`
	Items   []ComandaItem `gorm:"foreignKey:ComandaID"`
}

func (c *Comanda) BeforeCreate(_ *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// ComandaItem progresses through the kitchen independently of its siblings.
// Cancelled items are retained for audit and excluded from totals.
type ComandaItem struct {
	ID              uuid.UUID       `gorm:"type:char(36);primaryKey"`
	ComandaID       uuid.UUID       `gorm:"type:char(36);not null;index"`
	ProductoID      uuid.UUID       `gorm:"type:char(36);not null"`
	Cantidad        decimal.Decimal `gorm:"type:decimal(10,3);not null"`
	PrecioUnitario  decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Subtotal        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Notas           *string
	Estado          string    `gorm:"type:varchar(20);not null;default:'pendiente';index"`
	HoraPedido      time.Time `gorm:"not null"`
	HoraEnvioCocina *time.Time
	HoraListo       *time.Time
	HoraEntrega     *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

func (i *ComandaItem) BeforeCreate(_ *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
