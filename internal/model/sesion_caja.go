package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Estados de sesión de caja
const (
	CajaAbierta = "abierta"
	CajaCerrada = "cerrada"
)

// Métodos de pago
const (
	PagoEfectivo      = "efectivo"
	PagoVisa          = "visa"
	PagoMastercard    = "mastercard"
	PagoTarjeta       = "tarjeta"
	PagoYape          = "yape"
	PagoPlin          = "plin"
	PagoTransferencia = "transferencia"
)

// SesionCaja is a cashier's open-to-close working period. Every sale and
// payment posts against exactly one session. At most one open session per
// user (enforced under row lock in the repository).
type SesionCaja struct {
	ID            uuid.UUID `gorm:"type:char(36);primaryKey"`
	UsuarioID     uuid.UUID `gorm:"type:char(36);not null;index"`
	FechaApertura time.Time `gorm:"not null"`
	FechaCierre   *time.Time
	MontoInicial  decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	// Running totals per payment method, mutated additively on each payment.
	TotalEfectivo      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TotalTarjeta       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TotalYape          decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TotalPlin          decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TotalTransferencia decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`

	// Set on close: esperado = inicial + efectivo; diferencia = real − esperado
	MontoEsperado *decimal.Decimal `gorm:"type:decimal(12,2)"`
	MontoReal     *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Diferencia    *decimal.Decimal `gorm:"type:decimal(12,2)"`

	Estado        string `gorm:"type:varchar(20);not null;default:'abierta'"`
	Observaciones *string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Usuario *Usuario `gorm:"foreignKey:UsuarioID"`
}

func (s *SesionCaja) BeforeCreate(_ *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// BucketColumn maps a payment method to the session total column it
// aggregates into. Unknown methods return ""; the payment row still
// persists but no bucket is updated (toleration policy inherited from the
// original system).
func BucketColumn(metodo string) string {
	switch metodo {
	case PagoEfectivo:
		return "total_efectivo"
	case PagoVisa, PagoMastercard, PagoTarjeta:
		return "total_tarjeta"
	case PagoYape:
		return "total_yape"
	case PagoPlin:
		return "total_plin"
	case PagoTransferencia:
		return "total_transferencia"
	}
	return ""
}
