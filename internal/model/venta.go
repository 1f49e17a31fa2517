package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Tipos de comprobante
const (
	TipoNotaVenta = "nota_venta"
	TipoBoleta    = "boleta"
	TipoFactura   = "factura"
)

// Estados de venta
const (
	VentaPendiente = "pendiente"
	VentaPagada    = "pagada"
	VentaAnulada   = "anulada"
)

// TipoComprobanteValido reports set membership for voucher types.
func TipoComprobanteValido(tipo string) bool {
	return tipo == TipoNotaVenta || tipo == TipoBoleta || tipo == TipoFactura
}

// Venta is an immutable financial record once committed. Serie+Numero is
// the fiscal correlative, strictly increasing per (tipo, serie), never
// reused, even across voided sales.
type Venta struct {
	ID              uuid.UUID  `gorm:"type:char(36);primaryKey"`
	Serie           string     `gorm:"type:varchar(10);not null;uniqueIndex:idx_venta_correlativo"`
	Numero          int64      `gorm:"not null;uniqueIndex:idx_venta_correlativo"`
	TipoComprobante string     `gorm:"type:varchar(20);not null;index"`
	ClienteID       *uuid.UUID `gorm:"type:char(36);index"`
	UsuarioID       uuid.UUID  `gorm:"type:char(36);not null"`
	SesionCajaID    uuid.UUID  `gorm:"type:char(36);not null;index"`
	MesaID          *uuid.UUID `gorm:"type:char(36)"`
	TipoServicio    string     `gorm:"type:varchar(10);not null;default:'llevar'"`
	Subtotal        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	IGV             decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Descuento       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Total           decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Estado          string          `gorm:"type:varchar(20);not null;default:'pendiente';index"`
	Observaciones   *string
	// HashCPE is set by the facturación worker once SUNAT accepts the voucher
	HashCPE      *string `gorm:"type:varchar(60)"`
	PDFPath      *string
	FechaEmision time.Time `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Cliente  *Cliente       `gorm:"foreignKey:ClienteID"`
	Usuario  *Usuario       `gorm:"foreignKey:UsuarioID"`
	Detalles []VentaDetalle `gorm:"foreignKey:VentaID"`
	Pagos    []Pago         `gorm:"foreignKey:VentaID"`
}

func (v *Venta) BeforeCreate(_ *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

// NumeroComprobante formats the fiscal identifier, e.g. "B001-00000042".
func (v *Venta) NumeroComprobante() string {
	return fmt.Sprintf("%s-%08d", v.Serie, v.Numero)
}

// QRPayload builds the SUNAT pipe-separated QR string printed on tickets:
// RUC|tipoDoc|serie|numero|igv|total|fecha|tipoDocCliente|numDocCliente|hash
// Requires Cliente preloaded when the sale has one.
func (v *Venta) QRPayload(ruc string) string {
	tipoDoc := "00"
	switch v.TipoComprobante {
	case TipoFactura:
		tipoDoc = "01"
	case TipoBoleta:
		tipoDoc = "03"
	}

	docTipoCliente := "0"
	docNumCliente := "-"
	if v.Cliente != nil {
		docNumCliente = v.Cliente.NumeroDocumento
		switch v.Cliente.TipoDocumento {
		case DocDNI:
			docTipoCliente = "1"
		case DocCE:
			docTipoCliente = "4"
		case DocRUC:
			docTipoCliente = "6"
		case DocPasaporte:
			docTipoCliente = "7"
		}
	}

	hash := ""
	if v.HashCPE != nil {
		hash = *v.HashCPE
	}

	return strings.Join([]string{
		ruc,
		tipoDoc,
		v.Serie,
		fmt.Sprintf("%08d", v.Numero),
		v.IGV.StringFixed(2),
		v.Total.StringFixed(2),
		v.FechaEmision.Format("2006-01-02"),
		docTipoCliente,
		docNumCliente,
		hash,
	}, "|")
}

// VentaDetalle snapshots the product at sale time; later catalog edits do
// not alter historical sales.
type VentaDetalle struct {
	ID             uuid.UUID       `gorm:"type:char(36);primaryKey"`
	VentaID        uuid.UUID       `gorm:"type:char(36);not null;index"`
	ProductoID     uuid.UUID       `gorm:"type:char(36);not null"`
	CodigoProducto string          `gorm:"type:varchar(30);not null;default:''"`
	Descripcion    string          `gorm:"not null"`
	Cantidad       decimal.Decimal `gorm:"type:decimal(10,3);not null"`
	Unidad         string          `gorm:"type:varchar(10);not null;default:'NIU'"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Descuento      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	IGV            decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Total          decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Notas          *string
	CreatedAt      time.Time
}

func (d *VentaDetalle) BeforeCreate(_ *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// Pago applies part of a sale's total through one payment method.
type Pago struct {
	ID            uuid.UUID       `gorm:"type:char(36);primaryKey"`
	VentaID       uuid.UUID       `gorm:"type:char(36);not null;index"`
	SesionCajaID  uuid.UUID       `gorm:"type:char(36);not null;index"`
	Metodo        string          `gorm:"type:varchar(20);not null"`
	Monto         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Referencia    *string         `gorm:"type:varchar(60)"`
	MontoRecibido *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Vuelto        *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Fecha         time.Time        `gorm:"not null"`
	CreatedAt     time.Time
}

func (p *Pago) BeforeCreate(_ *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
