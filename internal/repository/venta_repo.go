package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/CristopherG19/app-restaurante-cgch/internal/dto"
	"github.com/CristopherG19/app-restaurante-cgch/internal/model"
)

type VentaRepository interface {
	Create(ctx context.Context, tx *gorm.DB, v *model.Venta) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error)
	Update(ctx context.Context, tx *gorm.DB, v *model.Venta) error
	List(ctx context.Context, filter dto.VentaFilter) ([]model.Venta, int64, error)
	VentasDelDia(ctx context.Context) (int64, decimal.Decimal, error)
	TopProductosDelDia(ctx context.Context, limit int) ([]dto.ProductoVendido, error)
	PagosDelDiaPorMetodo(ctx context.Context) ([]dto.PagosPorMetodo, error)
	DB() *gorm.DB
}

type ventaRepo struct{ db *gorm.DB }

func NewVentaRepository(db *gorm.DB) VentaRepository { return &ventaRepo{db: db} }

func (r *ventaRepo) DB() *gorm.DB { return r.db }

func (r *ventaRepo) Create(ctx context.Context, tx *gorm.DB, v *model.Venta) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).Create(v).Error
}

func (r *ventaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error) {
	var v model.Venta
	err := r.db.WithContext(ctx).
		Preload("Cliente").Preload("Usuario").Preload("Detalles").Preload("Pagos").
		First(&v, "id = ?", id).Error
	return &v, err
}

func (r *ventaRepo) Update(ctx context.Context, tx *gorm.DB, v *model.Venta) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).Save(v).Error
}

func (r *ventaRepo) List(ctx context.Context, filter dto.VentaFilter) ([]model.Venta, int64, error) {
	var ventas []model.Venta
	var total int64
	offset := (filter.Page - 1) * filter.PerPage

	q := r.db.WithContext(ctx).Model(&model.Venta{})
	if filter.TipoComprobante != "" {
		q = q.Where("tipo_comprobante = ?", filter.TipoComprobante)
	}
	if filter.Estado != "" {
		q = q.Where("estado = ?", filter.Estado)
	}
	if filter.Sesion != "" {
		q = q.Where("sesion_caja_id = ?", filter.Sesion)
	}
	if filter.Desde != "" {
		q = q.Where("DATE(fecha_emision) >= ?", filter.Desde)
	}
	if filter.Hasta != "" {
		q = q.Where("DATE(fecha_emision) <= ?", filter.Hasta)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Cliente").Preload("Usuario").Preload("Detalles").Preload("Pagos").
		Order("fecha_emision DESC").
		Offset(offset).Limit(filter.PerPage).
		Find(&ventas).Error

	return ventas, total, err
}

func (r *ventaRepo) VentasDelDia(ctx context.Context) (int64, decimal.Decimal, error) {
	type agg struct {
		Cantidad int64
		Total    decimal.Decimal
	}
	var a agg
	err := r.db.WithContext(ctx).Model(&model.Venta{}).
		Select("COUNT(*) AS cantidad, COALESCE(SUM(total), 0) AS total").
		Where("estado = ? AND DATE(fecha_emision) = CURDATE()", model.VentaPagada).
		Scan(&a).Error
	return a.Cantidad, a.Total, err
}

func (r *ventaRepo) PagosDelDiaPorMetodo(ctx context.Context) ([]dto.PagosPorMetodo, error) {
	var rows []dto.PagosPorMetodo
	err := r.db.WithContext(ctx).Model(&model.Pago{}).
		Select("pagos.metodo, COUNT(*) AS cantidad, COALESCE(SUM(pagos.monto), 0) AS total").
		Joins("JOIN ventas ON ventas.id = pagos.venta_id").
		Where("ventas.estado = ? AND DATE(ventas.fecha_emision) = CURDATE()", model.VentaPagada).
		Group("pagos.metodo").
		Scan(&rows).Error
	return rows, err
}

func (r *ventaRepo) TopProductosDelDia(ctx context.Context, limit int) ([]dto.ProductoVendido, error) {
	var rows []dto.ProductoVendido
	err := r.db.WithContext(ctx).Model(&model.VentaDetalle{}).
		Select("venta_detalles.producto_id, venta_detalles.descripcion AS nombre, SUM(venta_detalles.cantidad) AS cantidad, SUM(venta_detalles.total) AS total").
		Joins("JOIN ventas ON ventas.id = venta_detalles.venta_id").
		Where("ventas.estado = ? AND DATE(ventas.fecha_emision) = CURDATE()", model.VentaPagada).
		Group("venta_detalles.producto_id, venta_detalles.descripcion").
		Order("cantidad DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
