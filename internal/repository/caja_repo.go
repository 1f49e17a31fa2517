package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/CristopherG19/app-restaurante-cgch/internal/dto"
	"github.com/CristopherG19/app-restaurante-cgch/internal/model"
)

type CajaRepository interface {
	CreateSesion(ctx context.Context, tx *gorm.DB, s *model.SesionCaja) error
	FindSesionByID(ctx context.Context, id uuid.UUID) (*model.SesionCaja, error)
	FindSesionAbiertaPorUsuario(ctx context.Context, usuarioID uuid.UUID) (*model.SesionCaja, error)
	// FindSesionAbiertaPorUsuarioTx takes a row lock so two concurrent
	// aperturas for the same user serialize instead of both succeeding.
	FindSesionAbiertaPorUsuarioTx(ctx context.Context, tx *gorm.DB, usuarioID uuid.UUID) (*model.SesionCaja, error)
	UpdateSesion(ctx context.Context, tx *gorm.DB, s *model.SesionCaja) error
	SumarBucket(ctx context.Context, tx *gorm.DB, sesionID uuid.UUID, columna string, monto decimal.Decimal) error
	List(ctx context.Context, filter dto.CajaFilter) ([]model.SesionCaja, int64, error)
	SumVentasPorTipo(ctx context.Context, sesionID uuid.UUID) ([]dto.VentasPorTipo, error)
	SumPagosPorMetodo(ctx context.Context, sesionID uuid.UUID) ([]dto.PagosPorMetodo, error)
	CountVentas(ctx context.Context, sesionID uuid.UUID, estado string) (int64, decimal.Decimal, error)
	DB() *gorm.DB
}

type cajaRepo struct{ db *gorm.DB }

func NewCajaRepository(db *gorm.DB) CajaRepository { return &cajaRepo{db: db} }

func (r *cajaRepo) DB() *gorm.DB { return r.db }

func (r *cajaRepo) CreateSesion(ctx context.Context, tx *gorm.DB, s *model.SesionCaja) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).Create(s).Error
}

func (r *cajaRepo) FindSesionByID(ctx context.Context, id uuid.UUID) (*model.SesionCaja, error) {
	var s model.SesionCaja
	err := r.db.WithContext(ctx).Preload("Usuario").First(&s, "id = ?", id).Error
	return &s, err
}

func (r *cajaRepo) FindSesionAbiertaPorUsuario(ctx context.Context, usuarioID uuid.UUID) (*model.SesionCaja, error) {
	var s model.SesionCaja
	err := r.db.WithContext(ctx).Preload("Usuario").
		Where("usuario_id = ? AND estado = ?", usuarioID, model.CajaAbierta).
		First(&s).Error
	return &s, err
}

func (r *cajaRepo) FindSesionAbiertaPorUsuarioTx(ctx context.Context, tx *gorm.DB, usuarioID uuid.UUID) (*model.SesionCaja, error) {
	var s model.SesionCaja
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("usuario_id = ? AND estado = ?", usuarioID, model.CajaAbierta).
		First(&s).Error
	return &s, err
}

func (r *cajaRepo) UpdateSesion(ctx context.Context, tx *gorm.DB, s *model.SesionCaja) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).Save(s).Error
}

// SumarBucket accumulates a payment into one of the per-method totals
// using an in-database addition, never read-modify-write.
func (r *cajaRepo) SumarBucket(ctx context.Context, tx *gorm.DB, sesionID uuid.UUID, columna string, monto decimal.Decimal) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).Model(&model.SesionCaja{}).
		Where("id = ?", sesionID).
		Update(columna, gorm.Expr(columna+" + ?", monto)).Error
}

func (r *cajaRepo) List(ctx context.Context, filter dto.CajaFilter) ([]model.SesionCaja, int64, error) {
	var sesiones []model.SesionCaja
	var total int64
	offset := (filter.Page - 1) * filter.PerPage

	q := r.db.WithContext(ctx).Model(&model.SesionCaja{})
	if filter.Estado != "" {
		q = q.Where("estado = ?", filter.Estado)
	}
	if filter.Desde != "" {
		q = q.Where("DATE(fecha_apertura) >= ?", filter.Desde)
	}
	if filter.Hasta != "" {
		q = q.Where("DATE(fecha_apertura) <= ?", filter.Hasta)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Usuario").
		Order("fecha_apertura DESC").
		Offset(offset).Limit(filter.PerPage).
		Find(&sesiones).Error

	return sesiones, total, err
}

func (r *cajaRepo) SumVentasPorTipo(ctx context.Context, sesionID uuid.UUID) ([]dto.VentasPorTipo, error) {
	var rows []dto.VentasPorTipo
	err := r.db.WithContext(ctx).Model(&model.Venta{}).
		Select("tipo_comprobante, COUNT(*) AS cantidad, COALESCE(SUM(total), 0) AS total").
		Where("sesion_caja_id = ? AND estado = ?", sesionID, model.VentaPagada).
		Group("tipo_comprobante").
		Scan(&rows).Error
	return rows, err
}

func (r *cajaRepo) SumPagosPorMetodo(ctx context.Context, sesionID uuid.UUID) ([]dto.PagosPorMetodo, error) {
	var rows []dto.PagosPorMetodo
	err := r.db.WithContext(ctx).Model(&model.Pago{}).
		Select("pagos.metodo, COUNT(*) AS cantidad, COALESCE(SUM(pagos.monto), 0) AS total").
		Joins("JOIN ventas ON ventas.id = pagos.venta_id AND ventas.estado = ?", model.VentaPagada).
		Where("pagos.sesion_caja_id = ?", sesionID).
		Group("pagos.metodo").
		Scan(&rows).Error
	return rows, err
}

func (r *cajaRepo) CountVentas(ctx context.Context, sesionID uuid.UUID, estado string) (int64, decimal.Decimal, error) {
	type agg struct {
		Cantidad int64
		Total    decimal.Decimal
	}
	var a agg
	err := r.db.WithContext(ctx).Model(&model.Venta{}).
		Select("COUNT(*) AS cantidad, COALESCE(SUM(total), 0) AS total").
		Where("sesion_caja_id = ? AND estado = ?", sesionID, estado).
		Scan(&a).Error
	return a.Cantidad, a.Total, err
}
