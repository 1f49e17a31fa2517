package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/CristopherG19/app-restaurante-cgch/internal/model"
)

// SerieRepository hands out gap-free correlatives for both sale vouchers
// and kitchen orders. Allocation always happens inside the caller's
// transaction: the counter row is locked with FOR UPDATE, so concurrent
// emitters serialize on it and no number is ever issued twice.
type SerieRepository interface {
	NextCorrelativoTx(ctx context.Context, tx *gorm.DB, tipo, serie string) (int64, error)
	FindActiva(ctx context.Context, tipo string) (*model.SerieComprobante, error)
	List(ctx context.Context) ([]model.SerieComprobante, error)
}

type serieRepo struct{ db *gorm.DB }

func NewSerieRepository(db *gorm.DB) SerieRepository { return &serieRepo{db: db} }

func (r *serieRepo) NextCorrelativoTx(ctx context.Context, tx *gorm.DB, tipo, serie string) (int64, error) {
	var sc model.SerieComprobante
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("tipo = ? AND serie = ?", tipo, serie).
		First(&sc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		sc = model.SerieComprobante{Tipo: tipo, Serie: serie, CorrelativoActual: 0, Activo: true}
		if err := tx.WithContext(ctx).Create(&sc).Error; err != nil {
			return 0, err
		}
	} else if err != nil {
		return 0, err
	}

	sc.CorrelativoActual++
	if err := tx.WithContext(ctx).Model(&model.SerieComprobante{}).
		Where("id = ?", sc.ID).
		Update("correlativo_actual", sc.CorrelativoActual).Error; err != nil {
		return 0, err
	}
	return sc.CorrelativoActual, nil
}

func (r *serieRepo) FindActiva(ctx context.Context, tipo string) (*model.SerieComprobante, error) {
	var sc model.SerieComprobante
	err := r.db.WithContext(ctx).
		Where("tipo = ? AND activo = ?", tipo, true).
		Order("serie ASC").
		First(&sc).Error
	return &sc, err
}

func (r *serieRepo) List(ctx context.Context) ([]model.SerieComprobante, error) {
	var series []model.SerieComprobante
	err := r.db.WithContext(ctx).Order("tipo ASC, serie ASC").Find(&series).Error
	return series, err
}
