package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/CristopherG19/app-restaurante-cgch/internal/dto"
	"github.com/CristopherG19/app-restaurante-cgch/internal/model"
)

type ComandaRepository interface {
	Create(ctx context.Context, tx *gorm.DB, c *model.Comanda) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Comanda, error)
	FindByIDTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Comanda, error)
	Update(ctx context.Context, tx *gorm.DB, c *model.Comanda) error
	List(ctx context.Context, filter dto.ComandaFilter) ([]model.Comanda, int64, error)
	CreateItem(ctx context.Context, tx *gorm.DB, item *model.ComandaItem) error
	FindItemByID(ctx context.Context, itemID uuid.UUID) (*model.ComandaItem, error)
	UpdateItem(ctx context.Context, item *model.ComandaItem) error
	// EnviarItemsPendientes flips every pending item to enviado in one
	// UPDATE and reports how many rows moved. Re-sending is a no-op.
	EnviarItemsPendientes(ctx context.Context, tx *gorm.DB, comandaID uuid.UUID, hora time.Time) (int64, error)
	ItemsEnCocina(ctx context.Context) ([]model.ComandaItem, error)
	CountAbiertasPorSesion(ctx context.Context, sesionID uuid.UUID) (int64, error)
	CountAbiertas(ctx context.Context) (int64, error)
	CountActivasPorMesa(ctx context.Context, tx *gorm.DB, mesaID uuid.UUID, excluirComanda uuid.UUID) (int64, error)
	FindActivaPorMesa(ctx context.Context, mesaID uuid.UUID) (*model.Comanda, error)
	// FindActivaPorMesaTx fetches the mesa's most recent live comanda in the
	// session, for direct sales that settle an occupied table.
	FindActivaPorMesaTx(ctx context.Context, tx *gorm.DB, mesaID, sesionID uuid.UUID) (*model.Comanda, error)
	DB() *gorm.DB
}

type comandaRepo struct{ db *gorm.DB }

func NewComandaRepository(db *gorm.DB) ComandaRepository { return &comandaRepo{db: db} }

func (r *comandaRepo) DB() *gorm.DB { return r.db }

func (r *comandaRepo) Create(ctx context.Context, tx *gorm.DB, c *model.Comanda) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).Create(c).Error
}

func (r *comandaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Comanda, error) {
	var c model.Comanda
	err := r.db.WithContext(ctx).
		Preload("Mesa").Preload("Usuario").Preload("Items.Producto").
		First(&c, "id = ?", id).Error
	return &c, err
}

func (r *comandaRepo) FindByIDTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Comanda, error) {
	var c model.Comanda
	err := tx.WithContext(ctx).Preload("Items").First(&c, "id = ?", id).Error
	return &c, err
}

func (r *comandaRepo) Update(ctx context.Context, tx *gorm.DB, c *model.Comanda) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).Save(c).Error
}

func (r *comandaRepo) List(ctx context.Context, filter dto.ComandaFilter) ([]model.Comanda, int64, error) {
	var comandas []model.Comanda
	var total int64
	offset := (filter.Page - 1) * filter.PerPage

	q := r.db.WithContext(ctx).Model(&model.Comanda{})
	if filter.Estado != "" {
		q = q.Where("estado = ?", filter.Estado)
	}
	if filter.Mesa != "" {
		q = q.Where("mesa_id = ?", filter.Mesa)
	}
	if filter.Fecha != "" {
		q = q.Where("DATE(fecha_apertura) = ?", filter.Fecha)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Mesa").Preload("Usuario").Preload("Items.Producto").
		Order("fecha_apertura DESC").
		Offset(offset).Limit(filter.PerPage).
		Find(&comandas).Error

	return comandas, total, err
}

func (r *comandaRepo) CreateItem(ctx context.Context, tx *gorm.DB, item *model.ComandaItem) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).Create(item).Error
}

func (r *comandaRepo) FindItemByID(ctx context.Context, itemID uuid.UUID) (*model.ComandaItem, error) {
	var item model.ComandaItem
	err := r.db.WithContext(ctx).Preload("Producto").First(&item, "id = ?", itemID).Error
	return &item, err
}

func (r *comandaRepo) UpdateItem(ctx context.Context, item *model.ComandaItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *comandaRepo) EnviarItemsPendientes(ctx context.Context, tx *gorm.DB, comandaID uuid.UUID, hora time.Time) (int64, error) {
	if tx == nil {
		tx = r.db
	}
	res := tx.WithContext(ctx).Model(&model.ComandaItem{}).
		Where("comanda_id = ? AND estado = ?", comandaID, model.ItemPendiente).
		Updates(map[string]interface{}{
			"estado":            model.ItemEnviado,
			"hora_envio_cocina": hora,
		})
	return res.RowsAffected, res.Error
}

func (r *comandaRepo) ItemsEnCocina(ctx context.Context) ([]model.ComandaItem, error) {
	var items []model.ComandaItem
	err := r.db.WithContext(ctx).
		Preload("Producto").
		Joins("JOIN comandas ON comandas.id = comanda_items.comanda_id").
		Where("comanda_items.estado IN ?", []string{model.ItemEnviado, model.ItemPreparando, model.ItemListo}).
		Where("comandas.estado NOT IN ?", []string{model.ComandaCerrada, model.ComandaCancelada}).
		Order("comanda_items.hora_envio_cocina ASC").
		Find(&items).Error
	return items, err
}

func (r *comandaRepo) CountAbiertasPorSesion(ctx context.Context, sesionID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Comanda{}).
		Where("sesion_caja_id = ? AND estado NOT IN ?", sesionID, []string{model.ComandaCerrada, model.ComandaCancelada}).
		Count(&count).Error
	return count, err
}

func (r *comandaRepo) CountAbiertas(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Comanda{}).
		Where("estado NOT IN ?", []string{model.ComandaCerrada, model.ComandaCancelada}).
		Count(&count).Error
	return count, err
}

func (r *comandaRepo) CountActivasPorMesa(ctx context.Context, tx *gorm.DB, mesaID uuid.UUID, excluirComanda uuid.UUID) (int64, error) {
	if tx == nil {
		tx = r.db
	}
	var count int64
	q := tx.WithContext(ctx).Model(&model.Comanda{}).
		Where("mesa_id = ? AND estado NOT IN ?", mesaID, []string{model.ComandaCerrada, model.ComandaCancelada})
	if excluirComanda != uuid.Nil {
		q = q.Where("id <> ?", excluirComanda)
	}
	err := q.Count(&count).Error
	return count, err
}

func (r *comandaRepo) FindActivaPorMesa(ctx context.Context, mesaID uuid.UUID) (*model.Comanda, error) {
	var c model.Comanda
	err := r.db.WithContext(ctx).Preload("Items").
		Where("mesa_id = ? AND estado NOT IN ?", mesaID, []string{model.ComandaCerrada, model.ComandaCancelada}).
		Order("fecha_apertura ASC").
		First(&c).Error
	return &c, err
}

func (r *comandaRepo) FindActivaPorMesaTx(ctx context.Context, tx *gorm.DB, mesaID, sesionID uuid.UUID) (*model.Comanda, error) {
	if tx == nil {
		tx = r.db
	}
	var c model.Comanda
	err := tx.WithContext(ctx).
		Where("mesa_id = ? AND sesion_caja_id = ? AND estado NOT IN ?",
			mesaID, sesionID, []string{model.ComandaCerrada, model.ComandaCancelada}).
		Order("fecha_apertura DESC").
		First(&c).Error
	return &c, err
}
