package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/CristopherG19/app-restaurante-cgch/internal/dto"
	"github.com/CristopherG19/app-restaurante-cgch/internal/model"
)

type MesaRepository interface {
	Create(ctx context.Context, m *model.Mesa) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Mesa, error)
	Update(ctx context.Context, m *model.Mesa) error
	UpdateEstado(ctx context.Context, tx *gorm.DB, id uuid.UUID, estado string) error
	Desactivar(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter dto.MesaFilter) ([]model.Mesa, error)
	CountOcupadas(ctx context.Context) (int64, int64, error)
}

type mesaRepo struct{ db *gorm.DB }

func NewMesaRepository(db *gorm.DB) MesaRepository { return &mesaRepo{db: db} }

func (r *mesaRepo) Create(ctx context.Context, m *model.Mesa) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *mesaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Mesa, error) {
	var m model.Mesa
	err := r.db.WithContext(ctx).Preload("Zona").First(&m, "id = ?", id).Error
	return &m, err
}

func (r *mesaRepo) Update(ctx context.Context, m *model.Mesa) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *mesaRepo) UpdateEstado(ctx context.Context, tx *gorm.DB, id uuid.UUID, estado string) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).Model(&model.Mesa{}).Where("id = ?", id).Update("estado", estado).Error
}

func (r *mesaRepo) Desactivar(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Mesa{}).Where("id = ?", id).Update("activo", false).Error
}

func (r *mesaRepo) List(ctx context.Context, filter dto.MesaFilter) ([]model.Mesa, error) {
	var mesas []model.Mesa
	q := r.db.WithContext(ctx).Preload("Zona").Where("activo = ?", true)
	if filter.Zona != "" {
		q = q.Where("zona_id = ?", filter.Zona)
	}
	if filter.Estado != "" {
		q = q.Where("estado = ?", filter.Estado)
	}
	err := q.Order("nombre ASC").Find(&mesas).Error
	return mesas, err
}

func (r *mesaRepo) CountOcupadas(ctx context.Context) (int64, int64, error) {
	var ocupadas, total int64
	if err := r.db.WithContext(ctx).Model(&model.Mesa{}).
		Where("activo = ?", true).Count(&total).Error; err != nil {
		return 0, 0, err
	}
	err := r.db.WithContext(ctx).Model(&model.Mesa{}).
		Where("activo = ? AND estado = ?", true, model.MesaOcupada).
		Count(&ocupadas).Error
	return ocupadas, total, err
}
