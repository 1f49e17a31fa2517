package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/CristopherG19/app-restaurante-cgch/internal/model"
)

type ZonaRepository interface {
	Create(ctx context.Context, z *model.Zona) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Zona, error)
	Update(ctx context.Context, z *model.Zona) error
	Desactivar(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]model.Zona, error)
	CountMesasActivas(ctx context.Context, id uuid.UUID) (int64, error)
}

type zonaRepo struct{ db *gorm.DB }

func NewZonaRepository(db *gorm.DB) ZonaRepository { return &zonaRepo{db: db} }

func (r *zonaRepo) Create(ctx context.Context, z *model.Zona) error {
	return r.db.WithContext(ctx).Create(z).Error
}

func (r *zonaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Zona, error) {
	var z model.Zona
	err := r.db.WithContext(ctx).First(&z, "id = ?", id).Error
	return &z, err
}

func (r *zonaRepo) Update(ctx context.Context, z *model.Zona) error {
	return r.db.WithContext(ctx).Save(z).Error
}

func (r *zonaRepo) Desactivar(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Zona{}).Where("id = ?", id).Update("activo", false).Error
}

func (r *zonaRepo) List(ctx context.Context) ([]model.Zona, error) {
	var zonas []model.Zona
	err := r.db.WithContext(ctx).Where("activo = ?", true).Order("nombre ASC").Find(&zonas).Error
	return zonas, err
}

func (r *zonaRepo) CountMesasActivas(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Mesa{}).
		Where("zona_id = ? AND activo = ?", id, true).
		Count(&count).Error
	return count, err
}
