package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/CristopherG19/app-restaurante-cgch/internal/model"
)

type ConfiguracionRepository interface {
	GetValor(ctx context.Context, clave string) (string, error)
	List(ctx context.Context) ([]model.Configuracion, error)
	Upsert(ctx context.Context, grupo, clave, valor string) error
}

type configuracionRepo struct{ db *gorm.DB }

func NewConfiguracionRepository(db *gorm.DB) ConfiguracionRepository {
	return &configuracionRepo{db: db}
}

func (r *configuracionRepo) GetValor(ctx context.Context, clave string) (string, error) {
	var c model.Configuracion
	err := r.db.WithContext(ctx).Where("clave = ?", clave).First(&c).Error
	if err != nil {
		return "", err
	}
	return c.Valor, nil
}

func (r *configuracionRepo) List(ctx context.Context) ([]model.Configuracion, error) {
	var configs []model.Configuracion
	err := r.db.WithContext(ctx).Order("grupo ASC, clave ASC").Find(&configs).Error
	return configs, err
}

func (r *configuracionRepo) Upsert(ctx context.Context, grupo, clave, valor string) error {
	c := model.Configuracion{Grupo: grupo, Clave: clave, Valor: valor}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "clave"}},
			DoUpdates: clause.AssignmentColumns([]string{"grupo", "valor"}),
		}).
		Create(&c).Error
}
