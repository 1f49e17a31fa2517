package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/CristopherG19/app-restaurante-cgch/internal/dto"
	"github.com/CristopherG19/app-restaurante-cgch/internal/model"
)

type ProductoRepository interface {
	Create(ctx context.Context, p *model.Producto) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error)
	FindByCodigo(ctx context.Context, codigo string) (*model.Producto, error)
	Update(ctx context.Context, p *model.Producto) error
	Desactivar(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter dto.ProductoFilter) ([]model.Producto, int64, error)
	AjustarStock(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error
	DescontarStockTx(ctx context.Context, tx *gorm.DB, id uuid.UUID, cantidad decimal.Decimal) error
	CountStockBajo(ctx context.Context) (int64, error)
}

type productoRepo struct{ db *gorm.DB }

func NewProductoRepository(db *gorm.DB) ProductoRepository { return &productoRepo{db: db} }

func (r *productoRepo) Create(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error) {
	var p model.Producto
	err := r.db.WithContext(ctx).Preload("Categoria").First(&p, "id = ?", id).Error
	return &p, err
}

func (r *productoRepo) FindByCodigo(ctx context.Context, codigo string) (*model.Producto, error) {
	var p model.Producto
	err := r.db.WithContext(ctx).Where("codigo = ?", codigo).First(&p).Error
	return &p, err
}

func (r *productoRepo) Update(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *productoRepo) Desactivar(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Producto{}).Where("id = ?", id).Update("activo", false).Error
}

func (r *productoRepo) List(ctx context.Context, filter dto.ProductoFilter) ([]model.Producto, int64, error) {
	var productos []model.Producto
	var total int64
	offset := (filter.Page - 1) * filter.PerPage

	q := r.db.WithContext(ctx).Model(&model.Producto{}).Where("activo = ?", true)

	if filter.Categoria != "" {
		q = q.Where("categoria_id = ?", filter.Categoria)
	}
	if filter.Disponible != nil {
		q = q.Where("disponible = ?", *filter.Disponible)
	}
	if filter.Buscar != "" {
		like := "%" + filter.Buscar + "%"
		q = q.Where("nombre LIKE ? OR codigo LIKE ?", like, like)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	orden := "nombre"
	switch filter.Ordenar {
	case "precio", "stock", "created_at", "nombre":
		orden = filter.Ordenar
	}
	if filter.Direccion == "desc" {
		orden += " DESC"
	} else {
		orden += " ASC"
	}

	err := q.Preload("Categoria").
		Order(orden).
		Offset(offset).Limit(filter.PerPage).
		Find(&productos).Error

	return productos, total, err
}

func (r *productoRepo) AjustarStock(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error {
	return r.db.WithContext(ctx).Model(&model.Producto{}).
		Where("id = ?", id).
		Update("stock", gorm.Expr("GREATEST(stock + ?, 0)", delta)).Error
}

// DescontarStockTx clamps at zero instead of failing: a sale is never
// rejected because the stock counter drifted below the physical count.
func (r *productoRepo) DescontarStockTx(ctx context.Context, tx *gorm.DB, id uuid.UUID, cantidad decimal.Decimal) error {
	return tx.WithContext(ctx).Model(&model.Producto{}).
		Where("id = ?", id).
		Update("stock", gorm.Expr("GREATEST(stock - ?, 0)", cantidad)).Error
}

func (r *productoRepo) CountStockBajo(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Producto{}).
		Where("activo = ? AND stock <= stock_minimo", true).
		Count(&count).Error
	return count, err
}
