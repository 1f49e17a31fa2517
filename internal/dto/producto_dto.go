package dto

import "github.com/shopspring/decimal"

type CrearProductoRequest struct {
	Codigo            *string         `json:"codigo"             validate:"omitempty,min=1,max=30"`
	Nombre            string          `json:"nombre"             validate:"required,min=2"`
	Descripcion       *string         `json:"descripcion"`
	CategoriaID       *string         `json:"id_categoria"       validate:"omitempty,uuid"`
	Precio            decimal.Decimal `json:"precio"             validate:"required,gt=0"`
	Costo             decimal.Decimal `json:"costo"              validate:"min=0"`
	Stock             decimal.Decimal `json:"stock"              validate:"min=0"`
	StockMinimo       decimal.Decimal `json:"stock_minimo"       validate:"min=0"`
	UnidadMedida      *string         `json:"unidad_medida"`
	TiempoPreparacion *int            `json:"tiempo_preparacion" validate:"omitempty,min=0"`
	Disponible        *bool           `json:"disponible"`
}

// ActualizarProductoRequest is a typed partial update: nil fields are left
// untouched. This replaces the original's dynamic field-name allow-list.
type ActualizarProductoRequest struct {
	Codigo            *string          `json:"codigo"             validate:"omitempty,min=1,max=30"`
	Nombre            *string          `json:"nombre"             validate:"omitempty,min=2"`
	Descripcion       *string          `json:"descripcion"`
	CategoriaID       *string          `json:"id_categoria"       validate:"omitempty,uuid"`
	Precio            *decimal.Decimal `json:"precio"             validate:"omitempty,gt=0"`
	Costo             *decimal.Decimal `json:"costo"              validate:"omitempty,min=0"`
	StockMinimo       *decimal.Decimal `json:"stock_minimo"       validate:"omitempty,min=0"`
	UnidadMedida      *string          `json:"unidad_medida"`
	TiempoPreparacion *int             `json:"tiempo_preparacion" validate:"omitempty,min=0"`
	Disponible        *bool            `json:"disponible"`
}

type AjustarStockRequest struct {
	Delta  decimal.Decimal `json:"delta"  validate:"required"`
	Motivo string          `json:"motivo" validate:"required,min=3"`
}

type ProductoFilter struct {
	Categoria  string `form:"categoria"  validate:"omitempty,uuid"`
	Disponible *bool  `form:"disponible"`
	Buscar     string `form:"buscar"`
	Ordenar    string `form:"ordenar"`
	Direccion  string `form:"direccion"`
	Page       int    `form:"pagina,default=1"      validate:"min=1"`
	PerPage    int    `form:"por_pagina,default=50" validate:"min=1,max=100"`
}

type ProductoResponse struct {
	ID                string          `json:"id"`
	Codigo            *string         `json:"codigo"`
	Nombre            string          `json:"nombre"`
	Descripcion       *string         `json:"descripcion"`
	CategoriaID       *string         `json:"id_categoria"`
	CategoriaNombre   *string         `json:"categoria_nombre"`
	Precio            decimal.Decimal `json:"precio"`
	Costo             decimal.Decimal `json:"costo"`
	Stock             decimal.Decimal `json:"stock"`
	StockMinimo       decimal.Decimal `json:"stock_minimo"`
	StockBajo         bool            `json:"stock_bajo"`
	UnidadMedida      string          `json:"unidad_medida"`
	TiempoPreparacion int             `json:"tiempo_preparacion"`
	Disponible        bool            `json:"disponible"`
	Activo            bool            `json:"activo"`
}
