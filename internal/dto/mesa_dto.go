package dto

import "github.com/shopspring/decimal"

// ─── Zonas ───────────────────────────────────────────────────────────────────

type CrearZonaRequest struct {
	Nombre string  `json:"nombre" validate:"required,min=2"`
	Color  *string `json:"color"  validate:"omitempty,max=10"`
}

type ActualizarZonaRequest struct {
	Nombre *string `json:"nombre" validate:"omitempty,min=2"`
	Color  *string `json:"color"  validate:"omitempty,max=10"`
}

type ZonaResponse struct {
	ID     string  `json:"id"`
	Nombre string  `json:"nombre"`
	Color  *string `json:"color"`
	Activo bool    `json:"activo"`
}

// ─── Mesas ───────────────────────────────────────────────────────────────────

type CrearMesaRequest struct {
	Nombre    string  `json:"nombre"    validate:"required,min=1"`
	ZonaID    *string `json:"id_zona"   validate:"omitempty,uuid"`
	Capacidad int     `json:"capacidad" validate:"min=1"`
	PosX      int     `json:"pos_x"`
	PosY      int     `json:"pos_y"`
	Forma     *string `json:"forma"     validate:"omitempty,oneof=cuadrada redonda rectangular"`
}

type ActualizarMesaRequest struct {
	Nombre    *string `json:"nombre"    validate:"omitempty,min=1"`
	ZonaID    *string `json:"id_zona"   validate:"omitempty,uuid"`
	Capacidad *int    `json:"capacidad" validate:"omitempty,min=1"`
	PosX      *int    `json:"pos_x"`
	PosY      *int    `json:"pos_y"`
	Forma     *string `json:"forma"     validate:"omitempty,oneof=cuadrada redonda rectangular"`
}

type CambiarEstadoMesaRequest struct {
	Estado string `json:"estado" validate:"required"`
}

type MesaFilter struct {
	Zona   string `form:"zona"   validate:"omitempty,uuid"`
	Estado string `form:"estado"`
}

// ComandaResumen is the lightweight current-order block attached to
// occupied tables in the floor-plan listing.
type ComandaResumen struct {
	ID         string          `json:"id"`
	Numero     string          `json:"numero"`
	Total      decimal.Decimal `json:"total"`
	Comensales int             `json:"comensales"`
	ItemsCount int64           `json:"items_count"`
	Apertura   string          `json:"fecha_apertura"`
}

type MesaResponse struct {
	ID              string          `json:"id"`
	Nombre          string          `json:"nombre"`
	ZonaID          *string         `json:"id_zona"`
	ZonaNombre      *string         `json:"zona_nombre"`
	Capacidad       int             `json:"capacidad"`
	Estado          string          `json:"estado"`
	PosX            int             `json:"pos_x"`
	PosY            int             `json:"pos_y"`
	Forma           string          `json:"forma"`
	ComandasActivas int64           `json:"comandas_activas"`
	ComandaActual   *ComandaResumen `json:"comanda_actual"`
}
