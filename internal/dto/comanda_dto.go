package dto

import "github.com/shopspring/decimal"

type ItemComandaRequest struct {
	ProductoID     string           `json:"id_producto"     validate:"required,uuid"`
	Cantidad       decimal.Decimal  `json:"cantidad"        validate:"required,gt=0"`
	PrecioUnitario *decimal.Decimal `json:"precio_unitario" validate:"omitempty,gt=0"`
	Notas          *string          `json:"notas"`
}

type CrearComandaRequest struct {
	MesaID       *string              `json:"id_mesa"       validate:"omitempty,uuid"`
	TipoServicio string               `json:"tipo_servicio" validate:"omitempty,oneof=mesa llevar"`
	Comensales   int                  `json:"comensales"    validate:"omitempty,min=1"`
	Notas        *string              `json:"notas"`
	Items        []ItemComandaRequest `json:"items"         validate:"omitempty,dive"`
}

type ActualizarComandaRequest struct {
	Comensales *int    `json:"comensales" validate:"omitempty,min=1"`
	Notas      *string `json:"notas"`
}

type CambiarEstadoComandaRequest struct {
	Estado string `json:"estado" validate:"required"`
}

type CambiarEstadoItemRequest struct {
	Estado string `json:"estado" validate:"required"`
}

type ComandaFilter struct {
	Estado  string `form:"estado"`
	Mesa    string `form:"mesa"  validate:"omitempty,uuid"`
	Fecha   string `form:"fecha"`
	Page    int    `form:"pagina,default=1"      validate:"min=1"`
	PerPage int    `form:"por_pagina,default=20" validate:"min=1,max=100"`
}

type ComandaItemResponse struct {
	ID             string          `json:"id"`
	ProductoID     string          `json:"id_producto"`
	ProductoNombre string          `json:"producto_nombre"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	Notas          *string         `json:"notas"`
	Estado         string          `json:"estado"`
	HoraPedido     string          `json:"hora_pedido"`
	HoraEnvio      *string         `json:"hora_envio_cocina"`
	HoraListo      *string         `json:"hora_listo"`
	HoraEntrega    *string         `json:"hora_entrega"`
}

type ComandaResponse struct {
	ID            string                `json:"id"`
	Numero        string                `json:"numero"`
	MesaID        *string               `json:"id_mesa"`
	MesaNombre    *string               `json:"mesa_nombre"`
	UsuarioID     string                `json:"id_usuario"`
	UsuarioNombre string                `json:"usuario_nombre"`
	SesionCajaID  string                `json:"id_sesion_caja"`
	VentaID       *string               `json:"id_venta"`
	TipoServicio  string                `json:"tipo_servicio"`
	Comensales    int                   `json:"comensales"`
	Estado        string                `json:"estado"`
	Subtotal      decimal.Decimal       `json:"subtotal"`
	IGV           decimal.Decimal       `json:"igv"`
	Total         decimal.Decimal       `json:"total"`
	Notas         *string               `json:"notas"`
	FechaApertura string                `json:"fecha_apertura"`
	FechaCierre   *string               `json:"fecha_cierre"`
	Items         []ComandaItemResponse `json:"items"`
}

type EnviarCocinaResponse struct {
	ItemsEnviados int64 `json:"items_enviados"`
}

// CocinaItem is one dish on the kitchen display, annotated with elapsed
// minutes since it was fired so the UI can flag slow tickets.
type CocinaItem struct {
	ID                  string          `json:"id"`
	ComandaID           string          `json:"id_comanda"`
	ComandaNumero       string          `json:"comanda_numero"`
	MesaNombre          *string         `json:"mesa_nombre"`
	TipoServicio        string          `json:"tipo_servicio"`
	ProductoNombre      string          `json:"producto_nombre"`
	Cantidad            decimal.Decimal `json:"cantidad"`
	Notas               *string         `json:"notas"`
	Estado              string          `json:"estado"`
	HoraEnvio           *string         `json:"hora_envio_cocina"`
	MinutosTranscurridos int            `json:"minutos_transcurridos"`
	Alerta              bool            `json:"alerta"`
}

type CocinaResponse struct {
	Enviados     []CocinaItem `json:"enviados"`
	Preparando   []CocinaItem `json:"preparando"`
	Listos       []CocinaItem `json:"listos"`
	TiempoAlerta int          `json:"tiempo_alerta"`
}
