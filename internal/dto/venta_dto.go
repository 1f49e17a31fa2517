package dto

import "github.com/shopspring/decimal"

type ItemVentaRequest struct {
	ProductoID     string           `json:"id_producto"     validate:"required,uuid"`
	Cantidad       decimal.Decimal  `json:"cantidad"        validate:"required,gt=0"`
	PrecioUnitario *decimal.Decimal `json:"precio_unitario" validate:"omitempty,gt=0"`
	Descuento      decimal.Decimal  `json:"descuento"       validate:"min=0"`
	Notas          *string          `json:"notas"`
}

type PagoRequest struct {
	Metodo        string           `json:"metodo"         validate:"required"`
	Monto         decimal.Decimal  `json:"monto"          validate:"required,gt=0"`
	Referencia    *string          `json:"referencia"`
	MontoRecibido *decimal.Decimal `json:"monto_recibido" validate:"omitempty,min=0"`
}

type CrearVentaRequest struct {
	TipoComprobante string             `json:"tipo_comprobante" validate:"omitempty,oneof=nota_venta boleta factura"`
	ClienteID       *string            `json:"id_cliente"       validate:"omitempty,uuid"`
	MesaID          *string            `json:"id_mesa"          validate:"omitempty,uuid"`
	TipoServicio    string             `json:"tipo_servicio"    validate:"omitempty,oneof=mesa llevar"`
	Items           []ItemVentaRequest `json:"items"            validate:"required,min=1,dive"`
	Pagos           []PagoRequest      `json:"pagos"            validate:"omitempty,dive"`
	Descuento       decimal.Decimal    `json:"descuento"        validate:"min=0"`
	Observaciones   *string            `json:"observaciones"`
}

type VentaDesdeComandaRequest struct {
	ComandaID       string          `json:"id_comanda"       validate:"required,uuid"`
	TipoComprobante string          `json:"tipo_comprobante" validate:"omitempty,oneof=nota_venta boleta factura"`
	ClienteID       *string         `json:"id_cliente"       validate:"omitempty,uuid"`
	Pagos           []PagoRequest   `json:"pagos"            validate:"omitempty,dive"`
	Descuento       decimal.Decimal `json:"descuento"        validate:"min=0"`
	Observaciones   *string         `json:"observaciones"`
}

type AnularVentaRequest struct {
	Motivo string `json:"motivo" validate:"required,min=3"`
}

type VentaFilter struct {
	TipoComprobante string `form:"tipo_comprobante" validate:"omitempty,oneof=nota_venta boleta factura"`
	Estado          string `form:"estado"           validate:"omitempty,oneof=pendiente pagada anulada"`
	Sesion          string `form:"sesion"           validate:"omitempty,uuid"`
	Desde           string `form:"desde"`
	Hasta           string `form:"hasta"`
	Page            int    `form:"pagina,default=1"      validate:"min=1"`
	PerPage         int    `form:"por_pagina,default=20" validate:"min=1,max=100"`
}

type VentaDetalleResponse struct {
	ID             string          `json:"id"`
	ProductoID     string          `json:"id_producto"`
	CodigoProducto *string         `json:"codigo_producto"`
	Descripcion    string          `json:"descripcion"`
	Unidad         string          `json:"unidad"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Descuento      decimal.Decimal `json:"descuento"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	IGV            decimal.Decimal `json:"igv"`
	Total          decimal.Decimal `json:"total"`
	Notas          *string         `json:"notas"`
}

type PagoResponse struct {
	ID            string           `json:"id"`
	Metodo        string           `json:"metodo"`
	Monto         decimal.Decimal  `json:"monto"`
	Referencia    *string          `json:"referencia"`
	MontoRecibido *decimal.Decimal `json:"monto_recibido"`
	Vuelto        *decimal.Decimal `json:"vuelto"`
	Fecha         string           `json:"fecha"`
}

type VentaResponse struct {
	ID              string                 `json:"id"`
	TipoComprobante string                 `json:"tipo_comprobante"`
	Serie           string                 `json:"serie"`
	Numero          int64                  `json:"numero"`
	NumeroCompleto  string                 `json:"numero_completo"`
	ClienteID       *string                `json:"id_cliente"`
	ClienteNombre   *string                `json:"cliente_nombre"`
	UsuarioID       string                 `json:"id_usuario"`
	UsuarioNombre   string                 `json:"usuario_nombre"`
	SesionCajaID    string                 `json:"id_sesion_caja"`
	MesaID          *string                `json:"id_mesa"`
	TipoServicio    string                 `json:"tipo_servicio"`
	Subtotal        decimal.Decimal        `json:"subtotal"`
	IGV             decimal.Decimal        `json:"igv"`
	Descuento       decimal.Decimal        `json:"descuento"`
	Total           decimal.Decimal        `json:"total"`
	Estado          string                 `json:"estado"`
	Observaciones   *string                `json:"observaciones"`
	FechaEmision    string                 `json:"fecha_emision"`
	Detalles        []VentaDetalleResponse `json:"detalles"`
	Pagos           []PagoResponse         `json:"pagos"`
}

// TicketResponse carries everything the front end needs to print the
// sale receipt, including the SUNAT-style QR payload.
type TicketResponse struct {
	Negocio  NegocioInfo   `json:"negocio"`
	Venta    VentaResponse `json:"venta"`
	QRData   string        `json:"qr_data"`
	Mensaje  string        `json:"mensaje"`
}

type NegocioInfo struct {
	RazonSocial string `json:"razon_social"`
	RUC         string `json:"ruc"`
	Direccion   string `json:"direccion"`
	Telefono    string `json:"telefono"`
}
