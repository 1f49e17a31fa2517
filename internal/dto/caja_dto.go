package dto

import "github.com/shopspring/decimal"

type AbrirCajaRequest struct {
	MontoInicial  decimal.Decimal `json:"monto_inicial" validate:"min=0"`
	Observaciones *string         `json:"observaciones"`
}

type CerrarCajaRequest struct {
	MontoReal     decimal.Decimal `json:"monto_real" validate:"min=0"`
	Observaciones *string         `json:"observaciones"`
}

type CajaFilter struct {
	Estado  string `form:"estado" validate:"omitempty,oneof=abierta cerrada"`
	Desde   string `form:"desde"`
	Hasta   string `form:"hasta"`
	Page    int    `form:"pagina,default=1"      validate:"min=1"`
	PerPage int    `form:"por_pagina,default=20" validate:"min=1,max=100"`
}

type SesionCajaResponse struct {
	ID                string           `json:"id"`
	UsuarioID         string           `json:"id_usuario"`
	UsuarioNombre     string           `json:"usuario_nombre"`
	FechaApertura     string           `json:"fecha_apertura"`
	FechaCierre       *string          `json:"fecha_cierre"`
	MontoInicial      decimal.Decimal  `json:"monto_inicial"`
	TotalEfectivo     decimal.Decimal  `json:"total_efectivo"`
	TotalTarjeta      decimal.Decimal  `json:"total_tarjeta"`
	TotalYape         decimal.Decimal  `json:"total_yape"`
	TotalPlin         decimal.Decimal  `json:"total_plin"`
	TotalTransferencia decimal.Decimal `json:"total_transferencia"`
	MontoEsperado     *decimal.Decimal `json:"monto_esperado"`
	MontoReal         *decimal.Decimal `json:"monto_real"`
	Diferencia        *decimal.Decimal `json:"diferencia"`
	Estado            string           `json:"estado"`
	Observaciones     *string          `json:"observaciones"`
	VentasCount       int64            `json:"ventas_count"`
	VentasTotal       decimal.Decimal  `json:"ventas_total"`
	ComandasAbiertas  int64            `json:"comandas_abiertas"`
}

type VentasPorTipo struct {
	TipoComprobante string          `json:"tipo_comprobante"`
	Cantidad        int64           `json:"cantidad"`
	Total           decimal.Decimal `json:"total"`
}

type PagosPorMetodo struct {
	Metodo   string          `json:"metodo"`
	Cantidad int64           `json:"cantidad"`
	Total    decimal.Decimal `json:"total"`
}

type ResumenCajaResponse struct {
	Sesion        SesionCajaResponse `json:"sesion"`
	VentasPorTipo []VentasPorTipo    `json:"ventas_por_tipo"`
	PagosPorMetodo []PagosPorMetodo  `json:"pagos_por_metodo"`
	VentasAnuladas int64             `json:"ventas_anuladas"`
	MontoEsperado decimal.Decimal    `json:"monto_esperado"`
}
