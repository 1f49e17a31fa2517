package dto

import "github.com/shopspring/decimal"

type ProductoVendido struct {
	ProductoID string          `json:"id_producto"`
	Nombre     string          `json:"nombre"`
	Cantidad   decimal.Decimal `json:"cantidad"`
	Total      decimal.Decimal `json:"total"`
}

type DashboardResponse struct {
	VentasHoy        int64             `json:"ventas_hoy"`
	TotalHoy         decimal.Decimal   `json:"total_hoy"`
	ComandasAbiertas int64             `json:"comandas_abiertas"`
	MesasOcupadas    int64             `json:"mesas_ocupadas"`
	MesasTotal       int64             `json:"mesas_total"`
	StockBajo        int64             `json:"stock_bajo"`
	TopProductos     []ProductoVendido `json:"top_productos"`
	PagosPorMetodo   []PagosPorMetodo  `json:"pagos_por_metodo"`
}
