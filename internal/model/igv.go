package model

import "github.com/shopspring/decimal"

// IGVPorcentaje is the Peruvian consumption tax rate. Catalog prices are
// tax-inclusive: the tax is extracted from the gross amount, never added on
// top.
const IGVPorcentaje = 18

var (
	igvRate    = decimal.NewFromInt(IGVPorcentaje)
	igvDivisor = decimal.NewFromInt(100 + IGVPorcentaje)
)

// ExtraerIGV splits a tax-inclusive gross amount into (subtotal, igv),
// both rounded to 2 decimals: igv = bruto × 18/118, subtotal = bruto − igv.
func ExtraerIGV(bruto decimal.Decimal) (subtotal, igv decimal.Decimal) {
	igv = bruto.Mul(igvRate).Div(igvDivisor).Round(2)
	subtotal = bruto.Sub(igv).Round(2)
	return subtotal, igv
}
