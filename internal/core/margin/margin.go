// Package margin computes trading margins from purchase, sale and benchmark prices.
// Everything is kept at full decimal precision; rounding happens only in Presented.
package margin

import "github.com/shopspring/decimal"

// Inputs are the per-liter prices and the delivered quantity of one shipment.
type Inputs struct {
	Purchase  decimal.Decimal
	Sale      decimal.Decimal
	Quantity  decimal.Decimal // liters
	Benchmark decimal.Decimal
}

// Figures are the derived margin values.
type Figures struct {
	PerUnit             decimal.Decimal `json:"per_unit_margin"`
	Total               decimal.Decimal `json:"total_margin"`
	TaxableSaleBase     decimal.Decimal `json:"taxable_sale_base"`
	TaxablePurchaseBase decimal.Decimal `json:"taxable_purchase_base"`
	Markup              decimal.Decimal `json:"markup"`
}

func Compute(in Inputs) Figures {
	perUnit := in.Sale.Sub(in.Purchase)
	return Figures{
		PerUnit:             perUnit,
		Total:               perUnit.Mul(in.Quantity),
		TaxableSaleBase:     in.Quantity.Mul(in.Sale).Sub(in.Benchmark),
		TaxablePurchaseBase: in.Quantity.Mul(in.Purchase),
		Markup:              in.Purchase.Sub(in.Benchmark),
	}
}

// Presentation precision.
const (
	UnitPlaces  = 5
	TotalPlaces = 2
)
