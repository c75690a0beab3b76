package entity

import "github.com/shopspring/decimal"

// PriceReason names the resolution step that failed.
type PriceReason string

const (
	ReasonUnknownSupplier PriceReason = "unknown_supplier"
	ReasonUnknownProduct  PriceReason = "unknown_product"
	ReasonUnknownBase     PriceReason = "unknown_base"
	ReasonNoDate          PriceReason = "no_date"
	ReasonNoColumn        PriceReason = "no_column"
)

// PriceRow is one dated row of the price table, keyed by column label.
type PriceRow struct {
	Date   string                     `json:"date" validate:"required"` // YYYY-MM-DD
	Prices map[string]decimal.Decimal `json:"prices"`
}

// ResolvedPrice is the outcome of a price lookup. When Known is false Price is zero and
// callers fall back to the invoice's own unit price.
type ResolvedPrice struct {
	Price       decimal.Decimal `json:"price"`
	Date        string          `json:"date,omitempty"`
	Column      string          `json:"column,omitempty"`
	Supplier    string          `json:"supplier,omitempty"`
	ProductType string          `json:"product_type,omitempty"`
	Base        string          `json:"base,omitempty"`
	Known       bool            `json:"known"`
	Reason      PriceReason     `json:"reason,omitempty"`
}
