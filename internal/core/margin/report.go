package margin

import (
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/joseph-ayodele/fuel-docs/internal/common"
	"github.com/joseph-ayodele/fuel-docs/internal/core/pricing"
	"github.com/joseph-ayodele/fuel-docs/internal/entity"
)

// PriceSource tells where the purchase price of a row came from.
type PriceSource string

const (
	SourceTable   PriceSource = "price_table"
	SourceInvoice PriceSource = "invoice"
)

// Row is one line of the margin report, at full precision.
type Row struct {
	InvoiceNumber  string             `json:"invoice_number"`
	Date           string             `json:"date"`
	Supplier       string             `json:"supplier"`
	Product        string             `json:"product"`
	Base           string             `json:"base"`
	Reference      string             `json:"reference"`
	Quantity       decimal.Decimal    `json:"quantity"`
	PurchasePrice  decimal.Decimal    `json:"purchase_price"`
	PurchaseSource PriceSource        `json:"purchase_source"`
	PriceReason    entity.PriceReason `json:"price_reason,omitempty"`
	SalePrice      decimal.Decimal    `json:"sale_price"`
	Matched        bool               `json:"matched"` // sale price taken from a counterpart invoice
	BenchmarkPrice decimal.Decimal    `json:"benchmark_price"`
	Figures
}

// Report assembles margin rows from purchase-side invoices.
type Report struct {
	resolver *pricing.Resolver
	sales    *SaleIndex
	logger   *slog.Logger
}

func NewReport(resolver *pricing.Resolver, sales *SaleIndex, logger *slog.Logger) *Report {
	if logger == nil {
		logger = slog.Default()
	}
	if resolver == nil {
		resolver = pricing.NewResolver(nil, nil, pricing.Options{}, logger)
	}
	return &Report{resolver: resolver, sales: sales, logger: logger}
}

// BuildRow resolves the purchase price from the table (falling back to the invoice unit
// price), the benchmark and the sale price, and computes the margin figures. base names
// the loading depot; when empty it is looked for in the invoice line texts only. Delivery
// and issuer addresses are never read as a depot.
func (r *Report) BuildRow(inv entity.InvoiceRecord, base string) (Row, error) {
	td := inv.TransportDetails
	var missing []string
	if inv.InvoiceNumber == "" {
		missing = append(missing, "invoice_number")
	}
	if inv.Date == "" {
		missing = append(missing, "date")
	}
	if td.Quantity <= 0 {
		missing = append(missing, "quantity")
	}
	if len(missing) > 0 {
		return Row{}, common.NoRecordError("margin row", missing)
	}

	row := Row{
		InvoiceNumber: inv.InvoiceNumber,
		Date:          inv.Date,
		Product:       td.ProductType,
		Reference:     td.ReferenceNumber,
		Quantity:      decimal.NewFromFloat(td.Quantity),
	}

	resolved := r.resolver.Resolve(pricing.Query{
		Supplier: inv.Issuer.Name,
		Product:  td.ProductType,
		Base:     baseHint(inv, base),
		Date:     inv.Date,
	})
	row.Supplier, row.Base = resolved.Supplier, resolved.Base
	if resolved.ProductType != "" {
		row.Product = resolved.ProductType
	}
	if resolved.Known {
		row.PurchasePrice, row.PurchaseSource = resolved.Price, SourceTable
	} else {
		row.PurchasePrice, row.PurchaseSource = decimal.NewFromFloat(td.UnitPrice), SourceInvoice
		row.PriceReason = resolved.Reason
	}

	row.SalePrice, row.Matched = r.sales.SalePrice(inv)
	if bench := r.resolver.Benchmark(inv.Date); bench.Known {
		row.BenchmarkPrice = bench.Price
	}

	row.Figures = Compute(Inputs{
		Purchase:  row.PurchasePrice,
		Sale:      row.SalePrice,
		Quantity:  row.Quantity,
		Benchmark: row.BenchmarkPrice,
	})
	r.logger.Debug("margin.row.built",
		"invoice", row.InvoiceNumber, "purchase_source", string(row.PurchaseSource),
		"matched", row.Matched, "total_margin", row.Total.String())
	return row, nil
}

// BuildRows builds one row per invoice, skipping the ones without the mandatory fields.
func (r *Report) BuildRows(invoices []entity.InvoiceRecord) []Row {
	rows := make([]Row, 0, len(invoices))
	for _, inv := range invoices {
		row, err := r.BuildRow(inv, "")
		if err != nil {
			r.logger.Warn("margin.row.skipped", "invoice", inv.InvoiceNumber, "error", err)
			continue
		}
		rows = append(rows, row)
	}
	return rows
}

// baseHint returns the explicit base or the first line text that names a known loading
// depot.
func baseHint(inv entity.InvoiceRecord, explicit string) string {
	hints := []string{explicit}
	for _, l := range inv.Lines {
		hints = append(hints, l.Description, l.ExtraData)
	}
	for _, h := range hints {
		if _, ok := pricing.Bases.Normalize(h); ok {
			return h
		}
	}
	return explicit
}

// Presented is a Row rounded for display: unit prices to five decimals, totals to two.
type Presented struct {
	PurchasePrice       string `json:"purchase_price"`
	SalePrice           string `json:"sale_price"`
	BenchmarkPrice      string `json:"benchmark_price"`
	PerUnit             string `json:"per_unit_margin"`
	Markup              string `json:"markup"`
	Quantity            string `json:"quantity"`
	Total               string `json:"total_margin"`
	TaxableSaleBase     string `json:"taxable_sale_base"`
	TaxablePurchaseBase string `json:"taxable_purchase_base"`
}

func (r Row) Presented() Presented {
	return Presented{
		PurchasePrice:       r.PurchasePrice.StringFixed(UnitPlaces),
		SalePrice:           r.SalePrice.StringFixed(UnitPlaces),
		BenchmarkPrice:      r.BenchmarkPrice.StringFixed(UnitPlaces),
		PerUnit:             r.PerUnit.StringFixed(UnitPlaces),
		Markup:              r.Markup.StringFixed(UnitPlaces),
		Quantity:            r.Quantity.StringFixed(TotalPlaces),
		Total:               r.Total.StringFixed(TotalPlaces),
		TaxableSaleBase:     r.TaxableSaleBase.StringFixed(TotalPlaces),
		TaxablePurchaseBase: r.TaxablePurchaseBase.StringFixed(TotalPlaces),
	}
}
