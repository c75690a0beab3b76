// Package pricing resolves reference prices for a supplier, product and loading base on a
// given date from an immutable price table.
package pricing

import (
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/joseph-ayodele/fuel-docs/internal/common"
	"github.com/joseph-ayodele/fuel-docs/internal/dates"
	"github.com/joseph-ayodele/fuel-docs/internal/entity"
)

// DefaultWindowDays is how far from the requested date a price row may be.
const DefaultWindowDays = 7

// Query is one price request with the names as they appear on the documents.
type Query struct {
	Supplier string
	Product  string
	Base     string
	Date     string // ISO or dd/mm/yyyy
}

type Options struct {
	WindowDays      int
	BenchmarkColumn string
}

func OptionsFromConfig(cfg common.PricingConfig) Options {
	return Options{WindowDays: cfg.WindowDays, BenchmarkColumn: cfg.BenchmarkColumn}
}

// Resolver looks prices up in one table snapshot. It never fails: every unresolvable
// step yields an unknown price with the reason set.
type Resolver struct {
	table   *Table
	catalog *Catalog
	opts    Options
	logger  *slog.Logger
}

func NewResolver(table *Table, catalog *Catalog, opts Options, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.WindowDays <= 0 {
		opts.WindowDays = DefaultWindowDays
	}
	if table == nil {
		table = &Table{labels: map[string]string{}}
	}
	if catalog == nil {
		catalog = &Catalog{}
	}
	if table.Len() > 0 && opts.BenchmarkColumn != "" && !table.HasColumn(opts.BenchmarkColumn) {
		logger.Warn("pricing.benchmark.missing_column", "column", opts.BenchmarkColumn)
	}
	return &Resolver{table: table, catalog: catalog, opts: opts, logger: logger}
}

// Resolve normalizes the supplier, product and base, expands the catalog templates into
// column candidates and searches the table around the date.
func (r *Resolver) Resolve(q Query) entity.ResolvedPrice {
	var res entity.ResolvedPrice

	supplier, ok := Suppliers.Normalize(q.Supplier)
	if !ok {
		return r.unknown(res, entity.ReasonUnknownSupplier, q)
	}
	res.Supplier = supplier

	product, ok := Products.Normalize(q.Product)
	if !ok {
		return r.unknown(res, entity.ReasonUnknownProduct, q)
	}
	res.ProductType = product

	base, ok := Bases.Normalize(q.Base)
	if !ok {
		return r.unknown(res, entity.ReasonUnknownBase, q)
	}
	res.Base = base

	date, ok := parseDate(q.Date)
	if !ok {
		return r.unknown(res, entity.ReasonNoDate, q)
	}

	candidates := r.catalog.Candidates(supplier, product, base)
	h, reason := r.table.lookup(date, candidates, r.opts.WindowDays)
	if reason != "" {
		if reason == entity.ReasonNoColumn {
			r.logger.Warn("pricing.resolve.no_column",
				"supplier", supplier, "product", product, "base", base,
				"date", date.Format(dates.ISO), "candidates", candidates)
		}
		return r.unknown(res, reason, q)
	}

	res.Price = h.price
	res.Date = h.date.Format(dates.ISO)
	res.Column = h.column
	res.Known = true
	r.logger.Debug("pricing.resolve.ok", "column", res.Column, "date", res.Date, "price", res.Price.String())
	return res
}

// Benchmark resolves the benchmark column around date with the same window.
func (r *Resolver) Benchmark(date string) entity.ResolvedPrice {
	res := entity.ResolvedPrice{}
	if r.opts.BenchmarkColumn == "" {
		return r.unknown(res, entity.ReasonNoColumn, Query{Date: date})
	}
	d, ok := parseDate(date)
	if !ok {
		return r.unknown(res, entity.ReasonNoDate, Query{Date: date})
	}
	h, reason := r.table.lookup(d, []string{r.opts.BenchmarkColumn}, r.opts.WindowDays)
	if reason != "" {
		if reason == entity.ReasonNoColumn {
			r.logger.Warn("pricing.benchmark.no_column", "column", r.opts.BenchmarkColumn, "date", d.Format(dates.ISO))
		}
		return r.unknown(res, reason, Query{Date: date})
	}
	return entity.ResolvedPrice{Price: h.price, Date: h.date.Format(dates.ISO), Column: h.column, Known: true}
}

func (r *Resolver) unknown(res entity.ResolvedPrice, reason entity.PriceReason, q Query) entity.ResolvedPrice {
	r.logger.Debug("pricing.resolve.unknown", "reason", string(reason),
		"supplier", q.Supplier, "product", q.Product, "base", q.Base, "date", q.Date)
	res.Price = decimal.Zero
	res.Known = false
	res.Reason = reason
	return res
}

func parseDate(s string) (time.Time, bool) {
	return dates.Parse(s, dates.DayFirst)
}
