package pricing

import (
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/joseph-ayodele/fuel-docs/internal/common"
	"github.com/joseph-ayodele/fuel-docs/internal/dates"
	"github.com/joseph-ayodele/fuel-docs/internal/entity"
)

type row struct {
	date   time.Time
	prices map[string]decimal.Decimal // folded label -> price
}

// Table is an immutable snapshot of the price table, safe for concurrent reads.
type Table struct {
	labels map[string]string // folded -> label as written in the header
	rows   []row             // ascending by date
}

// NewTable builds a table from dated rows. Rows sharing a date are merged, the first
// positive price per column wins. Non-positive prices are dropped.
func NewTable(rows []entity.PriceRow) (*Table, error) {
	t := &Table{labels: make(map[string]string)}
	byDate := make(map[time.Time]int, len(rows))
	for i, r := range rows {
		d, ok := dates.Parse(r.Date, dates.DayFirst)
		if !ok {
			return nil, common.NewAppError(common.CodePriceTable, "row "+strconv.Itoa(i+1)+": bad date "+r.Date, common.ErrInvalidInput)
		}
		idx, seen := byDate[d]
		if !seen {
			idx = len(t.rows)
			byDate[d] = idx
			t.rows = append(t.rows, row{date: d, prices: make(map[string]decimal.Decimal, len(r.Prices))})
		}
		for label, p := range r.Prices {
			key := Fold(label)
			if key == "" || !p.IsPositive() {
				continue
			}
			if _, ok := t.labels[key]; !ok {
				t.labels[key] = label
			}
			if _, ok := t.rows[idx].prices[key]; !ok {
				t.rows[idx].prices[key] = p
			}
		}
	}
	sort.Slice(t.rows, func(i, j int) bool { return t.rows[i].date.Before(t.rows[j].date) })
	return t, nil
}

func (t *Table) Len() int { return len(t.rows) }

// Labels lists the column labels as written in the header, sorted.
func (t *Table) Labels() []string {
	out := make([]string, 0, len(t.labels))
	for _, l := range t.labels {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

// HasColumn reports whether any row carries the label.
func (t *Table) HasColumn(label string) bool {
	_, ok := t.labels[Fold(label)]
	return ok
}

// hit is a successful lookup.
type hit struct {
	price  decimal.Decimal
	date   time.Time
	column string
}

// lookup searches rows within window days of date, nearest first with ties going to the
// earlier row, and returns the first candidate with a positive price. It reports
// ReasonNoDate when no row is close enough and ReasonNoColumn when rows exist but none of
// the candidates is priced.
func (t *Table) lookup(date time.Time, candidates []string, window int) (hit, entity.PriceReason) {
	near := t.near(date, window)
	if len(near) == 0 {
		return hit{}, entity.ReasonNoDate
	}
	for _, r := range near {
		for _, c := range candidates {
			if p, ok := r.prices[Fold(c)]; ok && p.IsPositive() {
				return hit{price: p, date: r.date, column: t.labels[Fold(c)]}, ""
			}
		}
	}
	return hit{}, entity.ReasonNoColumn
}

func (t *Table) near(date time.Time, window int) []row {
	var out []row
	for _, r := range t.rows {
		if dates.DaysBetween(r.date, date) <= window {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		di, dj := dates.DaysBetween(out[i].date, date), dates.DaysBetween(out[j].date, date)
		if di != dj {
			return di < dj
		}
		return out[i].date.Before(out[j].date)
	})
	return out
}
