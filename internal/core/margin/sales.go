package margin

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/joseph-ayodele/fuel-docs/constants"
	"github.com/joseph-ayodele/fuel-docs/internal/entity"
)

type saleKey struct {
	direction constants.TradeDirection
	date      string
	reference string
}

// SaleIndex finds the counterpart of an invoice: an invoice of the opposite trading
// direction with the same date and shipment reference.
type SaleIndex struct {
	prices map[saleKey]decimal.Decimal
}

// NewSaleIndex indexes the fuel unit price of every invoice that has a direction, a date
// and a shipment reference. The first invoice seen for a key wins.
func NewSaleIndex(invoices []entity.InvoiceRecord) *SaleIndex {
	x := &SaleIndex{prices: make(map[saleKey]decimal.Decimal, len(invoices))}
	for _, inv := range invoices {
		k, ok := keyOf(inv.Direction, inv)
		if !ok || inv.TransportDetails.UnitPrice <= 0 {
			continue
		}
		if _, dup := x.prices[k]; !dup {
			x.prices[k] = decimal.NewFromFloat(inv.TransportDetails.UnitPrice)
		}
	}
	return x
}

func (x *SaleIndex) Len() int {
	if x == nil {
		return 0
	}
	return len(x.prices)
}

// Counterpart returns the unit price of the matching opposite-direction invoice.
func (x *SaleIndex) Counterpart(inv entity.InvoiceRecord) (decimal.Decimal, bool) {
	if x == nil {
		return decimal.Zero, false
	}
	k, ok := keyOf(inv.Direction.Opposite(), inv)
	if !ok {
		return decimal.Zero, false
	}
	p, ok := x.prices[k]
	return p, ok
}

// SalePrice prefers the counterpart price and falls back to the unit value of the
// invoice's own fuel line.
func (x *SaleIndex) SalePrice(inv entity.InvoiceRecord) (decimal.Decimal, bool) {
	if p, ok := x.Counterpart(inv); ok {
		return p, true
	}
	return decimal.NewFromFloat(inv.TransportDetails.UnitPrice), false
}

func keyOf(dir constants.TradeDirection, inv entity.InvoiceRecord) (saleKey, bool) {
	ref := strings.ToUpper(strings.Join(strings.Fields(inv.TransportDetails.ReferenceNumber), " "))
	if dir == "" || inv.Date == "" || ref == "" {
		return saleKey{}, false
	}
	return saleKey{direction: dir, date: inv.Date, reference: ref}, true
}
