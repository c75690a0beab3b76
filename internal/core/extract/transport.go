package extract

import (
	"strings"

	"github.com/joseph-ayodele/fuel-docs/internal/entity"
)

// fuelPhrases are the product names recognized on invoice lines, most specific first.
var fuelPhrases = []string{
	"GASOLIO AUTOTRAZIONE",
	"GASOLIO AGRICOLO",
	"GASOLIO RISCALDAMENTO",
	"GASOLIO AUTO",
	"GASOLIO",
	"BENZINA SENZA PIOMBO",
	"BENZINA",
	"HVO",
	"BIODIESEL",
	"DIESEL",
}

var literUnits = map[string]bool{"L": true, "LT": true, "LTS": true, "LITRI": true, "LITRO": true, "LITRES": true, "LITERS": true}

func fuelPhrase(description string) string {
	d := strings.ToUpper(description)
	for _, p := range fuelPhrases {
		if strings.Contains(d, p) {
			return p
		}
	}
	return ""
}

// fuelLine picks the line describing the delivered product: the first naming a known fuel,
// else the first measured in liters, else the first line.
func fuelLine(lines []entity.InvoiceLine) (entity.InvoiceLine, bool) {
	if len(lines) == 0 {
		return entity.InvoiceLine{}, false
	}
	for _, l := range lines {
		if fuelPhrase(l.Description) != "" {
			return l, true
		}
	}
	for _, l := range lines {
		if literUnits[strings.ToUpper(l.UnitOfMeasure)] {
			return l, true
		}
	}
	return lines[0], true
}

func transportDetails(f Fields, lines []entity.InvoiceLine) entity.TransportDetails {
	return DeriveTransport(entity.TransportDetails{
		ReferenceNumber: f.String(fieldTransportRef),
		DeliveryAddress: f.String(fieldDeliveryAddr),
		Quantity:        f.Number(fieldTransportQty),
		UnitPrice:       f.Number(fieldTransportPrice),
	}, lines)
}

// DeriveTransport fills the product, quantity, price and unit of td from the fuel line.
// Reference and delivery address are kept.
func DeriveTransport(td entity.TransportDetails, lines []entity.InvoiceLine) entity.TransportDetails {
	l, ok := fuelLine(lines)
	if !ok {
		return td
	}
	td.ProductType = fuelPhrase(l.Description)
	if td.ProductType == "" {
		td.ProductType = l.Description
	}
	td.Quantity = l.Quantity
	td.UnitPrice = l.UnitValue
	td.UnitOfMeasure = l.UnitOfMeasure
	return td
}
