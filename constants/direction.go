package constants

// TradeDirection tells which side of the trade the own company is on for an invoice.
// The zero value means unknown.
type TradeDirection string

const (
	Purchase TradeDirection = "PURCHASE" // own company is the client
	Sale     TradeDirection = "SALE"     // own company is the issuer
)

// Opposite returns the other side of the trade; unknown stays unknown.
func (d TradeDirection) Opposite() TradeDirection {
	switch d {
	case Purchase:
		return Sale
	case Sale:
		return Purchase
	}
	return ""
}
