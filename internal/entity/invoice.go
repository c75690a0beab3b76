package entity

import "github.com/joseph-ayodele/fuel-docs/constants"

// InvoiceRecord is a commercial invoice read from e-invoice XML or its text rendering.
type InvoiceRecord struct {
	InvoiceNumber    string                   `json:"invoice_number" validate:"required"`
	Date             string                   `json:"date" validate:"required"` // YYYY-MM-DD
	Direction        constants.TradeDirection `json:"direction,omitempty"`
	Issuer           InvoiceParty             `json:"issuer"`
	Client           InvoiceParty             `json:"client"`
	Amounts          InvoiceAmounts           `json:"amounts"`
	TransportDetails TransportDetails         `json:"transport_details"`
	Lines            []InvoiceLine            `json:"lines"`
}

type InvoiceParty struct {
	Name    string `json:"name"`
	TaxID   string `json:"tax_id"`
	Address string `json:"address"`
}

type InvoiceAmounts struct {
	Net   float64 `json:"net" validate:"gte=0"`
	Tax   float64 `json:"tax" validate:"gte=0"`
	Total float64 `json:"total" validate:"gte=0"`
}

// TransportDetails summarizes the fuel line of the invoice and its delivery.
type TransportDetails struct {
	ProductType     string  `json:"product_type"`
	Quantity        float64 `json:"quantity" validate:"gte=0"`
	UnitPrice       float64 `json:"unit_price" validate:"gte=0"`
	ReferenceNumber string  `json:"reference_number"`
	DeliveryAddress string  `json:"delivery_address"`
	UnitOfMeasure   string  `json:"unit_of_measure"`
}

type InvoiceLine struct {
	LineNumber    int     `json:"line_number" validate:"gt=0"`
	ProductCode   string  `json:"product_code"`
	Description   string  `json:"description" validate:"required"`
	Quantity      float64 `json:"quantity" validate:"gt=0"`
	UnitOfMeasure string  `json:"unit_of_measure"`
	UnitValue     float64 `json:"unit_value" validate:"gte=0"`
	TotalValue    float64 `json:"total_value" validate:"gte=0"`
	VATRate       float64 `json:"vat_rate" validate:"gte=0"`
	ExtraData     string  `json:"extra_data"`
}
