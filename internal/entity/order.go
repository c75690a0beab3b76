package entity

// OrderRecord is one order line segmented out of a batch manifest.
type OrderRecord struct {
	OrderNumber     string  `json:"order_number" validate:"required"`
	Product         string  `json:"product" validate:"required"`
	CustomerName    string  `json:"customer_name"`
	CustomerCode    string  `json:"customer_code"`
	DeliveryAddress string  `json:"delivery_address"`
	DestinationCode string  `json:"destination_code"`
	Quantity        float64 `json:"quantity" validate:"gte=0"`
	QuantityUnit    string  `json:"quantity_unit"`
	Identifier      string  `json:"identifier"`
}

// BatchHeader is the carrier/loading preamble of a batch manifest.
type BatchHeader struct {
	CarrierName     string `json:"carrier_name"`
	CarrierVATID    string `json:"carrier_vat_id"`
	CarrierAddress  string `json:"carrier_address"`
	LoadingDate     string `json:"loading_date"`
	LoadingLocation string `json:"loading_location"`
	LoadingStatus   string `json:"loading_status"`
	DriverName      string `json:"driver_name"`
	DriverCode      string `json:"driver_code"`
	TractorPlate    string `json:"tractor_plate"`
	TrailerPlate    string `json:"trailer_plate"`
	TankContainerID string `json:"tank_container_id"`
	BatchReference  string `json:"batch_reference"`
}

// Diagnostic records a malformed section that was dropped instead of aborting the batch.
type Diagnostic struct {
	Segment int    `json:"segment"`
	OrderID string `json:"order_id,omitempty"`
	Message string `json:"message"`
}

// BatchManifest is everything extracted from one multi-order manifest.
type BatchManifest struct {
	Header      BatchHeader   `json:"header"`
	Orders      []OrderRecord `json:"orders"`
	Diagnostics []Diagnostic  `json:"diagnostics,omitempty"`
}
