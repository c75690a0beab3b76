package entity

// LoadingNoteRecord is the carrier's record of what was physically loaded.
type LoadingNoteRecord struct {
	DocumentNumber     string  `json:"document_number"`
	LoadingDate        string  `json:"loading_date"`
	CarrierName        string  `json:"carrier_name"`
	ShipperName        string  `json:"shipper_name"`
	ConsigneeName      string  `json:"consignee_name"`
	ProductDescription string  `json:"product_description"`
	GrossWeightKg      float64 `json:"gross_weight_kg" validate:"gte=0"`
	NetWeightKg        float64 `json:"net_weight_kg" validate:"gte=0"`
	VolumeLiters       float64 `json:"volume_liters" validate:"gte=0"`
	Notes              string  `json:"notes"`
}

// FiscalManifestRecord is the excise shipping document accompanying the load.
type FiscalManifestRecord struct {
	DocumentInfo  ManifestDocumentInfo  `json:"document_info"`
	SenderInfo    Party                 `json:"sender_info"`
	DepositorInfo Party                 `json:"depositor_info"`
	RecipientInfo Party                 `json:"recipient_info"`
	TransportInfo ManifestTransportInfo `json:"transport_info"`
	ProductInfo   ManifestProductInfo   `json:"product_info"`
}

type ManifestDocumentInfo struct {
	ManifestID   string `json:"manifest_id"`
	Version      string `json:"version"`
	IssueDate    string `json:"issue_date"`
	ShipmentDate string `json:"shipment_date"`
}

type ManifestTransportInfo struct {
	CarrierName string `json:"carrier_name"`
	DriverName  string `json:"driver_name"`
	VehicleID   string `json:"vehicle_id"`
}

type ManifestProductInfo struct {
	Code                string  `json:"code"`
	Description         string  `json:"description"`
	NetWeightKg         float64 `json:"net_weight_kg" validate:"gte=0"`
	VolumeAmbientLiters float64 `json:"volume_ambient_liters" validate:"gte=0"`
	Volume15CLiters     float64 `json:"volume_15c_liters" validate:"gte=0"`
	DensityAmbient      float64 `json:"density_ambient" validate:"gte=0"`
	Density15C          float64 `json:"density_15c" validate:"gte=0"`
}

// Party is a named trading counterpart. Code holds the tax id or excise code.
type Party struct {
	Name    string `json:"name"`
	Code    string `json:"code"`
	Address string `json:"address"`
}
