package constants

// ProductType is the canonical commodity a price series refers to.
type ProductType string

const (
	Diesel     ProductType = "DIESEL"      // road diesel, "gasolio autotrazione"
	Gasoline   ProductType = "GASOLINE"    // "benzina"
	AgriDiesel ProductType = "AGRI_DIESEL" // agricultural diesel, "gasolio agricolo"
	HVO        ProductType = "HVO"         // hydrotreated vegetable oil
)

var allProductTypes = []ProductType{Diesel, Gasoline, AgriDiesel, HVO}

// ProductTypes lists every canonical product type.
func ProductTypes() []ProductType {
	out := make([]ProductType, len(allProductTypes))
	copy(out, allProductTypes)
	return out
}
