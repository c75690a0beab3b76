package llm

import "github.com/joseph-ayodele/fuel-docs/constants"

// isoDatePattern marks date properties; the sanitizer normalizes their values.
const isoDatePattern = `^\d{4}-\d{2}-\d{2}$`

// Schema returns the JSON-Schema (draft 2020-12 subset) the collaborator must answer
// with for kind, or nil for an unknown kind. It is sent along with the request and
// used locally to validate the answer.
func Schema(kind constants.DocumentKind) map[string]any {
	switch kind {
	case constants.KindBatchManifest:
		return batchManifestSchema()
	case constants.KindLoadingNote:
		return loadingNoteSchema()
	case constants.KindFiscalManifest:
		return fiscalManifestSchema()
	case constants.KindInvoice:
		return invoiceSchema()
	}
	return nil
}

func batchManifestSchema() map[string]any {
	header := object(map[string]any{
		"carrier_name":      str(),
		"carrier_vat_id":    str(),
		"carrier_address":   str(),
		"loading_date":      date(),
		"loading_location":  str(),
		"loading_status":    str(),
		"driver_name":       str(),
		"driver_code":       str(),
		"tractor_plate":     str(),
		"trailer_plate":     str(),
		"tank_container_id": str(),
		"batch_reference":   str(),
	})
	order := object(map[string]any{
		"order_number":     str(),
		"product":          str(),
		"customer_name":    str(),
		"customer_code":    str(),
		"delivery_address": str(),
		"destination_code": str(),
		"quantity":         num(),
		"quantity_unit":    str(),
		"identifier":       str(),
	}, "order_number", "product")
	return object(map[string]any{
		"header": header,
		"orders": array(order),
	})
}

func loadingNoteSchema() map[string]any {
	return object(map[string]any{
		"document_number":     str(),
		"loading_date":        date(),
		"carrier_name":        str(),
		"shipper_name":        str(),
		"consignee_name":      str(),
		"product_description": str(),
		"gross_weight_kg":     num(),
		"net_weight_kg":       num(),
		"volume_liters":       num(),
		"notes":               str(),
	})
}

func fiscalManifestSchema() map[string]any {
	party := func() map[string]any {
		return object(map[string]any{"name": str(), "code": str(), "address": str()})
	}
	return object(map[string]any{
		"document_info": object(map[string]any{
			"manifest_id":   str(),
			"version":       str(),
			"issue_date":    date(),
			"shipment_date": date(),
		}),
		"sender_info":    party(),
		"depositor_info": party(),
		"recipient_info": party(),
		"transport_info": object(map[string]any{
			"carrier_name": str(),
			"driver_name":  str(),
			"vehicle_id":   str(),
		}),
		"product_info": object(map[string]any{
			"code":                  str(),
			"description":           str(),
			"net_weight_kg":         num(),
			"volume_ambient_liters": num(),
			"volume_15c_liters":     num(),
			"density_ambient":       num(),
			"density_15c":           num(),
		}),
	})
}

func invoiceSchema() map[string]any {
	party := func() map[string]any {
		return object(map[string]any{"name": str(), "tax_id": str(), "address": str()})
	}
	line := object(map[string]any{
		"line_number":     map[string]any{"type": "integer", "minimum": 1},
		"product_code":    str(),
		"description":     str(),
		"quantity":        map[string]any{"type": "number", "exclusiveMinimum": 0},
		"unit_of_measure": str(),
		"unit_value":      num(),
		"total_value":     num(),
		"vat_rate":        num(),
		"extra_data":      str(),
	}, "line_number", "description", "quantity")
	return object(map[string]any{
		"invoice_number": str(),
		"date":           date(),
		"issuer":         party(),
		"client":         party(),
		"amounts": object(map[string]any{
			"net":   num(),
			"tax":   num(),
			"total": num(),
		}),
		"transport_details": object(map[string]any{
			"product_type":     str(),
			"quantity":         num(),
			"unit_price":       num(),
			"reference_number": str(),
			"delivery_address": str(),
			"unit_of_measure":  str(),
		}),
		"lines": array(line),
	}, "invoice_number", "date")
}

func object(props map[string]any, required ...string) map[string]any {
	m := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           props,
	}
	if len(required) > 0 {
		m["required"] = required
	}
	return m
}

func array(items map[string]any) map[string]any {
	return map[string]any{"type": "array", "items": items}
}

func str() map[string]any { return map[string]any{"type": "string", "minLength": 1} }
func date() map[string]any { return map[string]any{"type": "string", "pattern": isoDatePattern} }
func num() map[string]any { return map[string]any{"type": "number", "minimum": 0} }
