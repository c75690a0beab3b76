package llm

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/joseph-ayodele/fuel-docs/constants"
	"github.com/joseph-ayodele/fuel-docs/internal/common"
	"github.com/joseph-ayodele/fuel-docs/internal/core/extract"
	"github.com/joseph-ayodele/fuel-docs/internal/entity"
)

// Decoder turns collaborator JSON into records. It applies the same rules as the text
// extractor: missing fields default to zero values, and a record without its mandatory
// identifying fields is not produced.
type Decoder struct {
	logger *slog.Logger
}

func NewDecoder(logger *slog.Logger) *Decoder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Decoder{logger: logger}
}

// sanitize coerces raw into the schema of kind and validates the result.
func (d *Decoder) sanitize(kind constants.DocumentKind, raw []byte) ([]byte, []Note, error) {
	schema := Schema(kind)
	if schema == nil {
		return nil, nil, common.NewAppError(common.CodeUnsupported, "no schema for "+string(kind), common.ErrInvalidInput)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, nil, common.NewAppError(common.CodeSchema, "decode "+string(kind)+" json", fmt.Errorf("%w: %v", common.ErrInvalidInput, err))
	}

	s := &sanitizer{}
	clean, ok := s.value("", doc, schema)
	if !ok {
		return nil, s.notes, common.NewAppError(common.CodeSchema, string(kind)+": top level is not an object", common.ErrInvalidInput)
	}
	if len(s.notes) > 0 {
		reasons := make([]string, len(s.notes))
		for i, n := range s.notes {
			reasons[i] = n.String()
		}
		d.logger.Warn("llm.decode.sanitized", "kind", string(kind), "notes", reasons)
	}

	m := clean.(map[string]any)
	if len(m) == 0 {
		return nil, s.notes, common.NoDataError(string(kind))
	}
	if missing := unmet(m, schema); len(missing) > 0 {
		d.logger.Warn("llm.decode.no_record", "kind", string(kind), "missing", missing)
		return nil, s.notes, common.NoRecordError(string(kind), missing)
	}

	out, err := json.Marshal(m)
	if err != nil {
		return nil, s.notes, fmt.Errorf("sanitize: encode: %w", err)
	}
	if err := ValidateJSON(kind, out); err != nil {
		return nil, s.notes, common.NewAppError(common.CodeSchema, string(kind), fmt.Errorf("%w: %v", common.ErrValidation, err))
	}
	return out, s.notes, nil
}

func decode[T any](d *Decoder, kind constants.DocumentKind, raw []byte) (T, []Note, error) {
	var rec T
	clean, notes, err := d.sanitize(kind, raw)
	if err != nil {
		return rec, notes, err
	}
	if err := json.Unmarshal(clean, &rec); err != nil {
		return rec, notes, fmt.Errorf("decode %s: %w", strings.ToLower(string(kind)), err)
	}
	return rec, notes, nil
}

func (d *Decoder) LoadingNote(raw []byte) (entity.LoadingNoteRecord, error) {
	rec, _, err := decode[entity.LoadingNoteRecord](d, constants.KindLoadingNote, raw)
	return rec, err
}

func (d *Decoder) FiscalManifest(raw []byte) (entity.FiscalManifestRecord, error) {
	rec, _, err := decode[entity.FiscalManifestRecord](d, constants.KindFiscalManifest, raw)
	return rec, err
}

// Invoice decodes an invoice. Transport details missing from the answer are derived from
// the fuel line, and a missing total is net plus tax.
func (d *Decoder) Invoice(raw []byte) (entity.InvoiceRecord, error) {
	rec, _, err := decode[entity.InvoiceRecord](d, constants.KindInvoice, raw)
	if err != nil {
		return rec, err
	}
	if rec.TransportDetails.ProductType == "" {
		rec.TransportDetails = extract.DeriveTransport(rec.TransportDetails, rec.Lines)
	}
	if rec.Amounts.Total == 0 {
		rec.Amounts.Total = rec.Amounts.Net + rec.Amounts.Tax
	}
	return rec, nil
}

// BatchManifest decodes a batch manifest. Orders dropped for missing mandatory fields
// are reported as diagnostics.
func (d *Decoder) BatchManifest(raw []byte) (entity.BatchManifest, error) {
	rec, notes, err := decode[entity.BatchManifest](d, constants.KindBatchManifest, raw)
	if err != nil {
		return rec, err
	}
	for _, n := range notes {
		if n.Item > 0 && strings.HasPrefix(n.Path, "orders[") {
			rec.Diagnostics = append(rec.Diagnostics, entity.Diagnostic{Segment: n.Item, Message: n.Reason})
		}
	}
	if len(rec.Orders) == 0 && rec.Header == (entity.BatchHeader{}) {
		return rec, common.NoDataError(string(constants.KindBatchManifest))
	}
	return rec, nil
}
