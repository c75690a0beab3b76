// Package extract turns normalized document text and e-invoice XML into typed records
// using declarative rule tables.
package extract

import (
	"log/slog"
	"strings"

	"github.com/joseph-ayodele/fuel-docs/internal/common"
	"github.com/joseph-ayodele/fuel-docs/internal/core/ocr"
	"github.com/joseph-ayodele/fuel-docs/internal/core/segment"
	"github.com/joseph-ayodele/fuel-docs/internal/entity"
)

// Extractor produces records from document text. It holds no per-document state and is
// safe for concurrent use.
type Extractor struct {
	logger *slog.Logger
}

func New(logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{logger: logger}
}

// BatchHeader reads the carrier preamble of a batch manifest.
func (e *Extractor) BatchHeader(text string) entity.BatchHeader {
	f := Apply(BatchHeaderSchema, ocr.Normalize(text))
	return entity.BatchHeader{
		CarrierName:     f.String(fieldCarrierName),
		CarrierVATID:    f.String(fieldCarrierVATID),
		CarrierAddress:  f.String(fieldCarrierAddress),
		LoadingDate:     f.String(fieldLoadingDate),
		LoadingLocation: f.String(fieldLoadingLocation),
		LoadingStatus:   f.String(fieldLoadingStatus),
		DriverName:      f.String(fieldDriverName),
		DriverCode:      f.String(fieldDriverCode),
		TractorPlate:    f.String(fieldTractorPlate),
		TrailerPlate:    f.String(fieldTrailerPlate),
		TankContainerID: f.String(fieldTankContainer),
		BatchReference:  f.String(fieldBatchReference),
	}
}

// OrderLine reads one order segment. It returns ErrNoRecord when the order number or the
// product is missing.
func (e *Extractor) OrderLine(text string) (entity.OrderRecord, error) {
	text = ocr.Normalize(text)
	if text == "" {
		return entity.OrderRecord{}, common.NoDataError(OrderLineSchema.Name)
	}
	f := Apply(OrderLineSchema, text)
	rec := entity.OrderRecord{
		OrderNumber:     f.String(fieldOrderNumber),
		Product:         f.String(fieldProduct),
		CustomerName:    f.String(fieldCustomerName),
		CustomerCode:    f.String(fieldCustomerCode),
		DeliveryAddress: f.String(fieldDeliveryAddress),
		DestinationCode: f.String(fieldDestinationCode),
		Quantity:        f.Number(fieldQuantity),
		QuantityUnit:    f.String(fieldQuantityUnit),
		Identifier:      f.String(fieldIdentifier),
	}
	if missing := common.MissingRequired(rec); len(missing) > 0 {
		return entity.OrderRecord{}, common.NoRecordError(OrderLineSchema.Name, missing)
	}
	return rec, nil
}

// BatchManifest segments a multi-order manifest and reads its header and every order.
// Malformed sections are dropped with a diagnostic instead of failing the batch.
func (e *Extractor) BatchManifest(text string) (entity.BatchManifest, error) {
	text = ocr.Normalize(text)
	if text == "" {
		return entity.BatchManifest{}, common.NoDataError("batch_manifest")
	}
	split := segment.Split(text)
	out := entity.BatchManifest{
		Header:      e.BatchHeader(split.Header),
		Orders:      make([]entity.OrderRecord, 0, len(split.Segments)),
		Diagnostics: split.Diagnostics,
	}
	for _, seg := range split.Segments {
		rec, err := e.OrderLine(seg.Text)
		if err != nil {
			e.logger.Warn("extract.batch.segment_dropped", "segment", seg.Index, "order_id", seg.OrderID, "error", err)
			out.Diagnostics = append(out.Diagnostics, entity.Diagnostic{Segment: seg.Index, OrderID: seg.OrderID, Message: err.Error()})
			continue
		}
		out.Orders = append(out.Orders, rec)
	}
	if len(out.Orders) == 0 && out.Header == (entity.BatchHeader{}) {
		return entity.BatchManifest{}, common.NoDataError("batch_manifest")
	}
	e.logger.Info("extract.batch.done", "orders", len(out.Orders), "dropped", len(out.Diagnostics))
	return out, nil
}

// LoadingNote reads a carrier loading note. It returns ErrNoData when nothing is recognized.
func (e *Extractor) LoadingNote(text string) (entity.LoadingNoteRecord, error) {
	f := Apply(LoadingNoteSchema, ocr.Normalize(text))
	if f.Empty() {
		return entity.LoadingNoteRecord{}, common.NoDataError(LoadingNoteSchema.Name)
	}
	return entity.LoadingNoteRecord{
		DocumentNumber:     f.String(fieldDocumentNumber),
		LoadingDate:        f.String(fieldLoadingDate),
		CarrierName:        f.String(fieldCarrierName),
		ShipperName:        f.String(fieldShipperName),
		ConsigneeName:      f.String(fieldConsigneeName),
		ProductDescription: f.String(fieldProductDesc),
		GrossWeightKg:      f.Number(fieldGrossWeight),
		NetWeightKg:        f.Number(fieldNetWeight),
		VolumeLiters:       f.Number(fieldVolume),
		Notes:              f.String(fieldNotes),
	}, nil
}

// FiscalManifest reads the excise manifest. It returns ErrNoData when nothing is recognized.
func (e *Extractor) FiscalManifest(text string) (entity.FiscalManifestRecord, error) {
	f := Apply(FiscalManifestSchema, ocr.Normalize(text))
	if f.Empty() {
		return entity.FiscalManifestRecord{}, common.NoDataError(FiscalManifestSchema.Name)
	}
	return entity.FiscalManifestRecord{
		DocumentInfo: entity.ManifestDocumentInfo{
			ManifestID:   f.String(fieldManifestID),
			Version:      f.String(fieldVersion),
			IssueDate:    f.String(fieldIssueDate),
			ShipmentDate: f.String(fieldShipmentDate),
		},
		SenderInfo:    entity.Party{Name: f.String(fieldSenderName), Code: f.String(fieldSenderCode), Address: f.String(fieldSenderAddress)},
		DepositorInfo: entity.Party{Name: f.String(fieldDepositorName), Code: f.String(fieldDepositorCode), Address: f.String(fieldDepositorAddr)},
		RecipientInfo: entity.Party{Name: f.String(fieldRecipientName), Code: f.String(fieldRecipientCode), Address: f.String(fieldRecipientAddr)},
		TransportInfo: entity.ManifestTransportInfo{
			CarrierName: f.String(fieldTransportName),
			DriverName:  f.String(fieldTransportDriver),
			VehicleID:   f.String(fieldTransportPlate),
		},
		ProductInfo: entity.ManifestProductInfo{
			Code:                f.String(fieldProductCode),
			Description:         f.String(fieldProductDescr),
			NetWeightKg:         f.Number(fieldProductNet),
			VolumeAmbientLiters: f.Number(fieldVolumeAmbient),
			Volume15CLiters:     f.Number(fieldVolume15C),
			DensityAmbient:      f.Number(fieldDensityAmbient),
			Density15C:          f.Number(fieldDensity15C),
		},
	}, nil
}

// Invoice reads an e-invoice in either form, choosing by content.
func (e *Extractor) Invoice(doc string) (entity.InvoiceRecord, error) {
	if looksLikeXML(doc) {
		return e.InvoiceXML(doc)
	}
	return e.InvoiceText(doc)
}

// InvoiceText reads the text rendering of an e-invoice.
func (e *Extractor) InvoiceText(text string) (entity.InvoiceRecord, error) {
	text = ocr.Normalize(text)
	if text == "" {
		return entity.InvoiceRecord{}, common.NoDataError(InvoiceFromTextSchema.Name)
	}
	f := Apply(InvoiceFromTextSchema, text)

	var lines []entity.InvoiceLine
	for _, b := range textBlocks(text) {
		lf := Apply(TextLineSchema, b.Text)
		lf[fieldLineNumber] = formatNumber(float64(b.Number))
		lines = e.keepLine(lines, toLine(lf))
	}
	return e.invoice(InvoiceFromTextSchema, f, lines)
}

// InvoiceXML reads a FatturaPA document by element scoping.
func (e *Extractor) InvoiceXML(doc string) (entity.InvoiceRecord, error) {
	if !strings.Contains(doc, "DatiGeneraliDocumento") && !strings.Contains(doc, "FatturaElettronicaBody") {
		return entity.InvoiceRecord{}, common.NoDataError(InvoiceFromXMLSchema.Name)
	}
	f := Apply(InvoiceFromXMLSchema, doc)

	var lines []entity.InvoiceLine
	for _, b := range blocks(doc, "DettaglioLinee") {
		lines = e.keepLine(lines, toLine(Apply(XMLLineSchema, b)))
	}
	if f.String(fieldTotal) == "" && (f.Number(fieldNet) > 0 || f.Number(fieldTax) > 0) {
		f[fieldTotal] = formatNumber(f.Number(fieldNet) + f.Number(fieldTax))
	}
	return e.invoice(InvoiceFromXMLSchema, f, lines)
}

func (e *Extractor) invoice(s Schema, f Fields, lines []entity.InvoiceLine) (entity.InvoiceRecord, error) {
	if f.Empty() && len(lines) == 0 {
		return entity.InvoiceRecord{}, common.NoDataError(s.Name)
	}
	if missing := s.Missing(f); len(missing) > 0 {
		e.logger.Warn("extract.invoice.no_record", "schema", s.Name, "missing", missing)
		return entity.InvoiceRecord{}, common.NoRecordError(s.Name, missing)
	}
	rec := entity.InvoiceRecord{
		InvoiceNumber: f.String(fieldInvoiceNumber),
		Date:          f.String(fieldDate),
		Issuer:        entity.InvoiceParty{Name: f.String(fieldIssuerName), TaxID: f.String(fieldIssuerTaxID), Address: f.String(fieldIssuerAddress)},
		Client:        entity.InvoiceParty{Name: f.String(fieldClientName), TaxID: f.String(fieldClientTaxID), Address: f.String(fieldClientAddress)},
		Amounts: entity.InvoiceAmounts{
			Net:   f.Number(fieldNet),
			Tax:   f.Number(fieldTax),
			Total: f.Number(fieldTotal),
		},
		TransportDetails: transportDetails(f, lines),
		Lines:            lines,
	}
	e.logger.Debug("extract.invoice.done", "schema", s.Name, "number", rec.InvoiceNumber, "lines", len(lines))
	return rec, nil
}

func toLine(f Fields) entity.InvoiceLine {
	return entity.InvoiceLine{
		LineNumber:    f.Int(fieldLineNumber),
		ProductCode:   f.String(fieldLineCode),
		Description:   f.String(fieldLineDesc),
		Quantity:      f.Number(fieldLineQty),
		UnitOfMeasure: f.String(fieldLineUoM),
		UnitValue:     f.Number(fieldLineUnit),
		TotalValue:    f.Number(fieldLineTotal),
		VATRate:       f.Number(fieldLineVATRate),
		ExtraData:     f.String(fieldLineExtra),
	}
}

// keepLine appends l only when it has a number, a description and a quantity.
func (e *Extractor) keepLine(lines []entity.InvoiceLine, l entity.InvoiceLine) []entity.InvoiceLine {
	if l.LineNumber <= 0 || strings.TrimSpace(l.Description) == "" || l.Quantity <= 0 {
		e.logger.Debug("extract.invoice.line_skipped", "line", l.LineNumber, "description", l.Description)
		return lines
	}
	return append(lines, l)
}
