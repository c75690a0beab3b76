// Package core wires the producers together: it reads one document in whatever format it
// arrives and hands it to the extractor or decoder for its kind.
package core

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joseph-ayodele/fuel-docs/constants"
	"github.com/joseph-ayodele/fuel-docs/internal/common"
	"github.com/joseph-ayodele/fuel-docs/internal/core/extract"
	"github.com/joseph-ayodele/fuel-docs/internal/core/llm"
	"github.com/joseph-ayodele/fuel-docs/internal/core/ocr"
	"github.com/joseph-ayodele/fuel-docs/internal/entity"
)

// Document is one input. Data, when set, is used instead of reading Path.
type Document struct {
	Kind   constants.DocumentKind
	Path   string
	Format constants.DocumentFormat // empty -> derived from the Path extension
	Data   []byte
}

// Result holds the record produced for a document; exactly one pointer is set.
type Result struct {
	Kind           constants.DocumentKind
	Format         constants.DocumentFormat
	BatchManifest  *entity.BatchManifest
	LoadingNote    *entity.LoadingNoteRecord
	FiscalManifest *entity.FiscalManifestRecord
	Invoice        *entity.InvoiceRecord
}

// Record returns the produced record, or nil.
func (r Result) Record() any {
	switch {
	case r.BatchManifest != nil:
		return r.BatchManifest
	case r.LoadingNote != nil:
		return r.LoadingNote
	case r.FiscalManifest != nil:
		return r.FiscalManifest
	case r.Invoice != nil:
		return r.Invoice
	}
	return nil
}

// Processor dispatches documents by (kind, format).
type Processor struct {
	logger     *slog.Logger
	text       ocr.TextSource
	structured llm.StructuredExtractor
	extractor  *extract.Extractor
	decoder    *llm.Decoder
	ownVATID   string
}

// NewProcessor builds a processor. text may be nil when documents arrive with Data set;
// structured may be nil, in which case image documents are rejected.
func NewProcessor(logger *slog.Logger, text ocr.TextSource, structured llm.StructuredExtractor, ownVATID string) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		logger:     logger,
		text:       text,
		structured: structured,
		extractor:  extract.New(logger),
		decoder:    llm.NewDecoder(logger),
		ownVATID:   ownVATID,
	}
}

func (p *Processor) Process(ctx context.Context, doc Document) (Result, error) {
	format := doc.Format
	if format == "" {
		format = constants.MapExtToFormat(filepath.Ext(doc.Path))
	}
	res := Result{Kind: doc.Kind, Format: format}
	logger := p.logger.With("kind", string(doc.Kind), "format", string(format), "path", doc.Path)
	if id := common.DocumentIDFromContext(ctx); id != "" {
		logger = logger.With("doc_id", id)
	}

	if err := ctx.Err(); err != nil {
		return res, err
	}

	var err error
	switch format {
	case constants.TEXT:
		var text string
		if text, err = p.readText(ctx, doc); err == nil {
			err = p.fromText(&res, text)
		}
	case constants.XML:
		var data []byte
		if data, err = readData(doc); err == nil {
			err = p.fromXML(&res, string(data))
		}
	case constants.JSON:
		var data []byte
		if data, err = readData(doc); err == nil {
			err = p.fromJSON(&res, data)
		}
	case constants.IMAGE:
		err = p.fromImage(ctx, &res, doc)
	default:
		err = common.NewAppError(common.CodeUnsupported, fmt.Sprintf("unsupported format %q for %s", format, doc.Path), common.ErrInvalidInput)
	}
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		logger.Warn("processor.document.failed", "error", err)
		return res, err
	}

	if res.Invoice != nil {
		res.Invoice.Direction = Direction(*res.Invoice, p.ownVATID)
	}
	logger.Debug("processor.document.done")
	return res, nil
}

func (p *Processor) readText(ctx context.Context, doc Document) (string, error) {
	if doc.Data != nil {
		return ocr.Normalize(string(doc.Data)), nil
	}
	if p.text == nil {
		return "", common.NewAppError(common.CodeUnsupported, "no text source configured", common.ErrInvalidInput)
	}
	tr, err := p.text.Extract(ctx, doc.Path)
	if err != nil {
		return "", fmt.Errorf("read text: %w", err)
	}
	for _, w := range tr.Warnings {
		p.logger.Warn("processor.text.warning", "path", doc.Path, "warning", w)
	}
	return tr.Text, nil
}

func readData(doc Document) ([]byte, error) {
	if doc.Data != nil {
		return doc.Data, nil
	}
	b, err := os.ReadFile(doc.Path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", doc.Path, err)
	}
	return b, nil
}

func (p *Processor) fromText(res *Result, text string) error {
	switch res.Kind {
	case constants.KindBatchManifest:
		rec, err := p.extractor.BatchManifest(text)
		if err != nil {
			return err
		}
		res.BatchManifest = &rec
	case constants.KindLoadingNote:
		rec, err := p.extractor.LoadingNote(text)
		if err != nil {
			return err
		}
		res.LoadingNote = &rec
	case constants.KindFiscalManifest:
		rec, err := p.extractor.FiscalManifest(text)
		if err != nil {
			return err
		}
		res.FiscalManifest = &rec
	case constants.KindInvoice:
		rec, err := p.extractor.InvoiceText(text)
		if err != nil {
			return err
		}
		res.Invoice = &rec
	default:
		return unsupportedKind(res.Kind, constants.TEXT)
	}
	return nil
}

// fromXML reads national e-invoices; no other kind has an XML layout.
func (p *Processor) fromXML(res *Result, doc string) error {
	if res.Kind != constants.KindInvoice {
		return unsupportedKind(res.Kind, constants.XML)
	}
	rec, err := p.extractor.InvoiceXML(doc)
	if err != nil {
		return err
	}
	res.Invoice = &rec
	return nil
}

func (p *Processor) fromJSON(res *Result, data []byte) error {
	switch res.Kind {
	case constants.KindBatchManifest:
		rec, err := p.decoder.BatchManifest(data)
		if err != nil {
			return err
		}
		res.BatchManifest = &rec
	case constants.KindLoadingNote:
		rec, err := p.decoder.LoadingNote(data)
		if err != nil {
			return err
		}
		res.LoadingNote = &rec
	case constants.KindFiscalManifest:
		rec, err := p.decoder.FiscalManifest(data)
		if err != nil {
			return err
		}
		res.FiscalManifest = &rec
	case constants.KindInvoice:
		rec, err := p.decoder.Invoice(data)
		if err != nil {
			return err
		}
		res.Invoice = &rec
	default:
		return unsupportedKind(res.Kind, constants.JSON)
	}
	return nil
}

func (p *Processor) fromImage(ctx context.Context, res *Result, doc Document) error {
	if p.structured == nil {
		return common.NewAppError(common.CodeUnsupported, "images need a structured extractor", common.ErrInvalidInput)
	}
	raw, err := p.structured.ExtractJSON(ctx, llm.Request{
		Kind:      doc.Kind,
		ImagePath: doc.Path,
		Filename:  filepath.Base(doc.Path),
	})
	if err != nil {
		return err
	}
	return p.fromJSON(res, raw)
}

func unsupportedKind(kind constants.DocumentKind, format constants.DocumentFormat) error {
	return common.NewAppError(common.CodeUnsupported, fmt.Sprintf("kind %q cannot be read from %s", kind, format), common.ErrInvalidInput)
}

// Direction tells whether inv was issued by the own company (a sale) or received by it (a
// purchase). It is empty when ownVATID is unset or matches neither party.
func Direction(inv entity.InvoiceRecord, ownVATID string) constants.TradeDirection {
	own := vatKey(ownVATID)
	if own == "" {
		return ""
	}
	switch own {
	case vatKey(inv.Issuer.TaxID):
		return constants.Sale
	case vatKey(inv.Client.TaxID):
		return constants.Purchase
	}
	return ""
}

// vatKey drops spaces and a leading two-letter country code.
func vatKey(id string) string {
	k := strings.ToUpper(strings.Join(strings.Fields(id), ""))
	if len(k) > 2 && k[0] >= 'A' && k[0] <= 'Z' && k[1] >= 'A' && k[1] <= 'Z' && k[2] >= '0' && k[2] <= '9' {
		k = k[2:]
	}
	return k
}
