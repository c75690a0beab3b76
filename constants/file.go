package constants

import "strings"

// DocumentFormat is the wire shape a document arrives in.
type DocumentFormat string

const (
	TEXT  DocumentFormat = "TEXT"  // OCR / pdf-text output
	XML   DocumentFormat = "XML"   // national e-invoice
	JSON  DocumentFormat = "JSON"  // structured output of the LLM collaborator
	IMAGE DocumentFormat = "IMAGE" // scans, read by the LLM collaborator
)

// DocumentKind identifies the document family being extracted.
type DocumentKind string

const (
	KindBatchManifest  DocumentKind = "BATCH_MANIFEST"
	KindLoadingNote    DocumentKind = "LOADING_NOTE"
	KindFiscalManifest DocumentKind = "FISCAL_MANIFEST"
	KindInvoice        DocumentKind = "INVOICE"
)

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// MapExtToFormat maps a file extension to the format it is read as. Empty means unsupported.
func MapExtToFormat(ext string) DocumentFormat {
	switch NormalizeExt(ext) {
	case "txt", "text", "pdf":
		return TEXT
	case "xml":
		return XML
	case "json":
		return JSON
	case "jpg", "jpeg", "png", "tif", "tiff":
		return IMAGE
	default:
		return ""
	}
}

// ParseKind accepts the kind in any case, with '-' or '_' separators.
func ParseKind(s string) (DocumentKind, bool) {
	k := DocumentKind(strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", "_")))
	switch k {
	case KindBatchManifest, KindLoadingNote, KindFiscalManifest, KindInvoice:
		return k, true
	}
	return "", false
}
