// Package llm is the boundary to the structured-extraction collaborator: a service that
// reads a document (text or image) and answers with JSON shaped by the schemas in this
// package. The JSON is sanitized and validated here before it becomes a record.
package llm

import (
	"context"

	"github.com/joseph-ayodele/fuel-docs/constants"
)

// Request is one document handed to the collaborator.
type Request struct {
	Kind      constants.DocumentKind
	Text      string // OCR or pdf-text output, may be empty when ImagePath is set
	ImagePath string // optional scan to attach
	Filename  string // hint only
}

// StructuredExtractor is the collaborator contract. Implementations return the raw JSON
// document as produced; callers pass it through a Decoder.
type StructuredExtractor interface {
	ExtractJSON(ctx context.Context, req Request) ([]byte, error)
}
