package ocr

import (
	"context"
	"time"
)

// TextSource turns a stored document into plain text. Image OCR and PDF rendering live
// outside this module; implementations only adapt them.
type TextSource interface {
	Extract(ctx context.Context, path string) (TextResult, error)
}

type TextResult struct {
	Text     string
	Pages    int
	Method   string // "pdf-text" | "plain"
	Duration time.Duration
	Warnings []string
}
