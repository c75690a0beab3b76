package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joseph-ayodele/fuel-docs/constants"
)

// Config selects the pdf-text binary. Raster OCR is a separate service and not configured here.
type Config struct {
	Pdftotext string // binary name or absolute path; if empty -> "pdftotext"
}

// FileSource reads .txt files directly and asks pdftotext for the text layer of PDFs.
// Output is always passed through Normalize.
type FileSource struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewFileSource(cfg Config, logger *slog.Logger) *FileSource {
	return newFileSource(cfg, execRunner{}, logger)
}

func newFileSource(cfg Config, r Runner, logger *slog.Logger) *FileSource {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pdftotext == "" {
		cfg.Pdftotext = "pdftotext"
	}
	return &FileSource{cfg: cfg, runner: r, logger: logger}
}

func (s *FileSource) Extract(ctx context.Context, path string) (TextResult, error) {
	start := time.Now()
	ext := constants.NormalizeExt(filepath.Ext(path))
	switch {
	case ext == "pdf":
		// pdftotext -layout -enc UTF-8 -eol unix <path> -
		out, errb, err := s.runner.Run(ctx, s.cfg.Pdftotext, s.logger, "-layout", "-enc", "UTF-8", "-eol", "unix", path, "-")
		if err != nil {
			return TextResult{Method: "pdf-text", Warnings: []string{string(errb)}}, fmt.Errorf("pdftotext: %w", err)
		}
		text := string(out)
		res := TextResult{
			Text:     Normalize(text),
			Pages:    1 + strings.Count(text, "\f"),
			Method:   "pdf-text",
			Duration: time.Since(start),
		}
		if strings.TrimSpace(res.Text) == "" {
			res.Warnings = append(res.Warnings, "pdf has no text layer; send it through OCR first")
		}
		s.logger.Debug("ocr.pdf.extracted", "path", path, "pages", res.Pages, "chars", len(res.Text))
		return res, nil
	case constants.MapExtToFormat(ext) == constants.TEXT:
		b, err := os.ReadFile(path)
		if err != nil {
			return TextResult{}, err
		}
		return TextResult{Text: Normalize(string(b)), Pages: 1, Method: "plain", Duration: time.Since(start)}, nil
	default:
		s.logger.Error("ocr.source.unsupported", "extension", ext)
		return TextResult{}, fmt.Errorf("unsupported extension: %q", ext)
	}
}
