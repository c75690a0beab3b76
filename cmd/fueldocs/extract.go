package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/fuel-docs/constants"
	"github.com/joseph-ayodele/fuel-docs/internal/core"
	"github.com/joseph-ayodele/fuel-docs/internal/core/batch"
	"github.com/joseph-ayodele/fuel-docs/internal/core/llm"
	"github.com/joseph-ayodele/fuel-docs/internal/core/ocr"
	"github.com/joseph-ayodele/fuel-docs/internal/ingest"
)

var (
	extractKind string
	extractDir  string
	pdftotext   string
)

// extractOutcome is the printed form of a batch outcome.
type extractOutcome struct {
	ID     string                  `json:"id"`
	Path   string                  `json:"path"`
	Status constants.OutcomeStatus `json:"status"`
	Error  string                  `json:"error,omitempty"`
	Record any                     `json:"record,omitempty"`
}

var extractCmd = &cobra.Command{
	Use:   "extract --kind KIND [--dir DIR] [FILE...]",
	Short: "Extract records from text, PDF, XML, JSON or image files",
	Long: `Runs every file through the extractor for KIND (batch-manifest, loading-note,
fiscal-manifest or invoice). The format follows the file extension. Images need
LLM_EXTRACT_URL. A failing file is reported and the others still run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, ok := constants.ParseKind(extractKind)
		if !ok {
			return fmt.Errorf("unknown --kind %q", extractKind)
		}
		docs := documents(kind, args)
		if extractDir != "" {
			found, stats, err := ingest.ScanDirectory(extractDir, kind, ingest.Options{SkipHidden: true})
			if err != nil {
				return err
			}
			logger.Info("extract.dir.scanned", "dir", extractDir, "scanned", stats.Scanned, "matched", stats.Matched, "skipped", stats.Skipped)
			docs = append(docs, found...)
		}
		if len(docs) == 0 {
			return fmt.Errorf("no documents: pass files or --dir")
		}
		outcomes := batch.NewRunner(newProcessor(),
			batch.WithDocumentTimeout(cfg.Batch.DocumentTimeout),
			batch.WithLogger(logger),
		).Run(cmd.Context(), docs)

		printed := make([]extractOutcome, len(outcomes))
		for i, o := range outcomes {
			printed[i] = extractOutcome{ID: o.ID, Path: o.Document.Path, Status: o.Status, Record: o.Result.Record()}
			if o.Err != nil {
				printed[i].Error = o.Err.Error()
			}
		}
		return printJSON(printed)
	},
}

func init() {
	extractCmd.Flags().StringVarP(&extractKind, "kind", "k", "", "document kind")
	extractCmd.Flags().StringVar(&extractDir, "dir", "", "also extract every readable file under this directory")
	extractCmd.Flags().StringVar(&pdftotext, "pdftotext", "", "pdftotext binary (default from PATH)")
	_ = extractCmd.MarkFlagRequired("kind")
}

func newProcessor() *core.Processor {
	var structured llm.StructuredExtractor
	if cfg.LLM.URL != "" {
		structured = llm.NewHTTPExtractor(cfg.LLM, logger)
	}
	text := ocr.NewFileSource(ocr.Config{Pdftotext: pdftotext}, logger)
	return core.NewProcessor(logger, text, structured, cfg.OwnVATID)
}

func documents(kind constants.DocumentKind, paths []string) []core.Document {
	docs := make([]core.Document, 0, len(paths))
	for _, p := range paths {
		docs = append(docs, core.Document{Kind: kind, Path: filepath.Clean(p)})
	}
	return docs
}
