// Command fueldocs is the developer harness for the document engine: it extracts records
// from files, reconciles a fiscal manifest against a loading note, resolves prices and
// builds margin rows. Results are printed as JSON on stdout, logs go to stderr.
package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/fuel-docs/internal/common"
	"github.com/joseph-ayodele/fuel-docs/internal/core/pricing"
)

var (
	cfg     *common.Config
	logger  *slog.Logger
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:           "fueldocs",
	Short:         "Extract, reconcile and price fuel shipment documents",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = common.LoadConfig()
		if err := cfg.Validate(); err != nil {
			return err
		}
		level := cfg.LogLevel
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.AddCommand(extractCmd, reconcileCmd, priceCmd, marginCmd)
}

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// loadResolver opens the configured price table and catalog.
func loadResolver() (*pricing.Resolver, error) {
	if cfg.Pricing.TablePath == "" {
		return nil, common.NewAppError(common.CodeConfig, "PRICE_TABLE_PATH is not set", common.ErrInvalidInput)
	}
	table, err := pricing.OpenXLSX(cfg.Pricing.TablePath, cfg.Pricing.Sheet)
	if err != nil {
		return nil, err
	}
	catalog, err := pricing.LoadCatalog(cfg.Pricing.CatalogPath)
	if err != nil {
		return nil, err
	}
	logger.Info("pricing.table.loaded", "path", cfg.Pricing.TablePath, "rows", table.Len(), "columns", len(table.Labels()))
	return pricing.NewResolver(table, catalog, pricing.OptionsFromConfig(cfg.Pricing), logger), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		printError("Error: %v\n", err)
		os.Exit(1)
	}
}
