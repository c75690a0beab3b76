package main

import (
	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/fuel-docs/constants"
	"github.com/joseph-ayodele/fuel-docs/internal/core/batch"
	"github.com/joseph-ayodele/fuel-docs/internal/core/margin"
	"github.com/joseph-ayodele/fuel-docs/internal/entity"
)

var marginCmd = &cobra.Command{
	Use:   "margin INVOICE...",
	Short: "Build margin rows for purchase invoices, matching sales among the given files",
	Long: `Extracts every invoice, then builds one margin row per purchase invoice. Sale
prices come from sale invoices with the same date and shipment reference. OWN_VAT_ID
decides which invoices are purchases and which are sales.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		resolver, err := loadResolver()
		if err != nil {
			return err
		}
		outcomes := batch.NewRunner(newProcessor(),
			batch.WithDocumentTimeout(cfg.Batch.DocumentTimeout),
			batch.WithLogger(logger),
		).Run(cmd.Context(), documents(constants.KindInvoice, args))

		var invoices, purchases []entity.InvoiceRecord
		for _, o := range outcomes {
			if o.Result.Invoice == nil {
				continue
			}
			inv := *o.Result.Invoice
			invoices = append(invoices, inv)
			if inv.Direction != constants.Sale {
				purchases = append(purchases, inv)
			}
		}

		report := margin.NewReport(resolver, margin.NewSaleIndex(invoices), logger)
		rows := report.BuildRows(purchases)
		type printed struct {
			margin.Row
			Presented margin.Presented `json:"presented"`
		}
		out := make([]printed, len(rows))
		for i, r := range rows {
			out[i] = printed{Row: r, Presented: r.Presented()}
		}
		return printJSON(out)
	},
}
