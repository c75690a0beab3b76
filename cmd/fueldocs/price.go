package main

import (
	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/fuel-docs/internal/core/pricing"
	"github.com/joseph-ayodele/fuel-docs/internal/entity"
)

var priceQuery pricing.Query

var priceCmd = &cobra.Command{
	Use:   "price --supplier S --product P --base B --date D",
	Short: "Resolve a reference price and the benchmark from the price table",
	RunE: func(cmd *cobra.Command, args []string) error {
		resolver, err := loadResolver()
		if err != nil {
			return err
		}
		return printJSON(struct {
			Price     entity.ResolvedPrice `json:"price"`
			Benchmark entity.ResolvedPrice `json:"benchmark"`
		}{resolver.Resolve(priceQuery), resolver.Benchmark(priceQuery.Date)})
	},
}

func init() {
	f := priceCmd.Flags()
	f.StringVar(&priceQuery.Supplier, "supplier", "", "supplier name as written on the invoice")
	f.StringVar(&priceQuery.Product, "product", "", "product description")
	f.StringVar(&priceQuery.Base, "base", "", "loading base")
	f.StringVar(&priceQuery.Date, "date", "", "date, YYYY-MM-DD or DD/MM/YYYY")
	for _, name := range []string{"supplier", "product", "base", "date"} {
		_ = priceCmd.MarkFlagRequired(name)
	}
}
