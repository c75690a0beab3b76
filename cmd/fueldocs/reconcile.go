package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/fuel-docs/constants"
	"github.com/joseph-ayodele/fuel-docs/internal/core"
	"github.com/joseph-ayodele/fuel-docs/internal/core/reconcile"
	"github.com/joseph-ayodele/fuel-docs/internal/entity"
)

var reconcileCmd = &cobra.Command{
	Use:   "reconcile MANIFEST NOTE",
	Short: "Compare a fiscal manifest with a loading note",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		policy := reconcile.PolicyFromConfig(cfg.Reconcile)
		if err := policy.Validate(); err != nil {
			return err
		}
		proc := newProcessor()
		manifest, err := proc.Process(cmd.Context(), core.Document{Kind: constants.KindFiscalManifest, Path: args[0]})
		if err != nil {
			return fmt.Errorf("fiscal manifest: %w", err)
		}
		note, err := proc.Process(cmd.Context(), core.Document{Kind: constants.KindLoadingNote, Path: args[1]})
		if err != nil {
			return fmt.Errorf("loading note: %w", err)
		}

		results := reconcile.Reconcile(*manifest.FiscalManifest, *note.LoadingNote, policy)
		summary := reconcile.Summarize(results)
		logger.Info("reconcile.done", "info", summary.Info, "warnings", summary.Warnings, "errors", summary.Errors)
		return printJSON(struct {
			Results []entity.ValidationResult `json:"results"`
			Summary reconcile.Summary         `json:"summary"`
		}{results, summary})
	},
}
