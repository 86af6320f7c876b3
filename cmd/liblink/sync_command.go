package main

import (
	"github.com/spf13/cobra"

	"github.com/avitali/liblink/internal/service"
)

func newSyncCommand(ctx *commandContext) *cobra.Command {
	var force bool
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Reconcile the local catalog against the portable one",
		Long: "Scans both catalogs, plans the symlink changes needed to make the\n" +
			"local catalog reflect the portable one, and applies them. Real files\n" +
			"occupying a slot are reported as conflicts; --force replaces them\n" +
			"after confirmation.",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.newService()
			if err != nil {
				return err
			}
			defer svc.Close()

			if force && !dryRun {
				if !confirmDestructive("This will remove existing files or directories before recreating links!") {
					printWarning("operation cancelled")
					return nil
				}
			}

			report, err := svc.Reconcile(cmd.Context(), service.SyncOptions{
				Force:  force,
				DryRun: dryRun,
			})
			if err != nil {
				return err
			}

			printSyncReport(report, dryRun)
			if report.Result.Partial() {
				return errPartial
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Replace real files/directories occupying claimed slots")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Preview the plan without touching the filesystem")

	return cmd
}
