package main

import (
	"github.com/spf13/cobra"

	"github.com/avitali/liblink/internal/domain"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Copy updated local manifests back onto the portable drive",
		Long: "Pushes local manifest files to the portable catalog. Manifests that\n" +
			"are newer on the portable side are protected: they are skipped unless\n" +
			"you confirm the overwrite.",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.newService()
			if err != nil {
				return err
			}
			defer svc.Close()

			allowOverwrite := overwrite
			if !allowOverwrite {
				decisions, err := svc.ExportPreview(cmd.Context())
				if err != nil {
					return err
				}
				newer := 0
				for _, d := range decisions {
					if d.Decision == domain.ExportWarnNewerOnPortable {
						newer++
					}
				}
				if newer > 0 {
					printWarning("detected %d newer manifest(s) on the portable drive", newer)
					allowOverwrite = confirm("Overwrite anyway?")
				}
			}

			result, err := svc.Export(cmd.Context(), allowOverwrite)
			if err != nil {
				return err
			}

			printSuccess("exported %d manifest file(s) to the portable drive", result.Copied)
			if result.SkippedNewer > 0 {
				printWarning("skipped %d manifest(s) with newer portable copies", result.SkippedNewer)
			}
			for _, failure := range result.Failures {
				printError("failed manifest %s: %s", failure.ID, failure.Reason)
			}
			if len(result.Failures) > 0 {
				return errPartial
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite manifests that are newer on the portable side")

	return cmd
}
