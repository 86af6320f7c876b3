package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/avitali/liblink/internal/mounts"
)

func newDetectCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "detect",
		Short: "List portable catalogs found on mounted exFAT drives",
		RunE: func(cmd *cobra.Command, args []string) error {
			points := mounts.DetectExfat()
			if len(points) == 0 {
				printWarning("no exFAT filesystems are mounted")
				return nil
			}

			candidates := mounts.DiscoverCatalogs(points)
			if len(candidates) == 0 {
				printWarning("no portable catalogs found on %d exFAT mount(s)", len(points))
				return nil
			}

			fmt.Println("Detected portable catalogs:")
			for i, path := range candidates {
				marker := ""
				if mounts.IsExfat(path) {
					marker = "  (exfat)"
				}
				fmt.Printf("  %d) %s%s\n", i+1, path, marker)
			}
			fmt.Println("\nUse one with: liblink sync --portable <path>")
			return nil
		},
	}
}
