package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/avitali/liblink/internal/state"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent reconciliation and export runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			journal, err := state.NewManager(cfg.DataDir)
			if err != nil {
				return err
			}
			defer journal.Close()

			records, err := journal.History(limit)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Println("No runs recorded yet.")
				return nil
			}

			for _, r := range records {
				line := fmt.Sprintf("%s  %-6s %-7s created=%d refreshed=%d skipped=%d forced=%d conflicts=%d failed=%d",
					r.StartTime.Format("2006-01-02 15:04:05"),
					r.Operation, r.Status,
					r.Created, r.Refreshed, r.Skipped, r.Forced, r.Conflicts, r.Failed)

				switch r.Status {
				case state.StatusSuccess:
					fmt.Println(line)
				case state.StatusPartial:
					_, _ = warningColor.Println(line)
				default:
					_, _ = errorColor.Println(line)
					if r.Error != "" {
						_, _ = dimColor.Printf("  %s\n", r.Error)
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to show")

	return cmd
}
