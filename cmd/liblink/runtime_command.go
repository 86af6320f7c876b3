package main

import (
	"github.com/spf13/cobra"
)

func newRuntimeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "runtime",
		Short: "Copy the runtime directory to local storage and link it",
		Long: "The runtime cannot execute from the symlink-incapable drive, so its\n" +
			"tree is copied to local storage (incrementally via rsync when\n" +
			"available) and the local entries slot is linked at the copy.",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.newService()
			if err != nil {
				return err
			}
			defer svc.Close()

			if err := svc.EnsureRuntime(cmd.Context()); err != nil {
				return err
			}

			printSuccess("runtime directory is ready")
			return nil
		},
	}
}
