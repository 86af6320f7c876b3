package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/avitali/liblink/internal/fstab"
)

func newFstabCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "fstab",
		Short: "Append a mount entry for the portable drive (requires root)",
		Long: "Finds the mount backing the portable catalog, resolves its UUID and\n" +
			"proposes an /etc/fstab line so the drive mounts automatically with\n" +
			"options suited to the client application. The line is previewed and\n" +
			"confirmed before anything is written.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if cfg.PortableRoot == "" {
				return fmt.Errorf("portable root is required (set it in the config file or pass --portable)")
			}

			if os.Geteuid() != 0 {
				return fmt.Errorf("this command requires root privileges (run with sudo)")
			}

			info, err := fstab.FindMountInfo(cfg.PortableRoot)
			if err != nil {
				return err
			}
			uuid, err := fstab.DeviceUUID(info.Device)
			if err != nil {
				return err
			}

			entry := fstab.Entry{
				UUID:       uuid,
				MountPoint: info.MountPoint,
				FSType:     info.FSType,
				Options:    fstab.DefaultOptions(sudoID("SUDO_UID", os.Getuid()), sudoID("SUDO_GID", os.Getgid())),
			}

			fmt.Printf("\nProposed %s entry:\n%s\n\n", fstab.DefaultPath, entry)
			if !confirm("Append this line to " + fstab.DefaultPath + "?") {
				printWarning("operation cancelled")
				return nil
			}

			if err := fstab.Append(fstab.DefaultPath, entry); err != nil {
				if errors.Is(err, fstab.ErrAlreadyPresent) {
					printWarning("an entry for this mount already exists")
					return nil
				}
				return err
			}

			printSuccess("entry appended to %s", fstab.DefaultPath)
			return nil
		},
	}
}

// sudoID prefers the invoking user's id over root's when run via sudo,
// so the mount options grant ownership to the real user.
func sudoID(env string, fallback int) int {
	if value := os.Getenv(env); value != "" {
		if id, err := strconv.Atoi(value); err == nil {
			return id
		}
	}
	return fallback
}
