package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/avitali/liblink/internal/config"
	"github.com/avitali/liblink/internal/logger"
	"github.com/avitali/liblink/internal/service"
)

// commandContext carries persistent flags and the lazily-loaded config
// shared by all commands.
type commandContext struct {
	configFlag   string
	localFlag    string
	portableFlag string
	logLevelFlag string

	cfg *config.Config
}

// ensureConfig loads the config file, applies flag overrides and
// initializes the logger. Called once from the persistent pre-run.
func (c *commandContext) ensureConfig() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}

	cfg, err := config.Load(c.configFlag)
	if err != nil {
		return nil, err
	}

	if c.localFlag != "" {
		cfg.LocalRoot = config.ExpandUser(c.localFlag)
	}
	if c.portableFlag != "" {
		cfg.PortableRoot = config.ExpandUser(c.portableFlag)
	}
	if c.logLevelFlag != "" {
		cfg.Log.Level = c.logLevelFlag
	}

	if err := logger.Init(logger.Config{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		File: logger.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			MaxBackups: cfg.Log.File.MaxBackups,
			Compress:   cfg.Log.File.Compress,
		},
	}); err != nil {
		return nil, fmt.Errorf("initializing logger: %w", err)
	}

	c.cfg = cfg
	return cfg, nil
}

// newService builds the orchestration service after validating the
// configuration. Commands that need catalog roots go through here;
// detect and history do not require a portable root.
func (c *commandContext) newService() (*service.Service, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return service.New(cfg)
}

func newRootCommand() *cobra.Command {
	ctx := &commandContext{}

	rootCmd := &cobra.Command{
		Use:   "liblink",
		Short: "Reconcile a local game-library catalog with a portable one",
		Long: "liblink keeps a local game-library catalog in sync with a portable\n" +
			"catalog on a removable exFAT drive. Entries and manifests are\n" +
			"materialized locally as symlinks into the portable catalog, so no\n" +
			"payload data is ever duplicated.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&ctx.configFlag, "config", "c", "", "Configuration file path")
	flags.StringVar(&ctx.localFlag, "local", "", "Local catalog root (overrides config)")
	flags.StringVar(&ctx.portableFlag, "portable", "", "Portable catalog root (overrides config)")
	flags.StringVar(&ctx.logLevelFlag, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(newSyncCommand(ctx))
	rootCmd.AddCommand(newExportCommand(ctx))
	rootCmd.AddCommand(newRuntimeCommand(ctx))
	rootCmd.AddCommand(newFstabCommand(ctx))
	rootCmd.AddCommand(newDetectCommand(ctx))
	rootCmd.AddCommand(newHistoryCommand(ctx))

	return rootCmd
}
