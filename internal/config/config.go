package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/avitali/liblink/internal/domain"
)

// Config represents the complete configuration for liblink
type Config struct {
	// LocalRoot is the canonical catalog consulted by the client
	// application
	LocalRoot string `mapstructure:"local_root"`

	// PortableRoot is the catalog on the removable drive
	PortableRoot string `mapstructure:"portable_root"`

	// RuntimeName is the entry name of the runtime directory on the
	// portable side
	RuntimeName string `mapstructure:"runtime_name"`

	// RuntimeDir is the local destination of the runtime transfer.
	// The runtime cannot execute from the symlink-incapable drive, so
	// it is copied here and linked into the local entries tree.
	RuntimeDir string `mapstructure:"runtime_dir"`

	// DataDir holds the run-history database
	DataDir string `mapstructure:"data_dir"`

	// Log configures the structured logger
	Log LogConfig `mapstructure:"log"`
}

// LogConfig configures logging output
type LogConfig struct {
	Level  string        `mapstructure:"level"`
	Format string        `mapstructure:"format"`
	File   FileLogConfig `mapstructure:"file"`
}

// FileLogConfig configures the rotating log file
type FileLogConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	Path       string `mapstructure:"path"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	MaxBackups int    `mapstructure:"max_backups"`
	Compress   bool   `mapstructure:"compress"`
}

// Validate checks that the configuration is complete and consistent
func (c *Config) Validate() error {
	if c.LocalRoot == "" {
		return fmt.Errorf("%w: local_root cannot be empty", domain.ErrConfigInvalid)
	}
	if c.PortableRoot == "" {
		return fmt.Errorf("%w: portable_root is required (set it in the config file or pass --portable)", domain.ErrConfigInvalid)
	}
	if filepath.Clean(c.LocalRoot) == filepath.Clean(c.PortableRoot) {
		return fmt.Errorf("%w: local_root and portable_root must differ", domain.ErrConfigInvalid)
	}
	if c.RuntimeName == "" {
		return fmt.Errorf("%w: runtime_name cannot be empty", domain.ErrConfigInvalid)
	}
	return nil
}

// ExpandUser replaces a leading ~ with the user's home directory
func ExpandUser(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
