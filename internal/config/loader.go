package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/avitali/liblink/internal/domain"
)

// DefaultConfigPaths returns the default paths to search for config files
func DefaultConfigPaths() []string {
	paths := []string{"."}

	if configDir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(configDir, "liblink"))
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(homeDir, ".config", "liblink"))
		paths = append(paths, filepath.Join(homeDir, ".liblink"))
	}

	return paths
}

// Load reads and parses a configuration file. If path is empty, the
// default locations are searched for config.yaml; a missing config file
// is not an error then, since every key has a default or a flag.
// Validation is deferred to the caller so flags can fill gaps first.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		for _, p := range DefaultConfigPaths() {
			v.AddConfigPath(p)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if path != "" {
				return nil, domain.ErrConfigNotFound
			}
			// No config file anywhere: run on defaults and flags.
		} else if os.IsNotExist(err) && path != "" {
			return nil, domain.ErrConfigNotFound
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %v", domain.ErrConfigInvalid, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrConfigInvalid, err)
	}

	cfg.LocalRoot = ExpandUser(cfg.LocalRoot)
	cfg.PortableRoot = ExpandUser(cfg.PortableRoot)
	cfg.RuntimeDir = ExpandUser(cfg.RuntimeDir)
	cfg.DataDir = ExpandUser(cfg.DataDir)
	cfg.Log.File.Path = ExpandUser(cfg.Log.File.Path)

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("local_root", "~/.local/share/liblink/catalog")
	v.SetDefault("runtime_name", "SteamLinuxRuntime_sniper")
	v.SetDefault("runtime_dir", "~/.local/share/liblink/runtime")
	v.SetDefault("data_dir", "~/.local/share/liblink")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file.enabled", false)
	v.SetDefault("log.file.max_size_mb", 10)
	v.SetDefault("log.file.max_age_days", 30)
	v.SetDefault("log.file.max_backups", 3)
}
