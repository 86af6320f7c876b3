package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/avitali/liblink/internal/domain"
)

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `local_root: /home/user/catalog
portable_root: /mnt/drive/catalog
runtime_name: SteamLinuxRuntime_sniper
log:
  level: debug
  format: json
  file:
    enabled: true
    path: /tmp/liblink.log
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.LocalRoot != "/home/user/catalog" {
		t.Errorf("Unexpected local_root: %s", cfg.LocalRoot)
	}
	if cfg.PortableRoot != "/mnt/drive/catalog" {
		t.Errorf("Unexpected portable_root: %s", cfg.PortableRoot)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("Unexpected log config: %+v", cfg.Log)
	}
	if !cfg.Log.File.Enabled || cfg.Log.File.Path != "/tmp/liblink.log" {
		t.Errorf("Unexpected file log config: %+v", cfg.Log.File)
	}
	// Unset keys fall back to defaults.
	if cfg.Log.File.MaxSizeMB != 10 {
		t.Errorf("Expected default max_size_mb 10, got %d", cfg.Log.File.MaxSizeMB)
	}
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if !errors.Is(err, domain.ErrConfigNotFound) {
		t.Errorf("Expected ErrConfigNotFound, got %v", err)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("local_root: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if !errors.Is(err, domain.ErrConfigInvalid) {
		t.Errorf("Expected ErrConfigInvalid, got %v", err)
	}
}

func TestLoad_ExpandsUserPaths(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `local_root: ~/catalog
portable_root: /mnt/drive/catalog
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}
	if cfg.LocalRoot != filepath.Join(home, "catalog") {
		t.Errorf("Expected expanded home path, got %s", cfg.LocalRoot)
	}
}

func TestValidate(t *testing.T) {
	valid := Config{
		LocalRoot:    "/home/user/catalog",
		PortableRoot: "/mnt/drive/catalog",
		RuntimeName:  "SteamLinuxRuntime_sniper",
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("Expected valid config, got %v", err)
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantMsg string
	}{
		{"empty local root", func(c *Config) { c.LocalRoot = "" }, "local_root"},
		{"empty portable root", func(c *Config) { c.PortableRoot = "" }, "portable_root"},
		{"same roots", func(c *Config) { c.PortableRoot = c.LocalRoot + "/" }, "must differ"},
		{"empty runtime name", func(c *Config) { c.RuntimeName = "" }, "runtime_name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)

			err := cfg.Validate()
			if !errors.Is(err, domain.ErrConfigInvalid) {
				t.Fatalf("Expected ErrConfigInvalid, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("Expected message about %q, got %q", tt.wantMsg, err)
			}
		})
	}
}

func TestExpandUser(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	if got := ExpandUser("~/catalog"); got != filepath.Join(home, "catalog") {
		t.Errorf("Expected expansion, got %s", got)
	}
	if got := ExpandUser("/absolute/path"); got != "/absolute/path" {
		t.Errorf("Expected absolute path untouched, got %s", got)
	}
	if got := ExpandUser("~user/other"); got != "~user/other" {
		t.Errorf("Expected ~user form untouched, got %s", got)
	}
}

func TestDefaultConfigPaths(t *testing.T) {
	paths := DefaultConfigPaths()
	if len(paths) == 0 || paths[0] != "." {
		t.Errorf("Expected current directory first, got %v", paths)
	}
}
