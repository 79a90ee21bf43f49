package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing file must not error, got %v", err)
	}
	if cfg.DefaultProvider != "" || cfg.StoreDir != "" {
		t.Errorf("missing file must yield empty config: %+v", cfg)
	}
}

func TestLoadConfigParsesFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "store_dir: /tmp/sb\ndefault_provider: yunwu\ndefault_width: 2048\ndefault_height: 1152\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.StoreDir != "/tmp/sb" || cfg.DefaultProvider != "yunwu" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.DefaultWidth != 2048 || cfg.DefaultHeight != 1152 {
		t.Errorf("size = %dx%d", cfg.DefaultWidth, cfg.DefaultHeight)
	}
}

func TestLoadConfigBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("{not yaml:::"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("unparseable file must error")
	}
}
