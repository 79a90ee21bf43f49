// Package config handles CLI configuration loading.
package config

import (
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Config represents the CLI configuration.
type Config struct {
	// StoreDir overrides where providers.json and settings.json live.
	StoreDir string `yaml:"store_dir,omitempty"`

	// DefaultProvider overrides the store's persisted selection.
	DefaultProvider string `yaml:"default_provider,omitempty"`

	// DefaultWidth and DefaultHeight apply when no size flags are given.
	DefaultWidth  int `yaml:"default_width,omitempty"`
	DefaultHeight int `yaml:"default_height,omitempty"`
}

// DefaultConfigPath returns the platform configuration file path.
// - macOS/Linux: ~/.scenebrush/config.yaml
// - Windows: %USERPROFILE%\.scenebrush\config.yaml
func DefaultConfigPath() string {
	home := homeDir()
	if home == "" {
		return "config.yaml"
	}
	return filepath.Join(home, ".scenebrush", "config.yaml")
}

// DefaultStoreDir returns where the provider store lives by default.
func DefaultStoreDir() string {
	home := homeDir()
	if home == "" {
		return "."
	}
	return filepath.Join(home, ".scenebrush")
}

func homeDir() string {
	if runtime.GOOS == "windows" {
		return os.Getenv("USERPROFILE")
	}
	return os.Getenv("HOME")
}

// LoadConfig loads configuration from path. A missing file yields an empty
// config; a present but unparseable file is an error.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
