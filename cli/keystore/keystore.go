// Package keystore stores provider API keys encrypted at rest.
package keystore

import (
	"os"
	"path/filepath"
	"runtime"
)

// Keystore is the interface for secure key storage.
type Keystore interface {
	// Set stores a key for a provider name.
	Set(name, value string) error
	// Get retrieves a key by provider name.
	Get(name string) (string, error)
	// Delete removes a key by provider name.
	Delete(name string) error
	// List returns all stored provider names.
	List() ([]string, error)
}

// ErrKeyNotFound is returned when a requested key does not exist.
type ErrKeyNotFound struct {
	Name string
}

func (e *ErrKeyNotFound) Error() string {
	return "key not found: " + e.Name
}

// DefaultKeystorePath returns the platform keystore file path.
// - macOS/Linux: ~/.scenebrush/keys.enc
// - Windows: %USERPROFILE%\.scenebrush\keys.enc
func DefaultKeystorePath() string {
	var homeDir string
	if runtime.GOOS == "windows" {
		homeDir = os.Getenv("USERPROFILE")
	} else {
		homeDir = os.Getenv("HOME")
	}
	if homeDir == "" {
		return "keys.enc"
	}
	return filepath.Join(homeDir, ".scenebrush", "keys.enc")
}

// NewKeystore creates a keystore at the default path.
func NewKeystore() (Keystore, error) {
	return NewFileKeystore(DefaultKeystorePath())
}
