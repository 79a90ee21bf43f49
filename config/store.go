// Package config persists per-provider settings and the selected provider
// to a JSON-backed store on disk. The core reads this store at dispatch
// time but does not own its lifecycle; missing files yield sensible
// defaults instead of errors so a fresh install works without setup.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/scenebrush/scenebrush/core"
)

const (
	providersFile = "providers.json"
	settingsFile  = "settings.json"

	// DefaultSelected is the provider used before the user picks one.
	DefaultSelected = "google"
)

// Entry is one stored provider configuration. Field names are part of the
// on-disk format and must not change.
type Entry struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	APIKey  string `json:"apiKey"`
	BaseURL string `json:"baseUrl"`
	Model   string `json:"model"`
}

type settings struct {
	SelectedProvider string `json:"selected_provider"`
}

// Store reads and writes provider configuration under a directory.
type Store struct {
	dir    string
	logger core.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the debug logger.
func WithLogger(l core.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewStore creates a store rooted at dir. The directory is created on
// first write, not here.
func NewStore(dir string, opts ...Option) *Store {
	s := &Store{dir: dir, logger: core.NopLogger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DefaultEntries returns one unconfigured entry per known provider kind.
func DefaultEntries() []Entry {
	kinds := core.KnownProviders()
	entries := make([]Entry, 0, len(kinds))
	for _, kind := range kinds {
		entries = append(entries, Entry{Name: string(kind), Type: string(kind)})
	}
	return entries
}

// Entries loads all stored provider entries, falling back to defaults when
// the file does not exist yet.
func (s *Store) Entries() ([]Entry, error) {
	path := filepath.Join(s.dir, providersFile)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		s.logger.Printf("config: %s missing, using defaults", providersFile)
		return DefaultEntries(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", providersFile, err)
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse %s: %w", providersFile, err)
	}
	return entries, nil
}

// SaveEntries writes the full entry list atomically.
func (s *Store) SaveEntries(entries []Entry) error {
	return s.writeJSON(providersFile, entries)
}

// SetEntry inserts or replaces the entry with the same name.
func (s *Store) SetEntry(entry Entry) error {
	entries, err := s.Entries()
	if err != nil {
		return err
	}
	replaced := false
	for i := range entries {
		if entries[i].Name == entry.Name {
			entries[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		entries = append(entries, entry)
	}
	return s.SaveEntries(entries)
}

// Selected returns the persisted provider selection, defaulting to
// DefaultSelected when unset or unreadable.
func (s *Store) Selected() string {
	data, err := os.ReadFile(filepath.Join(s.dir, settingsFile))
	if err != nil {
		return DefaultSelected
	}
	var st settings
	if err := json.Unmarshal(data, &st); err != nil || st.SelectedProvider == "" {
		return DefaultSelected
	}
	return st.SelectedProvider
}

// SelectProvider persists the provider selection. The name must refer to a
// stored entry with a valid kind.
func (s *Store) SelectProvider(name string) error {
	if _, err := s.ProviderConfig(name); err != nil {
		return err
	}
	return s.writeJSON(settingsFile, settings{SelectedProvider: name})
}

// ProviderConfig resolves a stored entry to a runtime configuration. An
// empty name resolves the current selection.
func (s *Store) ProviderConfig(name string) (core.ProviderConfig, error) {
	if name == "" {
		name = s.Selected()
	}
	entries, err := s.Entries()
	if err != nil {
		return core.ProviderConfig{}, err
	}
	for _, e := range entries {
		if e.Name != name {
			continue
		}
		kind := core.ProviderKind(e.Type)
		if !kind.IsValid() {
			return core.ProviderConfig{}, &core.ProviderError{
				Provider: e.Name,
				Code:     "invalid_provider_type",
				Message:  fmt.Sprintf("stored entry %q has unknown type %q", e.Name, e.Type),
				Err:      core.ErrConfig,
			}
		}
		return core.ProviderConfig{
			Name:    e.Name,
			Kind:    kind,
			APIKey:  core.NewSecret(e.APIKey),
			BaseURL: e.BaseURL,
			ModelID: e.Model,
		}, nil
	}
	return core.ProviderConfig{}, &core.ProviderError{
		Provider: name,
		Code:     "unknown_provider_entry",
		Message:  fmt.Sprintf("no stored configuration named %q", name),
		Err:      core.ErrConfig,
	}
}

// writeJSON writes via a temp file and rename so a crash mid-write never
// leaves a truncated store.
func (s *Store) writeJSON(name string, v any) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	path := filepath.Join(s.dir, name)
	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}
