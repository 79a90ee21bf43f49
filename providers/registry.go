package providers

import (
	"fmt"
	"sort"
	"sync"

	"github.com/scenebrush/scenebrush/core"
)

// Factory creates a provider instance from a resolved configuration.
// Factories validate what they must (API key presence is checked here,
// centrally) and apply their own defaults for empty BaseURL/ModelID.
type Factory func(cfg core.ProviderConfig) (ImageProvider, error)

var (
	registryMu sync.RWMutex
	registry   = make(map[core.ProviderKind]Factory)
)

// Register adds a provider factory to the registry. It is called from each
// provider package's init() function. Registering the same kind twice
// overwrites, which tests rely on to install fakes.
func Register(kind core.ProviderKind, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[kind] = factory
}

// Get retrieves a factory by kind, or nil if none is registered.
func Get(kind core.ProviderKind) Factory {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return registry[kind]
}

// Create instantiates a provider for the given configuration. An unknown
// kind or a missing API key is a configuration error.
func Create(cfg core.ProviderConfig) (ImageProvider, error) {
	factory := Get(cfg.Kind)
	if factory == nil {
		return nil, &core.ProviderError{
			Provider: string(cfg.Kind),
			Code:     "unknown_provider",
			Message:  fmt.Sprintf("unknown provider %q (available: %v)", cfg.Kind, List()),
			Err:      core.ErrConfig,
		}
	}
	if cfg.APIKey.IsEmpty() {
		return nil, &core.ProviderError{
			Provider: string(cfg.Kind),
			Code:     "missing_api_key",
			Message:  fmt.Sprintf("no API key configured for provider %q", cfg.Kind),
			Err:      core.ErrConfig,
		}
	}
	return factory(cfg)
}

// List returns the registered kinds in sorted order.
func List() []core.ProviderKind {
	registryMu.RLock()
	defer registryMu.RUnlock()

	kinds := make([]core.ProviderKind, 0, len(registry))
	for kind := range registry {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// IsRegistered reports whether a factory exists for the kind.
func IsRegistered(kind core.ProviderKind) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := registry[kind]
	return ok
}
