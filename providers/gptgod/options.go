package gptgod

import (
	"net/http"
	"strings"
	"time"

	"github.com/scenebrush/scenebrush/core"
)

const (
	// DefaultModel is the base model identifier, without any resolution
	// suffix.
	DefaultModel = "gemini-3-pro-image-preview"

	// DefaultBaseURL is the API root.
	DefaultBaseURL = "https://api.gptgod.online/v1"

	defaultTimeout = 300 * time.Second
)

// Config holds gptgod provider settings.
type Config struct {
	APIKey     core.Secret
	BaseURL    string
	ModelID    string
	HTTPClient *http.Client
	Logger     core.Logger
}

// Option configures the provider.
type Option func(*Config)

// WithBaseURL overrides the API root.
func WithBaseURL(url string) Option {
	return func(c *Config) {
		if url != "" {
			c.BaseURL = url
		}
	}
}

// WithModel sets the model identifier. Any -2k/-4k resolution suffix is
// stripped; the provider re-appends the right one per request so a stored
// model id that already carries a suffix never double-suffixes.
func WithModel(model string) Option {
	return func(c *Config) {
		if model != "" {
			c.ModelID = stripResolutionSuffix(model)
		}
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Config) {
		if client != nil {
			c.HTTPClient = client
		}
	}
}

// WithLogger sets the debug logger.
func WithLogger(l core.Logger) Option {
	return func(c *Config) {
		if l != nil {
			c.Logger = l
		}
	}
}

func stripResolutionSuffix(model string) string {
	model = strings.ReplaceAll(model, "-2k", "")
	return strings.ReplaceAll(model, "-4k", "")
}

// modelForTier appends the resolution suffix this backend encodes in the
// model name instead of a request field.
func modelForTier(base string, tier core.ResolutionTier) string {
	switch tier {
	case core.Tier4K:
		return base + "-4k"
	case core.Tier2K:
		return base + "-2k"
	default:
		return base
	}
}
