package openrouter

import (
	"net/http"
	"time"

	"github.com/scenebrush/scenebrush/core"
)

const (
	// DefaultModel is the image-capable model routed by default.
	DefaultModel = "google/gemini-3-pro-image-preview"

	// DefaultBaseURL is the OpenRouter API root.
	DefaultBaseURL = "https://openrouter.ai/api/v1"

	defaultTimeout = 300 * time.Second
)

// Config holds openrouter provider settings.
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

// WithModel overrides the routed model identifier.
func WithModel(model string) Option {
	return func(c *Config) {
		if model != "" {
			c.ModelID = model
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
