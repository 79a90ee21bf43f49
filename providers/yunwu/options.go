package yunwu

import (
	"net/http"
	"time"

	"github.com/scenebrush/scenebrush/core"
)

const (
	// DefaultModel is the image model served by the relay.
	DefaultModel = "gemini-3-pro-image-preview"

	// DefaultBaseURL is the hosted relay endpoint.
	DefaultBaseURL = "https://yunwu.zeabur.app"

	defaultTimeout = 300 * time.Second
)

// Config holds yunwu provider settings.
type Config struct {
	APIKey     core.Secret
	BaseURL    string
	ModelID    string
	HTTPClient *http.Client
	Logger     core.Logger
}

// Option configures the provider.
type Option func(*Config)

// WithBaseURL points the provider at a different relay deployment.
func WithBaseURL(url string) Option {
	return func(c *Config) {
		if url != "" {
			c.BaseURL = url
		}
	}
}

// WithModel overrides the model identifier.
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
