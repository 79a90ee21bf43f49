package google

import (
	"net/http"
	"time"

	"github.com/scenebrush/scenebrush/core"
)

// DefaultModel is the image-capable Gemini model used when none is
// configured.
const DefaultModel = "gemini-2.5-flash-image-preview"

// DefaultBaseURL is the REST fallback endpoint.
const DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// Generation latency on this backend is highly variable; a response after
// four minutes is normal, not a stuck connection.
const defaultTimeout = 300 * time.Second

// Config holds configuration for the google provider.
type Config struct {
	// APIKey authenticates both the SDK and REST paths (required).
	APIKey core.Secret

	// BaseURL is the REST fallback base URL. Defaults to DefaultBaseURL.
	BaseURL string

	// ModelID selects the model. Defaults to DefaultModel.
	ModelID string

	// HTTPClient serves the REST path. Defaults to a client with a 300s
	// timeout.
	HTTPClient *http.Client

	// Logger receives SDK-demotion details and debug output.
	Logger core.Logger
}

// Option configures the google provider.
type Option func(*Config)

// WithBaseURL sets the REST fallback base URL.
func WithBaseURL(url string) Option {
	return func(c *Config) {
		c.BaseURL = url
	}
}

// WithModel sets the model ID.
func WithModel(model string) Option {
	return func(c *Config) {
		c.ModelID = model
	}
}

// WithHTTPClient sets a custom HTTP client for the REST path.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Config) {
		c.HTTPClient = client
	}
}

// WithLogger sets the debug logger.
func WithLogger(logger core.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}
