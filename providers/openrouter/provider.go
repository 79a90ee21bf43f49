// Package openrouter implements the OpenRouter provider over the
// OpenAI-compatible chat completions API. Result images may come back as
// inline data URLs or as remote URLs; remote ones are downloaded and
// converted to PNG before returning so callers always see PNG bytes.
package openrouter

import (
	"context"
	"net/http"

	"github.com/scenebrush/scenebrush/core"
)

// OpenRouter is the provider. Safe for concurrent calls.
type OpenRouter struct {
	config Config
}

// New creates an openrouter provider with the given API key and options.
func New(apiKey core.Secret, opts ...Option) *OpenRouter {
	cfg := Config{
		APIKey:  apiKey,
		BaseURL: DefaultBaseURL,
		ModelID: DefaultModel,
		Logger:  core.NopLogger,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.ModelID == "" {
		cfg.ModelID = DefaultModel
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: defaultTimeout}
	}
	if cfg.Logger == nil {
		cfg.Logger = core.NopLogger
	}
	return &OpenRouter{config: cfg}
}

// Kind identifies the backend.
func (p *OpenRouter) Kind() core.ProviderKind {
	return core.ProviderOpenRouter
}

// Generate produces an image from a structure render. Attachment order:
// prompt, structure image, style reference.
func (p *OpenRouter) Generate(ctx context.Context, req *core.GenerationRequest) (*core.ImageResult, error) {
	var images []*core.ImageInput
	if req.Structure != nil {
		images = append(images, req.Structure)
	}
	if req.Reference != nil {
		images = append(images, req.Reference)
	}
	return p.invoke(ctx, req.Prompt, images, req.Width, req.Height)
}

// Edit modifies an existing image. Attachment order: prompt, source image,
// style reference, mask.
func (p *OpenRouter) Edit(ctx context.Context, req *core.GenerationRequest) (*core.ImageResult, error) {
	var images []*core.ImageInput
	if req.Structure != nil {
		images = append(images, req.Structure)
	}
	if req.Reference != nil {
		images = append(images, req.Reference)
	}
	if req.Mask != nil {
		images = append(images, req.Mask)
	}
	return p.invoke(ctx, req.Prompt, images, req.Width, req.Height)
}
