// Package yunwu implements the yunwu relay provider. The relay speaks the
// Gemini generateContent wire format but is a plain REST service with its
// own keys, so there is no SDK path and no placeholder fallback: a
// text-only answer is an error here.
package yunwu

import (
	"context"
	"net/http"

	"github.com/scenebrush/scenebrush/core"
)

// Yunwu is the relay provider. Safe for concurrent calls.
type Yunwu struct {
	config Config
}

// New creates a yunwu provider with the given API key and options.
func New(apiKey core.Secret, opts ...Option) *Yunwu {
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
	return &Yunwu{config: cfg}
}

// Kind identifies the backend.
func (p *Yunwu) Kind() core.ProviderKind {
	return core.ProviderYunwu
}

// Generate produces an image from a structure render. Attachment order:
// prompt, structure image, style reference.
func (p *Yunwu) Generate(ctx context.Context, req *core.GenerationRequest) (*core.ImageResult, error) {
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
// style reference, mask. Note the reference sits between source and mask,
// unlike the google edit ordering.
func (p *Yunwu) Edit(ctx context.Context, req *core.GenerationRequest) (*core.ImageResult, error) {
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
