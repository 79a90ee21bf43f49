// Package gptgod implements the GPTGod provider. The service is
// OpenAI-chat-compatible on the request side but notoriously loose on the
// response side: the image may arrive in any of five different shapes, so
// parsing runs an ordered cascade of extractors (see parse.go). Resolution
// is selected by model-name suffix rather than a request field.
package gptgod

import (
	"context"
	"net/http"

	"github.com/scenebrush/scenebrush/core"
)

// promptSuffix asks the backend for exactly one image. Without it the
// service sometimes returns a grid of variants.
const promptSuffix = "\n请生成 1 张图片。"

// GPTGod is the provider. Safe for concurrent calls.
type GPTGod struct {
	config Config
}

// New creates a gptgod provider with the given API key and options.
func New(apiKey core.Secret, opts ...Option) *GPTGod {
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
	return &GPTGod{config: cfg}
}

// Kind identifies the backend.
func (p *GPTGod) Kind() core.ProviderKind {
	return core.ProviderGPTGod
}

// Generate produces an image from a structure render. Attachment order:
// prompt, structure image, style reference.
func (p *GPTGod) Generate(ctx context.Context, req *core.GenerationRequest) (*core.ImageResult, error) {
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
func (p *GPTGod) Edit(ctx context.Context, req *core.GenerationRequest) (*core.ImageResult, error) {
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
