// Package google implements the Gemini provider with an official-SDK
// preferred path and a REST fallback.
//
// The two transports must behave identically to callers. Any failure on the
// SDK path (library unavailable, network error, structurally unexpected
// response) demotes the provider to REST and retries the same logical call
// once; the first failure goes to the debug log only and is never surfaced
// unless the REST retry also fails.
package google

import (
	"context"
	"net/http"
	"sync"

	"github.com/scenebrush/scenebrush/core"
	"github.com/scenebrush/scenebrush/imageutil"
)

// Image orderings differ between the two operations and must stay that way:
// generate sends the structure image before the style reference, edit sends
// the reference before the image being edited. This asymmetry matches the
// upstream convention and changing either silently degrades output quality.

// Google is the Gemini provider. Safe for concurrent calls.
type Google struct {
	config Config

	sdk sdkInvoker

	mu       sync.Mutex
	restOnly bool
}

// New creates a google provider with the given API key and options.
func New(apiKey core.Secret, opts ...Option) *Google {
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

	return &Google{
		config: cfg,
		sdk:    &liveSDK{apiKey: apiKey},
	}
}

// Kind identifies the backend.
func (p *Google) Kind() core.ProviderKind {
	return core.ProviderGoogle
}

// Generate produces an image from a structure render. Attachment order:
// prompt, structure image, style reference.
func (p *Google) Generate(ctx context.Context, req *core.GenerationRequest) (*core.ImageResult, error) {
	var images []*core.ImageInput
	if req.Structure != nil {
		images = append(images, req.Structure)
	}
	if req.Reference != nil {
		images = append(images, req.Reference)
	}
	return p.invoke(ctx, req.Prompt, images, req.Width, req.Height)
}

// Edit modifies an existing image. Attachment order: prompt, style
// reference, source image, mask.
func (p *Google) Edit(ctx context.Context, req *core.GenerationRequest) (*core.ImageResult, error) {
	var images []*core.ImageInput
	if req.Reference != nil {
		images = append(images, req.Reference)
	}
	if req.Structure != nil {
		images = append(images, req.Structure)
	}
	if req.Mask != nil {
		images = append(images, req.Mask)
	}
	return p.invoke(ctx, req.Prompt, images, req.Width, req.Height)
}

// invoke runs the SDK path unless already demoted, falling back to REST on
// any SDK failure.
func (p *Google) invoke(ctx context.Context, prompt string, images []*core.ImageInput, width, height int) (*core.ImageResult, error) {
	if !p.demoted() {
		res, err := p.invokeSDK(ctx, prompt, images, width, height)
		if err == nil {
			return res, nil
		}
		p.config.Logger.Printf("google: sdk path failed, demoting to REST: %v", err)
		p.demote()
	}
	return p.invokeREST(ctx, prompt, images, width, height)
}

func (p *Google) demoted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.restOnly
}

func (p *Google) demote() {
	p.mu.Lock()
	p.restOnly = true
	p.mu.Unlock()
}

// placeholderResult stands in when the model answers with text only. The
// caller still gets a displayable image; the model's text goes to the debug
// log.
func (p *Google) placeholderResult(texts []string) *core.ImageResult {
	if len(texts) > 0 {
		p.config.Logger.Printf("google: model returned text instead of an image: %.200s", texts[0])
	}
	return &core.ImageResult{
		Data:     imageutil.PlaceholderPNG(100, 100, 0, 100, 200),
		MIMEType: "image/png",
	}
}
