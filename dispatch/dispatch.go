// Package dispatch orchestrates one generate or edit call end to end: it
// resolves the provider configuration, composes the prompt, normalizes the
// input images, invokes the provider, and normalizes the result to PNG.
package dispatch

import (
	"context"
	"fmt"

	"github.com/scenebrush/scenebrush/core"
	"github.com/scenebrush/scenebrush/imageutil"
	"github.com/scenebrush/scenebrush/prompt"
	"github.com/scenebrush/scenebrush/providers"
)

// ConfigSource resolves a provider name to its runtime configuration. The
// config.Store satisfies it; callers may wrap it to layer in key lookup
// from other sources.
type ConfigSource interface {
	ProviderConfig(name string) (core.ProviderConfig, error)
}

// Request describes one user action. Image fields carry raw bytes in any
// supported format; the dispatcher converts them before sending.
type Request struct {
	// Provider names a stored configuration entry. Empty selects the
	// persisted default.
	Provider string

	// Structure is the primary image: the depth/colour render for
	// generate, the image being edited for edit.
	Structure *core.ImageInput

	// Reference optionally supplies style cues.
	Reference *core.ImageInput

	// Mask optionally limits the edited region.
	Mask *core.ImageInput

	// UserText is the raw user prompt, before template composition.
	UserText string

	// Width and Height are the requested output dimensions in pixels.
	Width  int
	Height int

	// ColorMode marks Structure as a colour render instead of a depth map.
	ColorMode bool
}

// StatusFunc receives advisory progress strings for display.
type StatusFunc func(status string)

// Dispatcher runs generate and edit calls against the configured provider.
type Dispatcher struct {
	store  ConfigSource
	logger core.Logger
	status StatusFunc

	// create is swapped by tests to avoid real provider construction.
	create func(cfg core.ProviderConfig) (providers.ImageProvider, error)
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the debug logger.
func WithLogger(l core.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithStatus installs a progress callback.
func WithStatus(fn StatusFunc) Option {
	return func(d *Dispatcher) {
		if fn != nil {
			d.status = fn
		}
	}
}

// New creates a dispatcher over the given configuration source.
func New(store ConfigSource, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		store:  store,
		logger: core.NopLogger,
		status: func(string) {},
		create: providers.Create,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Generate runs one image generation call.
func (d *Dispatcher) Generate(ctx context.Context, req *Request) (*core.ImageResult, error) {
	text := prompt.Generate(req.UserText, req.Reference != nil, req.ColorMode)
	return d.run(ctx, req, text, func(p providers.ImageProvider, gr *core.GenerationRequest) (*core.ImageResult, error) {
		return p.Generate(ctx, gr)
	})
}

// Edit runs one image edit call. Structure is required.
func (d *Dispatcher) Edit(ctx context.Context, req *Request) (*core.ImageResult, error) {
	if req.Structure == nil {
		return nil, fmt.Errorf("edit requires a source image")
	}
	text := prompt.Edit(req.UserText, req.Mask != nil, req.Reference != nil)
	return d.run(ctx, req, text, func(p providers.ImageProvider, gr *core.GenerationRequest) (*core.ImageResult, error) {
		return p.Edit(ctx, gr)
	})
}

func (d *Dispatcher) run(ctx context.Context, req *Request, text string, call func(providers.ImageProvider, *core.GenerationRequest) (*core.ImageResult, error)) (*core.ImageResult, error) {
	cfg, err := d.store.ProviderConfig(req.Provider)
	if err != nil {
		return nil, err
	}
	if cfg.Logger == nil {
		// The provider inherits the dispatcher's debug logger so details
		// like the google SDK demotion reach the same sink.
		cfg.Logger = d.logger
	}
	provider, err := d.create(cfg)
	if err != nil {
		return nil, err
	}

	tier := core.TierFor(req.Width, req.Height)
	gr := &core.GenerationRequest{
		Structure: d.prepareInput(req.Structure, tier),
		Reference: d.prepareInput(req.Reference, tier),
		Mask:      d.prepareInput(req.Mask, tier),
		Prompt:    text,
		Width:     req.Width,
		Height:    req.Height,
		ColorMode: req.ColorMode,
	}

	d.logger.Printf("dispatch: %s request to %s (%dx%d, %s tier)",
		cfg.Kind, cfg.Name, req.Width, req.Height, tier)
	d.status("Sending to AI...")

	res, err := call(provider, gr)
	if err != nil {
		return nil, err
	}

	d.status("Loading result...")
	data, mime := imageutil.EnsurePNG(res.Data, res.MIMEType)
	return &core.ImageResult{Data: data, MIMEType: mime}, nil
}

// prepareInput converts an input image to PNG and shrinks it to the
// request's tier so oversized sources do not blow the request size limit.
func (d *Dispatcher) prepareInput(img *core.ImageInput, tier core.ResolutionTier) *core.ImageInput {
	if img == nil {
		return nil
	}
	data, mime := imageutil.EnsurePNG(img.Data, img.MIMEType)
	data = imageutil.ShrinkToTier(data, tier)
	return &core.ImageInput{Data: data, MIMEType: mime}
}
