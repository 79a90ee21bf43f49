// Package providers contains the image generation backend implementations.
//
// Each provider lives in its own subpackage (providers/google,
// providers/yunwu, providers/openrouter, providers/gptgod) and registers a
// factory in its init() function. All providers implement ImageProvider and
// normalize their transport and parsing failures into the core error
// taxonomy before returning; a library-specific error never escapes a
// provider boundary.
//
// Wire formats, authentication, and image ordering differ per backend by
// design of the upstream services. The orderings are load-bearing for model
// output quality and must not be unified across providers.
package providers

import (
	"context"

	"github.com/scenebrush/scenebrush/core"
)

// ImageProvider is the uniform interface over heterogeneous backends.
// Implementations should be safe for concurrent calls.
type ImageProvider interface {
	// Kind identifies the backend.
	Kind() core.ProviderKind

	// Generate produces an image from a structure render plus prompt.
	Generate(ctx context.Context, req *core.GenerationRequest) (*core.ImageResult, error)

	// Edit modifies an existing image, optionally constrained by a mask.
	Edit(ctx context.Context, req *core.GenerationRequest) (*core.ImageResult, error)
}

// Re-export core types so provider packages and callers can import just
// this package for the common surface.
type (
	ProviderKind      = core.ProviderKind
	ProviderConfig    = core.ProviderConfig
	GenerationRequest = core.GenerationRequest
	ImageResult       = core.ImageResult
	ProviderError     = core.ProviderError
)

// Re-export sentinel errors.
var (
	ErrConfig            = core.ErrConfig
	ErrTransport         = core.ErrTransport
	ErrRateLimited       = core.ErrRateLimited
	ErrAuth              = core.ErrAuth
	ErrMalformedResponse = core.ErrMalformedResponse
	ErrNoImage           = core.ErrNoImage
)
