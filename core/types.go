package core

// ProviderKind identifies one concrete backend wire protocol.
type ProviderKind string

const (
	ProviderGoogle     ProviderKind = "google"
	ProviderYunwu      ProviderKind = "yunwu"
	ProviderOpenRouter ProviderKind = "openrouter"
	ProviderGPTGod     ProviderKind = "gptgod"
)

// KnownProviders returns the closed set of provider kinds in display order.
func KnownProviders() []ProviderKind {
	return []ProviderKind{ProviderGoogle, ProviderYunwu, ProviderOpenRouter, ProviderGPTGod}
}

// IsValid reports whether the kind is a recognized provider.
func (k ProviderKind) IsValid() bool {
	switch k {
	case ProviderGoogle, ProviderYunwu, ProviderOpenRouter, ProviderGPTGod:
		return true
	default:
		return false
	}
}

// ResolutionTier is the coarse size bucket most backends accept instead of
// exact pixel dimensions.
type ResolutionTier string

const (
	Tier1K ResolutionTier = "1K"
	Tier2K ResolutionTier = "2K"
	Tier4K ResolutionTier = "4K"
)

// TierFor maps requested pixel dimensions to a resolution tier.
// Either dimension crossing a threshold promotes the whole request.
func TierFor(width, height int) ResolutionTier {
	switch {
	case width >= 4096 || height >= 4096:
		return Tier4K
	case width >= 2048 || height >= 2048:
		return Tier2K
	default:
		return Tier1K
	}
}

// DetectTier picks a tier from a source image's dimensions, used when the
// caller asked for automatic resolution. The thresholds are looser than
// TierFor on purpose: a 1500px source should round up to 2K, not clamp down.
func DetectTier(width, height int) ResolutionTier {
	maxDim := width
	if height > maxDim {
		maxDim = height
	}
	switch {
	case maxDim > 2048:
		return Tier4K
	case maxDim > 1024:
		return Tier2K
	default:
		return Tier1K
	}
}

// PixelSize returns the edge length the tier stands for.
func (t ResolutionTier) PixelSize() int {
	switch t {
	case Tier4K:
		return 4096
	case Tier2K:
		return 2048
	default:
		return 1024
	}
}

// ImageInput is one input image as raw bytes plus its MIME type.
type ImageInput struct {
	Data     []byte
	MIMEType string
}

// GenerationRequest is the normalized request handed to a provider. It is
// built fresh per user action and never mutated after construction.
//
// For generate calls Structure is the depth/mist or colour render and Mask
// is ignored. For edit calls Structure is the image being edited.
type GenerationRequest struct {
	// Structure is the primary image: scene geometry for generate,
	// the source image for edit. Required for edit.
	Structure *ImageInput

	// Reference optionally supplies style cues (colour, materials,
	// lighting), never geometry.
	Reference *ImageInput

	// Mask optionally limits which region of Structure an edit may alter.
	Mask *ImageInput

	// Prompt is the fully composed instruction text. Providers send it
	// verbatim; composition happens upstream in the prompt package.
	Prompt string

	// Width and Height are the requested output dimensions in pixels.
	Width  int
	Height int

	// ColorMode records whether Structure is a colour render rather than
	// a depth map. It changes prompt composition upstream, not transport.
	ColorMode bool
}

// ImageResult is the uniform success value of every provider call.
type ImageResult struct {
	Data     []byte
	MIMEType string
}

// ProviderConfig identifies and authenticates one backend. Loaded from the
// configuration store at dispatch time.
type ProviderConfig struct {
	// Name is the store entry name, usually equal to the kind.
	Name string

	// Kind selects the provider implementation.
	Kind ProviderKind

	// APIKey authenticates against the backend.
	APIKey Secret

	// BaseURL overrides the provider's default endpoint when non-empty.
	BaseURL string

	// ModelID overrides the provider's default model when non-empty.
	ModelID string

	// Logger receives the provider's debug output. Nil means silent.
	Logger Logger
}
