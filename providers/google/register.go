package google

import (
	"github.com/scenebrush/scenebrush/core"
	"github.com/scenebrush/scenebrush/providers"
)

func init() {
	providers.Register(core.ProviderGoogle, func(cfg core.ProviderConfig) (providers.ImageProvider, error) {
		return New(cfg.APIKey,
			WithBaseURL(cfg.BaseURL),
			WithModel(cfg.ModelID),
			WithLogger(cfg.Logger),
		), nil
	})
}
