package gptgod

import (
	"github.com/scenebrush/scenebrush/core"
	"github.com/scenebrush/scenebrush/providers"
)

func init() {
	providers.Register(core.ProviderGPTGod, func(cfg core.ProviderConfig) (providers.ImageProvider, error) {
		return New(cfg.APIKey,
			WithBaseURL(cfg.BaseURL),
			WithModel(cfg.ModelID),
			WithLogger(cfg.Logger),
		), nil
	})
}
