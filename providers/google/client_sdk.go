package google

import (
	"context"
	"fmt"
	"sync"

	"google.golang.org/genai"

	"github.com/scenebrush/scenebrush/core"
	"github.com/scenebrush/scenebrush/imageutil"
)

// sdkInvoker abstracts the genai client so tests can stub the SDK path.
type sdkInvoker interface {
	generateContent(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// liveSDK lazily constructs the real genai client on first use. Client
// construction can fail (bad key format, environment problems); deferring
// it keeps the failure inside the demotable SDK path.
type liveSDK struct {
	apiKey core.Secret

	mu     sync.Mutex
	client *genai.Client
}

func (s *liveSDK) generateContent(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	client, err := s.get(ctx)
	if err != nil {
		return nil, err
	}
	return client.Models.GenerateContent(ctx, model, contents, cfg)
}

func (s *liveSDK) get(ctx context.Context) (*genai.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client != nil {
		return s.client, nil
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  s.apiKey.Expose(),
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	s.client = client
	return client, nil
}

// invokeSDK issues the call through the official SDK. Any error returned
// here triggers demotion to REST in the caller.
func (p *Google) invokeSDK(ctx context.Context, prompt string, images []*core.ImageInput, width, height int) (*core.ImageResult, error) {
	parts := []*genai.Part{{Text: prompt}}
	for _, img := range images {
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{
				MIMEType: img.MIMEType,
				Data:     img.Data,
			},
		})
	}

	cfg := &genai.GenerateContentConfig{
		ResponseModalities: []string{"TEXT", "IMAGE"},
		ImageConfig: &genai.ImageConfig{
			AspectRatio: imageutil.ClosestRatio(width, height),
			ImageSize:   string(core.TierFor(width, height)),
		},
	}

	contents := []*genai.Content{{Role: genai.RoleUser, Parts: parts}}
	resp, err := p.sdk.generateContent(ctx, p.config.ModelID, contents, cfg)
	if err != nil {
		return nil, err
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("sdk response has no candidates")
	}

	var texts []string
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.InlineData != nil && len(part.InlineData.Data) > 0 {
			mime := part.InlineData.MIMEType
			if mime == "" {
				mime = "image/png"
			}
			return &core.ImageResult{Data: part.InlineData.Data, MIMEType: mime}, nil
		}
		if part.Text != "" {
			texts = append(texts, part.Text)
		}
	}

	if len(texts) > 0 {
		return p.placeholderResult(texts), nil
	}
	return nil, fmt.Errorf("sdk response has no image or text parts")
}
