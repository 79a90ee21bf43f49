package yunwu

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/scenebrush/scenebrush/core"
	"github.com/scenebrush/scenebrush/imageutil"
	"github.com/scenebrush/scenebrush/providers/internal/geminiwire"
	"github.com/scenebrush/scenebrush/providers/internal/normalize"
)

const providerName = "yunwu"

func (p *Yunwu) invoke(ctx context.Context, prompt string, images []*core.ImageInput, width, height int) (*core.ImageResult, error) {
	parts := []geminiwire.Part{geminiwire.TextPart(prompt)}
	for _, img := range images {
		parts = append(parts, geminiwire.InlinePart(img.Data, img.MIMEType))
	}

	payload := geminiwire.Request{
		Contents: []geminiwire.Content{{Parts: parts}},
		GenerationConfig: &geminiwire.GenerationConfig{
			ResponseModalities: []string{"TEXT", "IMAGE"},
			ImageConfig: &geminiwire.ImageConfig{
				AspectRatio: imageutil.ClosestRatio(width, height),
				ImageSize:   string(core.TierFor(width, height)),
			},
			CandidateCount: 1,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, normalize.DecodeError(providerName, err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", p.config.BaseURL, p.config.ModelID, p.config.APIKey.Expose())
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, normalize.NetworkError(providerName, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.config.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, normalize.NetworkError(providerName, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, normalize.NetworkError(providerName, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, normalize.HTTPStatusError(providerName, resp.StatusCode, respBody, resp.Header.Get("Retry-After"))
	}

	parsed, err := geminiwire.ParseResponse(respBody)
	if err != nil {
		return nil, normalize.DecodeError(providerName, err)
	}

	if data, mime, ok := parsed.FirstImage(); ok {
		return &core.ImageResult{Data: data, MIMEType: mime}, nil
	}
	if texts := parsed.TextParts(); len(texts) > 0 {
		p.config.Logger.Printf("yunwu: model returned text instead of an image: %.200s", texts[0])
		return nil, normalize.NoImageError(providerName, texts[0])
	}
	return nil, normalize.MalformedError(providerName, "response contains neither image nor text parts")
}
