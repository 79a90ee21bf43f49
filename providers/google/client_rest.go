package google

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

const providerName = "google"

// invokeREST issues the call over the raw generateContent REST endpoint
// with the same image ordering the SDK path used.
func (p *Google) invokeREST(ctx context.Context, prompt string, images []*core.ImageInput, width, height int) (*core.ImageResult, error) {
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

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", p.config.BaseURL, p.config.ModelID, p.config.APIKey.Expose())
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, normalize.NetworkError(providerName, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Goog-Api-Client", "scenebrush")

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
		return p.placeholderResult(texts), nil
	}
	return nil, normalize.MalformedError(providerName, "response contains neither image nor text parts")
}
