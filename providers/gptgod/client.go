package gptgod

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/scenebrush/scenebrush/core"
	"github.com/scenebrush/scenebrush/imageutil"
	"github.com/scenebrush/scenebrush/providers/internal/chatwire"
	"github.com/scenebrush/scenebrush/providers/internal/normalize"
)

const providerName = "gptgod"

type chatRequest struct {
	Model    string             `json:"model"`
	Stream   bool               `json:"stream"`
	N        int                `json:"n"`
	Messages []chatwire.Message `json:"messages"`
}

func (p *GPTGod) invoke(ctx context.Context, prompt string, images []*core.ImageInput, width, height int) (*core.ImageResult, error) {
	tier := core.TierFor(width, height)
	model := modelForTier(p.config.ModelID, tier)
	p.config.Logger.Printf("gptgod: using model %s for %s tier", model, tier)

	content := []chatwire.ContentPart{chatwire.TextPart(prompt + promptSuffix)}
	for _, img := range images {
		content = append(content, chatwire.ImagePart(img.Data, img.MIMEType))
	}

	payload := chatRequest{
		Model:    model,
		Stream:   false,
		N:        1,
		Messages: []chatwire.Message{{Role: "user", Content: content}},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, normalize.DecodeError(providerName, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.config.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, normalize.NetworkError(providerName, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.config.APIKey.Expose())

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

	ref, strategy, err := extractImageRef(respBody)
	if err != nil {
		return nil, normalize.DecodeError(providerName, err)
	}
	if ref == "" {
		return nil, normalize.MalformedError(providerName,
			"no image found after trying every known response shape: "+normalize.Truncate(respBody))
	}
	p.config.Logger.Printf("gptgod: image located via %s", strategy)

	return p.resolveImageRef(ctx, ref)
}

// resolveImageRef turns an extracted reference into PNG bytes: data URLs
// decode inline, remote URLs are downloaded. Output is normalized to PNG.
func (p *GPTGod) resolveImageRef(ctx context.Context, ref string) (*core.ImageResult, error) {
	data, mime, isData, err := chatwire.ParseDataURL(ref)
	if err != nil {
		return nil, normalize.DecodeError(providerName, err)
	}
	if !isData {
		p.config.Logger.Printf("gptgod: downloading result image from %s", ref)
		data, mime, err = imageutil.Download(ctx, ref)
		if err != nil {
			return nil, normalize.NetworkError(providerName, err)
		}
	}
	png, pngMIME := imageutil.EnsurePNG(data, mime)
	return &core.ImageResult{Data: png, MIMEType: pngMIME}, nil
}
