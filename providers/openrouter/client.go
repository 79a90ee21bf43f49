package openrouter

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

const providerName = "openrouter"

type chatRequest struct {
	Model       string             `json:"model"`
	Messages    []chatwire.Message `json:"messages"`
	Modalities  []string           `json:"modalities"`
	ImageConfig imageConfig        `json:"image_config"`
}

type imageConfig struct {
	AspectRatio string `json:"aspect_ratio"`
	ImageSize   string `json:"image_size"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
			Images  []struct {
				ImageURL struct {
					URL string `json:"url"`
				} `json:"image_url"`
			} `json:"images"`
		} `json:"message"`
	} `json:"choices"`
}

func (p *OpenRouter) invoke(ctx context.Context, prompt string, images []*core.ImageInput, width, height int) (*core.ImageResult, error) {
	content := []chatwire.ContentPart{chatwire.TextPart(prompt)}
	for _, img := range images {
		content = append(content, chatwire.ImagePart(img.Data, img.MIMEType))
	}

	payload := chatRequest{
		Model:      p.config.ModelID,
		Messages:   []chatwire.Message{{Role: "user", Content: content}},
		Modalities: []string{"image", "text"},
		ImageConfig: imageConfig{
			AspectRatio: imageutil.RatioString(width, height),
			ImageSize:   string(core.TierFor(width, height)),
		},
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

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, normalize.DecodeError(providerName, err)
	}

	for _, choice := range parsed.Choices {
		for _, img := range choice.Message.Images {
			if img.ImageURL.URL == "" {
				continue
			}
			res, err := p.resolveImageURL(ctx, img.ImageURL.URL)
			if err != nil {
				return nil, err
			}
			return res, nil
		}
	}

	if len(parsed.Choices) > 0 && parsed.Choices[0].Message.Content != "" {
		p.config.Logger.Printf("openrouter: model returned text instead of an image: %.200s", parsed.Choices[0].Message.Content)
		return nil, normalize.NoImageError(providerName, parsed.Choices[0].Message.Content)
	}
	return nil, normalize.MalformedError(providerName, "no image in response")
}

// resolveImageURL turns a result reference into PNG bytes. Inline data URLs
// are decoded directly; remote URLs are downloaded first. Either way the
// result is normalized to PNG.
func (p *OpenRouter) resolveImageURL(ctx context.Context, url string) (*core.ImageResult, error) {
	data, mime, isData, err := chatwire.ParseDataURL(url)
	if err != nil {
		return nil, normalize.DecodeError(providerName, err)
	}
	if !isData {
		p.config.Logger.Printf("openrouter: downloading result image from %s", url)
		data, mime, err = imageutil.Download(ctx, url)
		if err != nil {
			return nil, normalize.NetworkError(providerName, err)
		}
	}
	png, pngMIME := imageutil.EnsurePNG(data, mime)
	return &core.ImageResult{Data: png, MIMEType: pngMIME}, nil
}
