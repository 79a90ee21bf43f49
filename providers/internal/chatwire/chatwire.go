// Package chatwire holds the OpenAI-style chat-completions wire types
// shared by the providers that speak that dialect. Request construction is
// common; response parsing stays in each provider because the services
// disagree wildly on where the image lives.
package chatwire

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// ContentPart is one element of a multimodal user message.
type ContentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *ImageRef `json:"image_url,omitempty"`
}

// ImageRef wraps an image location: either a data URL or a remote URL.
type ImageRef struct {
	URL string `json:"url"`
}

// Message is a single chat message.
type Message struct {
	Role    string        `json:"role"`
	Content []ContentPart `json:"content"`
}

// TextPart builds a text content part.
func TextPart(text string) ContentPart {
	return ContentPart{Type: "text", Text: text}
}

// ImagePart builds an image_url content part carrying inline data.
func ImagePart(data []byte, mimeType string) ContentPart {
	return ContentPart{
		Type:     "image_url",
		ImageURL: &ImageRef{URL: DataURL(data, mimeType)},
	}
}

// DataURL encodes raw image bytes as a base64 data URL.
func DataURL(data []byte, mimeType string) string {
	if mimeType == "" {
		mimeType = "image/png"
	}
	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))
}

// ParseDataURL decodes a data URL back to raw bytes and a MIME type.
// Returns ok=false if the string is not a data URL at all; a data URL with
// an undecodable payload is an error.
func ParseDataURL(url string) (data []byte, mimeType string, ok bool, err error) {
	if !strings.HasPrefix(url, "data:") {
		return nil, "", false, nil
	}
	comma := strings.IndexByte(url, ',')
	if comma < 0 {
		return nil, "", true, fmt.Errorf("data URL has no payload separator")
	}
	meta := url[len("data:"):comma]
	mimeType = strings.TrimSuffix(strings.Split(meta, ";")[0], ";")
	if mimeType == "" {
		mimeType = "image/png"
	}
	data, err = base64.StdEncoding.DecodeString(url[comma+1:])
	if err != nil {
		return nil, "", true, fmt.Errorf("decode data URL payload: %w", err)
	}
	return data, mimeType, true, nil
}
