// Package geminiwire holds the Gemini generateContent wire format shared by
// the google REST fallback and the yunwu provider.
//
// Responses in the wild use two sibling naming conventions for the same
// fields: inlineData/inline_data, mimeType/mime_type, and data/bytes. The
// parse side tolerates all of them, trying each alias before declaring a
// field absent. Requests are emitted in snake_case, which both backends
// accept.
package geminiwire

import (
	"encoding/base64"
	"encoding/json"
)

// Request is the generateContent request envelope.
type Request struct {
	Contents         []Content         `json:"contents"`
	GenerationConfig *GenerationConfig `json:"generationConfig,omitempty"`
}

// Content groups the ordered parts of one message.
type Content struct {
	Parts []Part `json:"parts"`
}

// Part is either text or inline image data.
type Part struct {
	Text       string `json:"text,omitempty"`
	InlineData *Blob  `json:"inline_data,omitempty"`
}

// Blob is base64 image data plus its MIME type.
type Blob struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

// GenerationConfig carries the image output settings.
type GenerationConfig struct {
	ResponseModalities []string     `json:"responseModalities,omitempty"`
	ImageConfig        *ImageConfig `json:"imageConfig,omitempty"`
	Temperature        *float64     `json:"temperature,omitempty"`
	MaxOutputTokens    int          `json:"maxOutputTokens,omitempty"`
	CandidateCount     int          `json:"candidateCount,omitempty"`
}

// ImageConfig selects resolution tier and aspect ratio.
type ImageConfig struct {
	AspectRatio string `json:"aspectRatio,omitempty"`
	ImageSize   string `json:"imageSize,omitempty"`
}

// TextPart builds a text part.
func TextPart(text string) Part {
	return Part{Text: text}
}

// InlinePart builds an inline image part from raw bytes.
func InlinePart(data []byte, mimeType string) Part {
	return Part{InlineData: &Blob{
		MimeType: mimeType,
		Data:     base64.StdEncoding.EncodeToString(data),
	}}
}

// Response is the generateContent response envelope.
type Response struct {
	Candidates []Candidate `json:"candidates"`
}

// Candidate is one response alternative.
type Candidate struct {
	Content struct {
		Parts []RespPart `json:"parts"`
	} `json:"content"`
}

// RespPart is a response part with field-name alias tolerance.
type RespPart struct {
	Text        string    `json:"text"`
	InlineCamel *RespBlob `json:"inlineData"`
	InlineSnake *RespBlob `json:"inline_data"`
}

// RespBlob is inline image data with alias tolerance on every field.
type RespBlob struct {
	MimeCamel string `json:"mimeType"`
	MimeSnake string `json:"mime_type"`
	Data      string `json:"data"`
	Bytes     string `json:"bytes"`
}

func (p *RespPart) blob() *RespBlob {
	if p.InlineCamel != nil {
		return p.InlineCamel
	}
	return p.InlineSnake
}

// MIMEType returns the blob's MIME type, defaulting to image/png.
func (b *RespBlob) MIMEType() string {
	switch {
	case b.MimeCamel != "":
		return b.MimeCamel
	case b.MimeSnake != "":
		return b.MimeSnake
	default:
		return "image/png"
	}
}

// Payload returns the base64 image data under whichever field name the
// backend used.
func (b *RespBlob) Payload() string {
	if b.Data != "" {
		return b.Data
	}
	return b.Bytes
}

// ParseResponse unmarshals a generateContent response body.
func ParseResponse(body []byte) (*Response, error) {
	var resp Response
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// FirstImage returns the first decodable inline image in the response.
func (r *Response) FirstImage() (data []byte, mimeType string, ok bool) {
	if len(r.Candidates) == 0 {
		return nil, "", false
	}
	for _, part := range r.Candidates[0].Content.Parts {
		blob := part.blob()
		if blob == nil {
			continue
		}
		payload := blob.Payload()
		if payload == "" {
			continue
		}
		decoded, err := base64.StdEncoding.DecodeString(payload)
		if err != nil || len(decoded) == 0 {
			continue
		}
		return decoded, blob.MIMEType(), true
	}
	return nil, "", false
}

// TextParts collects the text parts of the first candidate.
func (r *Response) TextParts() []string {
	if len(r.Candidates) == 0 {
		return nil
	}
	var texts []string
	for _, part := range r.Candidates[0].Content.Parts {
		if part.Text != "" {
			texts = append(texts, part.Text)
		}
	}
	return texts
}
