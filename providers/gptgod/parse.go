package gptgod

import (
	"encoding/json"
	"regexp"
	"strings"
)

// godResponse covers every field any of the parse strategies looks at. The
// backend populates different subsets depending on model and mood.
type godResponse struct {
	Image  string   `json:"image"`
	Images []string `json:"images"`
	Data   []struct {
		URL string `json:"url"`
	} `json:"data"`
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (r *godResponse) text() string {
	var parts []string
	for _, c := range r.Choices {
		if c.Message.Content != "" {
			parts = append(parts, c.Message.Content)
		}
	}
	return strings.Join(parts, "\n")
}

// A parseStrategy extracts one candidate image reference (data URL or
// remote URL) from a decoded response.
type parseStrategy struct {
	name    string
	extract func(*godResponse) (string, bool)
}

// parseStrategies run in order, strictest first, stopping at the first
// match. The order is part of the contract with the backend's observed
// behavior; do not reorder.
var parseStrategies = []parseStrategy{
	{
		name: "top-level image field",
		extract: func(r *godResponse) (string, bool) {
			return r.Image, r.Image != ""
		},
	},
	{
		name: "images array",
		extract: func(r *godResponse) (string, bool) {
			for _, url := range r.Images {
				if url != "" {
					return url, true
				}
			}
			return "", false
		},
	},
	{
		name: "data[0].url",
		extract: func(r *godResponse) (string, bool) {
			if len(r.Data) > 0 && r.Data[0].URL != "" {
				return r.Data[0].URL, true
			}
			return "", false
		},
	},
	{
		name: "markdown image link",
		extract: func(r *godResponse) (string, bool) {
			m := markdownImageRE.FindStringSubmatch(r.text())
			if m == nil {
				return "", false
			}
			return m[1], true
		},
	},
	{
		name: "bare image URL in text",
		extract: func(r *godResponse) (string, bool) {
			url := bareImageURLRE.FindString(r.text())
			return url, url != ""
		},
	},
}

var (
	markdownImageRE = regexp.MustCompile(`!\[[^\]]*\]\(\s*((?:https?://|data:image/)[^)\s]+)\s*\)`)
	bareImageURLRE  = regexp.MustCompile(`(?i)https?://[^\s<>"')]+\.(?:png|jpe?g|webp|gif)`)
)

// extractImageRef runs the cascade over a raw response body. The returned
// strategy name feeds the debug log.
func extractImageRef(body []byte) (ref, strategy string, err error) {
	var resp godResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", "", err
	}
	for _, s := range parseStrategies {
		if ref, ok := s.extract(&resp); ok {
			return ref, s.name, nil
		}
	}
	return "", "", nil
}
