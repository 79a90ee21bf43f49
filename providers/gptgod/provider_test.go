package gptgod

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/scenebrush/scenebrush/core"
	"github.com/scenebrush/scenebrush/imageutil"
	"github.com/scenebrush/scenebrush/providers/internal/chatwire"
)

var testPNG = imageutil.PlaceholderPNG(2, 2, 7, 8, 9)

func testDataURL() string {
	return chatwire.DataURL(testPNG, "image/png")
}

// newImageServer serves the test PNG for the remote-URL strategies.
func newImageServer() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(testPNG)
	}))
}

type capture struct {
	body map[string]json.RawMessage
}

func newAPIServer(t *testing.T, cap *capture, responseBody string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if cap != nil {
			if err := json.NewDecoder(r.Body).Decode(&cap.body); err != nil {
				t.Errorf("decode request: %v", err)
			}
		}
		w.Write([]byte(responseBody))
	}))
}

func genRequest(width, height int) *core.GenerationRequest {
	return &core.GenerationRequest{
		Structure: &core.ImageInput{Data: testPNG, MIMEType: "image/png"},
		Prompt:    "render it",
		Width:     width,
		Height:    height,
	}
}

// Each of the five response shapes must independently yield the image.
func TestResponseShapes(t *testing.T) {
	imageServer := newImageServer()
	defer imageServer.Close()
	remoteURL := imageServer.URL + "/result.png"

	cases := []struct {
		name string
		body string
	}{
		{
			"top-level image field",
			fmt.Sprintf(`{"image":%q}`, remoteURL),
		},
		{
			"images array with data URL",
			fmt.Sprintf(`{"images":[%q]}`, testDataURL()),
		},
		{
			"images array with remote URL",
			fmt.Sprintf(`{"images":[%q]}`, remoteURL),
		},
		{
			"openai data[0].url",
			fmt.Sprintf(`{"data":[{"url":%q}]}`, remoteURL),
		},
		{
			"markdown image link in content",
			fmt.Sprintf(`{"choices":[{"message":{"content":"Here you go: ![result](%s)"}}]}`, remoteURL),
		},
		{
			"bare image URL in content",
			fmt.Sprintf(`{"choices":[{"message":{"content":"Your image is ready at %s enjoy"}}]}`, remoteURL),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server := newAPIServer(t, nil, tc.body)
			defer server.Close()

			p := New(core.NewSecret("god-key"), WithBaseURL(server.URL))
			res, err := p.Generate(context.Background(), genRequest(1024, 1024))
			if err != nil {
				t.Fatalf("Generate() error = %v", err)
			}
			if !bytes.Equal(res.Data, testPNG) {
				t.Error("image bytes mismatch")
			}
			if res.MIMEType != "image/png" {
				t.Errorf("MIMEType = %q", res.MIMEType)
			}
		})
	}
}

// A stricter shape must win over a looser one present in the same body.
func TestStrategyOrderPrecedence(t *testing.T) {
	imageServer := newImageServer()
	defer imageServer.Close()

	body := fmt.Sprintf(`{"images":[%q],"choices":[{"message":{"content":"![x](https://example.invalid/decoy.png)"}}]}`, testDataURL())
	server := newAPIServer(t, nil, body)
	defer server.Close()

	p := New(core.NewSecret("god-key"), WithBaseURL(server.URL))
	res, err := p.Generate(context.Background(), genRequest(1024, 1024))
	if err != nil {
		t.Fatalf("Generate() error = %v; the images array must win, never the markdown decoy", err)
	}
	if !bytes.Equal(res.Data, testPNG) {
		t.Error("wrong image selected")
	}
}

func TestExhaustedCascadeIsMalformed(t *testing.T) {
	server := newAPIServer(t, nil, `{"choices":[{"message":{"content":"no links here, sorry"}}]}`)
	defer server.Close()

	p := New(core.NewSecret("god-key"), WithBaseURL(server.URL))
	_, err := p.Generate(context.Background(), genRequest(1024, 1024))
	if !errors.Is(err, core.ErrMalformedResponse) {
		t.Fatalf("error = %v, want ErrMalformedResponse", err)
	}
}

func TestModelSuffixPerTier(t *testing.T) {
	cases := []struct {
		width, height int
		want          string
	}{
		{1024, 1024, "gemini-3-pro-image-preview"},
		{2048, 1024, "gemini-3-pro-image-preview-2k"},
		{4096, 4096, "gemini-3-pro-image-preview-4k"},
	}
	for _, tc := range cases {
		cap := &capture{}
		server := newAPIServer(t, cap, fmt.Sprintf(`{"images":[%q]}`, testDataURL()))

		p := New(core.NewSecret("god-key"), WithBaseURL(server.URL))
		if _, err := p.Generate(context.Background(), genRequest(tc.width, tc.height)); err != nil {
			t.Fatal(err)
		}
		var model string
		if err := json.Unmarshal(cap.body["model"], &model); err != nil {
			t.Fatal(err)
		}
		if model != tc.want {
			t.Errorf("%dx%d: model = %q, want %q", tc.width, tc.height, model, tc.want)
		}
		server.Close()
	}
}

// A stored model id that already carries a suffix must not double-suffix.
func TestStoredSuffixStripped(t *testing.T) {
	cap := &capture{}
	server := newAPIServer(t, cap, fmt.Sprintf(`{"images":[%q]}`, testDataURL()))
	defer server.Close()

	p := New(core.NewSecret("god-key"), WithBaseURL(server.URL), WithModel("custom-model-4k"))
	if _, err := p.Generate(context.Background(), genRequest(2048, 2048)); err != nil {
		t.Fatal(err)
	}
	var model string
	if err := json.Unmarshal(cap.body["model"], &model); err != nil {
		t.Fatal(err)
	}
	if model != "custom-model-2k" {
		t.Errorf("model = %q, want custom-model-2k", model)
	}
}

func TestPromptCarriesImageCountInstruction(t *testing.T) {
	cap := &capture{}
	server := newAPIServer(t, cap, fmt.Sprintf(`{"images":[%q]}`, testDataURL()))
	defer server.Close()

	p := New(core.NewSecret("god-key"), WithBaseURL(server.URL))
	if _, err := p.Generate(context.Background(), genRequest(1024, 1024)); err != nil {
		t.Fatal(err)
	}

	var msgs []struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.Unmarshal(cap.body["messages"], &msgs); err != nil {
		t.Fatal(err)
	}
	if len(msgs) != 1 || len(msgs[0].Content) == 0 {
		t.Fatal("unexpected message shape")
	}
	text := msgs[0].Content[0].Text
	if !strings.HasPrefix(text, "render it") {
		t.Errorf("user prompt must lead, got %q", text)
	}
	if !strings.HasSuffix(text, "请生成 1 张图片。") {
		t.Errorf("single-image instruction missing, got %q", text)
	}

	var stream bool
	if err := json.Unmarshal(cap.body["stream"], &stream); err != nil || stream {
		t.Errorf("stream = %v (err %v), want false", stream, err)
	}
	var n int
	if err := json.Unmarshal(cap.body["n"], &n); err != nil || n != 1 {
		t.Errorf("n = %d (err %v), want 1", n, err)
	}
}
