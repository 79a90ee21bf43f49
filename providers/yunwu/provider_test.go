package yunwu

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/scenebrush/scenebrush/core"
)

var testImage = []byte{0x01, 0x02, 0x03, 0x04}

type capturedPart struct {
	Text       string `json:"text"`
	InlineData *struct {
		Data string `json:"data"`
	} `json:"inline_data"`
}

type capture struct {
	path  string
	query string
	parts []capturedPart
}

func newServer(t *testing.T, cap *capture, respond func(w http.ResponseWriter)) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cap.path = r.URL.Path
		cap.query = r.URL.RawQuery
		var req struct {
			Contents []struct {
				Parts []capturedPart `json:"parts"`
			} `json:"contents"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if len(req.Contents) == 1 {
			cap.parts = req.Contents[0].Parts
		}
		respond(w)
	}))
}

func imageBody() []byte {
	b64 := base64.StdEncoding.EncodeToString(testImage)
	return []byte(fmt.Sprintf(
		`{"candidates":[{"content":{"parts":[{"inline_data":{"mime_type":"image/png","data":%q}}]}}]}`, b64))
}

func decodePart(t *testing.T, part capturedPart) string {
	t.Helper()
	if part.InlineData == nil {
		t.Fatal("part has no inline data")
	}
	data, err := base64.StdEncoding.DecodeString(part.InlineData.Data)
	if err != nil {
		t.Fatalf("base64: %v", err)
	}
	return string(data)
}

func TestGenerateRequestShape(t *testing.T) {
	cap := &capture{}
	server := newServer(t, cap, func(w http.ResponseWriter) {
		w.Write(imageBody())
	})
	defer server.Close()

	p := New(core.NewSecret("relay-key"), WithBaseURL(server.URL), WithModel("test-model"))
	req := &core.GenerationRequest{
		Structure: &core.ImageInput{Data: []byte("structure"), MIMEType: "image/png"},
		Reference: &core.ImageInput{Data: []byte("style"), MIMEType: "image/png"},
		Prompt:    "paint it",
		Width:     1920,
		Height:    1080,
	}
	res, err := p.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if !bytes.Equal(res.Data, testImage) {
		t.Error("image data mismatch")
	}

	if cap.path != "/v1beta/models/test-model:generateContent" {
		t.Errorf("path = %q", cap.path)
	}
	if !strings.Contains(cap.query, "key=relay-key") {
		t.Errorf("key must travel as a query parameter, got %q", cap.query)
	}
	if len(cap.parts) != 3 {
		t.Fatalf("parts = %d, want 3", len(cap.parts))
	}
	if cap.parts[0].Text != "paint it" {
		t.Errorf("first part = %q, want prompt text", cap.parts[0].Text)
	}
	if got := decodePart(t, cap.parts[1]); got != "structure" {
		t.Errorf("second part = %q, want structure image", got)
	}
	if got := decodePart(t, cap.parts[2]); got != "style" {
		t.Errorf("third part = %q, want reference image", got)
	}
}

func TestEditOrderingReferenceBetweenSourceAndMask(t *testing.T) {
	cap := &capture{}
	server := newServer(t, cap, func(w http.ResponseWriter) {
		w.Write(imageBody())
	})
	defer server.Close()

	p := New(core.NewSecret("relay-key"), WithBaseURL(server.URL))
	req := &core.GenerationRequest{
		Structure: &core.ImageInput{Data: []byte("source"), MIMEType: "image/png"},
		Reference: &core.ImageInput{Data: []byte("style"), MIMEType: "image/png"},
		Mask:      &core.ImageInput{Data: []byte("mask"), MIMEType: "image/png"},
		Prompt:    "swap the roof",
		Width:     1024,
		Height:    1024,
	}
	if _, err := p.Edit(context.Background(), req); err != nil {
		t.Fatal(err)
	}

	if len(cap.parts) != 4 {
		t.Fatalf("parts = %d, want 4", len(cap.parts))
	}
	want := []string{"source", "style", "mask"}
	for i, name := range want {
		if got := decodePart(t, cap.parts[i+1]); got != name {
			t.Errorf("part %d = %q, want %q", i+1, got, name)
		}
	}
}

func TestTextOnlyResponseIsNoImageError(t *testing.T) {
	cap := &capture{}
	server := newServer(t, cap, func(w http.ResponseWriter) {
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"sorry, no"}]}}]}`))
	})
	defer server.Close()

	p := New(core.NewSecret("relay-key"), WithBaseURL(server.URL))
	_, err := p.Generate(context.Background(), &core.GenerationRequest{
		Prompt: "x", Width: 1024, Height: 1024,
	})
	if !errors.Is(err, core.ErrNoImage) {
		t.Fatalf("error = %v, want ErrNoImage", err)
	}
	var perr *core.ProviderError
	if errors.As(err, &perr) && !strings.Contains(perr.Message, "sorry, no") {
		t.Errorf("message should carry the model text, got %q", perr.Message)
	}
}

func TestAuthFailureClassified(t *testing.T) {
	cap := &capture{}
	server := newServer(t, cap, func(w http.ResponseWriter) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	defer server.Close()

	p := New(core.NewSecret("relay-key"), WithBaseURL(server.URL))
	_, err := p.Generate(context.Background(), &core.GenerationRequest{
		Prompt: "x", Width: 1024, Height: 1024,
	})
	if !errors.Is(err, core.ErrAuth) {
		t.Fatalf("error = %v, want ErrAuth", err)
	}
}

func TestDefaultsApplied(t *testing.T) {
	p := New(core.NewSecret("k"))
	if p.config.BaseURL != DefaultBaseURL {
		t.Errorf("BaseURL = %q", p.config.BaseURL)
	}
	if p.config.ModelID != DefaultModel {
		t.Errorf("ModelID = %q", p.config.ModelID)
	}
	if p.Kind() != core.ProviderYunwu {
		t.Errorf("Kind() = %q", p.Kind())
	}
}
