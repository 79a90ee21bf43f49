package dispatch

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/jpeg"
	"io"
	"log"
	"strings"
	"testing"

	"github.com/scenebrush/scenebrush/config"
	"github.com/scenebrush/scenebrush/core"
	"github.com/scenebrush/scenebrush/imageutil"
	"github.com/scenebrush/scenebrush/providers"
)

type fakeProvider struct {
	lastGenerate *core.GenerationRequest
	lastEdit     *core.GenerationRequest
	result       *core.ImageResult
	err          error
}

func (f *fakeProvider) Kind() core.ProviderKind { return core.ProviderGoogle }
func (f *fakeProvider) Generate(_ context.Context, req *core.GenerationRequest) (*core.ImageResult, error) {
	f.lastGenerate = req
	return f.result, f.err
}
func (f *fakeProvider) Edit(_ context.Context, req *core.GenerationRequest) (*core.ImageResult, error) {
	f.lastEdit = req
	return f.result, f.err
}

func newTestDispatcher(t *testing.T, fake *fakeProvider) *Dispatcher {
	t.Helper()
	store := config.NewStore(t.TempDir())
	if err := store.SetEntry(config.Entry{Name: "google", Type: "google", APIKey: "k"}); err != nil {
		t.Fatal(err)
	}
	d := New(store)
	d.create = func(cfg core.ProviderConfig) (providers.ImageProvider, error) {
		return fake, nil
	}
	return d
}

func TestGenerateComposesPromptAndNormalizesResult(t *testing.T) {
	jpeg := encodeJPEG(t)
	fake := &fakeProvider{result: &core.ImageResult{Data: jpeg, MIMEType: "image/jpeg"}}
	d := newTestDispatcher(t, fake)

	res, err := d.Generate(context.Background(), &Request{
		Structure: &core.ImageInput{Data: imageutil.PlaceholderPNG(4, 4, 1, 2, 3), MIMEType: "image/png"},
		UserText:  "make it cyberpunk",
		Width:     1024,
		Height:    1024,
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if fake.lastGenerate == nil {
		t.Fatal("provider not invoked")
	}
	got := fake.lastGenerate.Prompt
	if !strings.HasSuffix(got, "make it cyberpunk") {
		t.Errorf("user text must end the prompt, got %q", got)
	}
	if got == "make it cyberpunk" {
		t.Error("prompt must be composed from a template, not passed raw")
	}

	// A JPEG result must come back as PNG.
	if res.MIMEType != "image/png" || !imageutil.IsPNG(res.Data) {
		t.Errorf("result not normalized to PNG: mime=%q", res.MIMEType)
	}
}

func TestEditRequiresSource(t *testing.T) {
	fake := &fakeProvider{result: &core.ImageResult{Data: imageutil.PlaceholderPNG(2, 2, 0, 0, 0), MIMEType: "image/png"}}
	d := newTestDispatcher(t, fake)

	_, err := d.Edit(context.Background(), &Request{UserText: "x", Width: 1024, Height: 1024})
	if err == nil {
		t.Fatal("edit without a source image must fail")
	}
	if fake.lastEdit != nil {
		t.Error("provider must not be invoked")
	}
}

func TestConfigErrorsSurfaceBeforeNetwork(t *testing.T) {
	store := config.NewStore(t.TempDir())
	d := New(store)

	// Default entries have no API key, so creation fails as configuration.
	_, err := d.Generate(context.Background(), &Request{
		UserText: "x", Width: 1024, Height: 1024,
	})
	if !errors.Is(err, core.ErrConfig) {
		t.Fatalf("error = %v, want ErrConfig", err)
	}
}

func TestStatusProgression(t *testing.T) {
	fake := &fakeProvider{result: &core.ImageResult{Data: imageutil.PlaceholderPNG(2, 2, 0, 0, 0), MIMEType: "image/png"}}

	var statuses []string
	store := config.NewStore(t.TempDir())
	if err := store.SetEntry(config.Entry{Name: "google", Type: "google", APIKey: "k"}); err != nil {
		t.Fatal(err)
	}
	d := New(store, WithStatus(func(s string) { statuses = append(statuses, s) }))
	d.create = func(core.ProviderConfig) (providers.ImageProvider, error) { return fake, nil }

	if _, err := d.Generate(context.Background(), &Request{UserText: "x", Width: 1024, Height: 1024}); err != nil {
		t.Fatal(err)
	}
	want := []string{"Sending to AI...", "Loading result..."}
	if len(statuses) != len(want) {
		t.Fatalf("statuses = %v", statuses)
	}
	for i := range want {
		if statuses[i] != want[i] {
			t.Errorf("status %d = %q, want %q", i, statuses[i], want[i])
		}
	}
}

func TestProviderInheritsDispatchLogger(t *testing.T) {
	fake := &fakeProvider{result: &core.ImageResult{Data: imageutil.PlaceholderPNG(2, 2, 0, 0, 0), MIMEType: "image/png"}}
	logger := log.New(io.Discard, "", 0)

	store := config.NewStore(t.TempDir())
	if err := store.SetEntry(config.Entry{Name: "google", Type: "google", APIKey: "k"}); err != nil {
		t.Fatal(err)
	}
	var got core.Logger
	d := New(store, WithLogger(logger))
	d.create = func(cfg core.ProviderConfig) (providers.ImageProvider, error) {
		got = cfg.Logger
		return fake, nil
	}

	if _, err := d.Generate(context.Background(), &Request{UserText: "x", Width: 1024, Height: 1024}); err != nil {
		t.Fatal(err)
	}
	if got != logger {
		t.Errorf("provider config logger = %v, want the dispatcher's", got)
	}
}

func TestProviderErrorPassesThrough(t *testing.T) {
	fake := &fakeProvider{err: &core.ProviderError{Provider: "google", Err: core.ErrRateLimited, Message: "slow down"}}
	d := newTestDispatcher(t, fake)

	_, err := d.Generate(context.Background(), &Request{UserText: "x", Width: 1024, Height: 1024})
	if !errors.Is(err, core.ErrRateLimited) {
		t.Fatalf("error = %v, want ErrRateLimited passed through untouched", err)
	}
}

func TestFinalizeSentinelSelectsFinalizeTemplate(t *testing.T) {
	fake := &fakeProvider{result: &core.ImageResult{Data: imageutil.PlaceholderPNG(2, 2, 0, 0, 0), MIMEType: "image/png"}}
	d := newTestDispatcher(t, fake)

	_, err := d.Edit(context.Background(), &Request{
		Structure: &core.ImageInput{Data: imageutil.PlaceholderPNG(4, 4, 1, 2, 3), MIMEType: "image/png"},
		UserText:  "[FINALIZE_COMPOSITE]",
		Width:     1024,
		Height:    1024,
	})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(fake.lastEdit.Prompt, "[FINALIZE_COMPOSITE]") {
		t.Error("sentinel must select a template, never appear in the prompt")
	}
}

// encodeJPEG produces a small JPEG for result-normalization tests.
func encodeJPEG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for i := range img.Pix {
		img.Pix[i] = 0x80
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}
