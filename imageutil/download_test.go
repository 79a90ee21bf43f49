package imageutil

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/scenebrush/scenebrush/core"
)

func TestDownloadSuccess(t *testing.T) {
	payload := PlaceholderPNG(4, 4, 9, 9, 9)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(payload)
	}))
	defer server.Close()

	data, mime, err := Download(context.Background(), server.URL+"/result.png")
	if err != nil {
		t.Fatalf("Download() error = %v", err)
	}
	if mime != "image/png" {
		t.Errorf("mime = %q, want image/png", mime)
	}
	if !bytes.Equal(data, payload) {
		t.Error("payload mismatch")
	}
}

func TestDownloadMIMEFallbackToExtension(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/octet-stream")
		w.Write([]byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00})
	}))
	defer server.Close()

	_, mime, err := Download(context.Background(), server.URL+"/photo.jpeg")
	if err != nil {
		t.Fatalf("Download() error = %v", err)
	}
	if mime != "image/jpeg" {
		t.Errorf("mime = %q, want image/jpeg", mime)
	}
}

func TestDownloadNon200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "expired signature", http.StatusForbidden)
	}))
	defer server.Close()

	_, _, err := Download(context.Background(), server.URL)
	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("error = %v, want *HTTPError", err)
	}
	if httpErr.Status != http.StatusForbidden {
		t.Errorf("Status = %d, want 403", httpErr.Status)
	}
	if httpErr.Body == "" {
		t.Error("error should carry the response body")
	}
}

func TestShrinkToTier(t *testing.T) {
	big := PlaceholderPNG(3000, 1500, 5, 5, 5)
	shrunk := ShrinkToTier(big, core.Tier1K)

	img, err := decodeImage(shrunk)
	if err != nil {
		t.Fatalf("decode shrunk: %v", err)
	}
	if img.Bounds().Dx() != 1024 {
		t.Errorf("width = %d, want 1024", img.Bounds().Dx())
	}
	if img.Bounds().Dy() != 512 {
		t.Errorf("height = %d, want 512 (aspect preserved)", img.Bounds().Dy())
	}

	small := PlaceholderPNG(640, 480, 5, 5, 5)
	if got := ShrinkToTier(small, core.Tier1K); !bytes.Equal(got, small) {
		t.Error("in-bounds image should pass through unchanged")
	}

	if got := ShrinkToTier([]byte("junk"), core.Tier1K); string(got) != "junk" {
		t.Error("undecodable input should pass through unchanged")
	}
}
