// Package imageutil holds the image plumbing shared by every provider:
// PNG normalization, MIME detection, aspect-ratio matching, downloads, and
// the dependency-free placeholder writer.
package imageutil

import (
	"bytes"
	"image"
	"image/png"
	"path"
	"strings"

	"github.com/chai2010/webp"

	_ "image/gif"
	_ "image/jpeg"
)

var pngSignature = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

// IsPNG reports whether data starts with the PNG signature.
func IsPNG(data []byte) bool {
	return len(data) >= len(pngSignature) && bytes.Equal(data[:len(pngSignature)], pngSignature)
}

func isWebP(data []byte) bool {
	return len(data) >= 12 && bytes.Equal(data[:4], []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WEBP"))
}

// EnsurePNG converts arbitrary supported raster bytes to PNG. Bytes that are
// already PNG pass through unchanged. Undecodable input is returned as-is
// with its original MIME type; this function never fails, it degrades.
func EnsurePNG(data []byte, mimeType string) ([]byte, string) {
	if len(data) == 0 {
		return data, mimeType
	}
	if IsPNG(data) {
		return data, "image/png"
	}

	img, err := decodeImage(data)
	if err != nil {
		return data, mimeType
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return data, mimeType
	}
	return buf.Bytes(), "image/png"
}

// decodeImage decodes PNG, JPEG, GIF, or WebP bytes.
func decodeImage(data []byte) (image.Image, error) {
	if isWebP(data) {
		return webp.Decode(bytes.NewReader(data))
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	return img, err
}

// Dimensions returns an image's pixel size without decoding pixel data.
// Undecodable input yields (0, 0).
func Dimensions(data []byte) (width, height int) {
	if isWebP(data) {
		img, err := webp.Decode(bytes.NewReader(data))
		if err != nil {
			return 0, 0
		}
		b := img.Bounds()
		return b.Dx(), b.Dy()
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0
	}
	return cfg.Width, cfg.Height
}

// DetectMIME guesses an image MIME type from a URL or filename extension,
// falling back to magic bytes, then to image/png.
func DetectMIME(urlOrName string, data []byte) string {
	name := urlOrName
	if i := strings.IndexAny(name, "?#"); i >= 0 {
		name = name[:i]
	}
	switch strings.ToLower(path.Ext(name)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".webp":
		return "image/webp"
	case ".gif":
		return "image/gif"
	}

	switch {
	case IsPNG(data):
		return "image/png"
	case len(data) >= 3 && data[0] == 0xFF && data[1] == 0xD8 && data[2] == 0xFF:
		return "image/jpeg"
	case isWebP(data):
		return "image/webp"
	}
	return "image/png"
}
