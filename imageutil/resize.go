package imageutil

import (
	"bytes"
	"image/png"

	"github.com/nfnt/resize"

	"github.com/scenebrush/scenebrush/core"
)

// ShrinkToTier downscales an input image whose larger dimension exceeds the
// tier's pixel size, preserving aspect ratio. Backends reject oversized
// payloads, and uploading an 8K render for a 1K request is wasted bandwidth.
// Images already within bounds, and bytes that fail to decode, are returned
// unchanged.
func ShrinkToTier(data []byte, tier core.ResolutionTier) []byte {
	img, err := decodeImage(data)
	if err != nil {
		return data
	}

	limit := tier.PixelSize()
	bounds := img.Bounds()
	if bounds.Dx() <= limit && bounds.Dy() <= limit {
		return data
	}

	shrunk := resize.Thumbnail(uint(limit), uint(limit), img, resize.Lanczos3)

	var buf bytes.Buffer
	if err := png.Encode(&buf, shrunk); err != nil {
		return data
	}
	return buf.Bytes()
}
