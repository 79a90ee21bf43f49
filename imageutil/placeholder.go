package imageutil

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"hash/crc32"
)

// PlaceholderPNG hand-packs a solid-colour RGB PNG from chunk primitives.
// It exists for the case where a model returns only text: the caller still
// receives a displayable image. The encoding is deliberately self-contained
// so it works even when no image codec is available.
func PlaceholderPNG(width, height int, r, g, b uint8) []byte {
	var out bytes.Buffer
	out.Write(pngSignature)

	// IHDR: 8-bit RGB, no interlace.
	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:4], uint32(width))
	binary.BigEndian.PutUint32(ihdr[4:8], uint32(height))
	ihdr[8] = 8 // bit depth
	ihdr[9] = 2 // colour type: truecolour
	writeChunk(&out, "IHDR", ihdr)

	// Scanlines: filter byte 0 followed by RGB pixels.
	raw := make([]byte, 0, height*(1+width*3))
	row := make([]byte, 1+width*3)
	for x := 0; x < width; x++ {
		row[1+x*3] = r
		row[2+x*3] = g
		row[3+x*3] = b
	}
	for y := 0; y < height; y++ {
		raw = append(raw, row...)
	}

	var compressed bytes.Buffer
	zw := zlib.NewWriter(&compressed)
	zw.Write(raw)
	zw.Close()
	writeChunk(&out, "IDAT", compressed.Bytes())

	writeChunk(&out, "IEND", nil)
	return out.Bytes()
}

// writeChunk emits length, type tag, data, and the CRC32 over tag+data.
func writeChunk(out *bytes.Buffer, tag string, data []byte) {
	var length [4]byte
	binary.BigEndian.PutUint32(length[:], uint32(len(data)))
	out.Write(length[:])
	out.WriteString(tag)
	out.Write(data)

	crc := crc32.NewIEEE()
	crc.Write([]byte(tag))
	crc.Write(data)
	var sum [4]byte
	binary.BigEndian.PutUint32(sum[:], crc.Sum32())
	out.Write(sum[:])
}
