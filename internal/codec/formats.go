package codec

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"

	"github.com/chai2010/webp"
)

// WebP encodes to lossy (or lossless) WebP via libwebp.
type WebP struct {
	Lossless bool
}

func (w *WebP) Name() string      { return "webp" }
func (w *WebP) Extension() string { return ".webp" }

func (w *WebP) Decode(data []byte) (image.Image, error) { return Decode(data) }

func (w *WebP) Encode(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	opts := &webp.Options{Lossless: w.Lossless, Quality: float32(quality)}
	if err := webp.Encode(&buf, img, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// PNG re-encodes as PNG. Quality is ignored.
type PNG struct{}

func (p *PNG) Name() string      { return "png" }
func (p *PNG) Extension() string { return ".png" }

func (p *PNG) Decode(data []byte) (image.Image, error) { return Decode(data) }

func (p *PNG) Encode(img image.Image, _ int) ([]byte, error) {
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// JPEG re-encodes as baseline JPEG.
type JPEG struct{}

func (j *JPEG) Name() string      { return "jpeg" }
func (j *JPEG) Extension() string { return ".jpg" }

func (j *JPEG) Decode(data []byte) (image.Image, error) { return Decode(data) }

// Encode passes quality through; image/jpeg clamps it into 1..100.
func (j *JPEG) Encode(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
