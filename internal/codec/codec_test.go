package codec

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"
)

func testImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 32), G: uint8(y * 32), B: 128, A: 255})
		}
	}
	return img
}

func encodedPNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, testImage()); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func encodedJPEG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, testImage(), nil); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestDecodeKnownFormats(t *testing.T) {
	for name, data := range map[string][]byte{"png": encodedPNG(t), "jpeg": encodedJPEG(t)} {
		img, err := Decode(data)
		if err != nil {
			t.Errorf("Decode(%s): %v", name, err)
			continue
		}
		if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 8 {
			t.Errorf("Decode(%s) bounds = %v", name, b)
		}
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	if _, err := Decode([]byte("definitely not an image")); err == nil {
		t.Fatal("expected error for garbage input")
	}
}

func TestDecodeRejectsEmpty(t *testing.T) {
	if _, err := Decode(nil); err == nil {
		t.Fatal("expected error for empty input")
	}
}

func TestDecodeRejectsTruncatedPNG(t *testing.T) {
	data := encodedPNG(t)
	if _, err := Decode(data[:len(data)/2]); err == nil {
		t.Fatal("expected error for truncated png")
	}
}

func TestWebPEncodeProducesRIFF(t *testing.T) {
	w := &WebP{}
	for _, q := range []int{0, 85, 100} {
		out, err := w.Encode(testImage(), q)
		if err != nil {
			t.Fatalf("Encode(q=%d): %v", q, err)
		}
		if len(out) < 12 || string(out[:4]) != "RIFF" || string(out[8:12]) != "WEBP" {
			t.Errorf("Encode(q=%d) did not produce a WebP container", q)
		}
	}
}

func TestWebPRoundTrip(t *testing.T) {
	w := &WebP{Lossless: true}
	out, err := w.Encode(testImage(), 100)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	img, err := w.Decode(out)
	if err != nil {
		t.Fatalf("Decode of own output: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 8 {
		t.Errorf("bounds = %v", b)
	}
}

func TestPNGAndJPEGEncode(t *testing.T) {
	for _, c := range []Codec{&PNG{}, &JPEG{}} {
		out, err := c.Encode(testImage(), 85)
		if err != nil {
			t.Errorf("%s Encode: %v", c.Name(), err)
			continue
		}
		if _, err := c.Decode(out); err != nil {
			t.Errorf("%s output does not decode: %v", c.Name(), err)
		}
	}
}

func TestRegistryDefault(t *testing.T) {
	r := DefaultRegistry()

	want := []string{"jpeg", "png", "webp"}
	got := r.Names()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("Names() = %v, want %v", got, want)
	}

	c, err := r.Get("WebP")
	if err != nil {
		t.Fatalf("Get(WebP): %v", err)
	}
	if c.Extension() != ".webp" {
		t.Errorf("Extension() = %q, want .webp", c.Extension())
	}
}

func TestRegistryUnknown(t *testing.T) {
	_, err := DefaultRegistry().Get("avif")
	if err == nil {
		t.Fatal("expected error for unknown format")
	}
	if !strings.Contains(err.Error(), "supported formats: jpeg, png, webp") {
		t.Errorf("error should list supported formats: %v", err)
	}
}
