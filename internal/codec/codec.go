// Package codec wraps the pixel decoders and encoders the converter
// delegates to. Decoding accepts any registered source format; encoding
// produces exactly one target format per Codec.
package codec

import (
	"bytes"
	"fmt"
	"image"
	"sort"
	"strings"

	// Source formats understood by Decode.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Codec decodes source bytes and encodes them into a single target format.
type Codec interface {
	// Name is the format name used in configuration, e.g. "webp".
	Name() string

	// Extension is the canonical lowercase output extension, e.g. ".webp".
	Extension() string

	// Decode parses an encoded image.
	Decode(data []byte) (image.Image, error)

	// Encode serializes img at the given quality. Quality is passed
	// through unchanged; formats without a quality knob ignore it.
	Encode(img image.Image, quality int) ([]byte, error)
}

// Decode parses data with whichever registered decoder recognizes it.
func Decode(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty input")
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return img, nil
}

// Registry maps format names to Codec implementations.
type Registry struct {
	codecs map[string]Codec
}

// NewRegistry creates an empty codec registry.
func NewRegistry() *Registry {
	return &Registry{codecs: make(map[string]Codec)}
}

// DefaultRegistry returns a registry with every built-in target format.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&WebP{})
	r.Register(&PNG{})
	r.Register(&JPEG{})
	return r
}

// Register adds c under its Name, replacing any previous entry.
func (r *Registry) Register(c Codec) {
	r.codecs[strings.ToLower(c.Name())] = c
}

// Get returns the codec for the given format name.
func (r *Registry) Get(name string) (Codec, error) {
	c, ok := r.codecs[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown format '%s' — supported formats: %s", name, strings.Join(r.Names(), ", "))
	}
	return c, nil
}

// Names returns the registered format names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.codecs))
	for n := range r.codecs {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
