// Package img2webp provides the public Go library API for img2webp.
//
// img2webp recursively converts the raster images under an input directory
// into WebP (or another registered format), mirroring the directory tree
// under an output directory and skipping files that were already converted.
//
// # Basic Usage
//
//	client, err := img2webp.New(img2webp.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	opts := img2webp.DefaultRunOptions()
//	opts.Quality = 80
//	report, err := client.Convert(ctx, "photos", "web", opts)
//	if err != nil {
//	    log.Fatal(err) // input missing or output not creatable
//	}
//	for _, e := range report.Failures() {
//	    log.Printf("%s: %v", e.Task.Source, e.Outcome.Err)
//	}
package img2webp

import (
	"context"
	"fmt"

	"github.com/bianoble/img2webp/internal/codec"
	"github.com/bianoble/img2webp/internal/engine"
)

// Converter converts a directory tree.
type Converter interface {
	Convert(ctx context.Context, inputRoot, outputRoot string, opts RunOptions) (*Report, error)
}

// StatusReporter reports what Convert would do without writing anything.
type StatusReporter interface {
	Status(ctx context.Context, inputRoot, outputRoot string, opts RunOptions) ([]TaskStatus, error)
}

// Options configures an img2webp client.
type Options struct {
	// Format is the target format name: "webp" (default), "png", or "jpeg".
	// Ignored when Codec is set.
	Format string

	// Lossless selects lossless WebP encoding.
	Lossless bool

	// Codec overrides the built-in codecs.
	Codec Codec
}

// Client is the main entry point for the img2webp library.
// It implements Converter and StatusReporter.
type Client struct {
	conv *engine.Converter
}

// New creates a new img2webp Client.
func New(opts Options) (*Client, error) {
	c := opts.Codec
	if c == nil {
		reg := codec.DefaultRegistry()
		if opts.Lossless {
			reg.Register(&codec.WebP{Lossless: true})
		}
		format := opts.Format
		if format == "" {
			format = "webp"
		}
		var err error
		c, err = reg.Get(format)
		if err != nil {
			return nil, fmt.Errorf("selecting codec: %w", err)
		}
	}
	return &Client{conv: &engine.Converter{Codec: c}}, nil
}

// Format returns the target format name.
func (c *Client) Format() string {
	return c.conv.Codec.Name()
}

// Convert converts every candidate under inputRoot into outputRoot. Per-file
// problems are recorded in the report; the error is non-nil only when the
// run could not start or ctx was cancelled, in which case the partial
// report is returned alongside ctx.Err().
func (c *Client) Convert(ctx context.Context, inputRoot, outputRoot string, opts RunOptions) (*Report, error) {
	return c.conv.Run(ctx, inputRoot, outputRoot, opts)
}

// Status reports each candidate's state without writing anything.
func (c *Client) Status(ctx context.Context, inputRoot, outputRoot string, opts RunOptions) ([]TaskStatus, error) {
	return c.conv.Status(ctx, inputRoot, outputRoot, opts)
}

// Convert is a shortcut for converting a tree to WebP at the given quality
// with default options.
func Convert(ctx context.Context, inputRoot, outputRoot string, quality int) (*Report, error) {
	client, err := New(Options{})
	if err != nil {
		return nil, err
	}
	opts := DefaultRunOptions()
	opts.Quality = quality
	return client.Convert(ctx, inputRoot, outputRoot, opts)
}
