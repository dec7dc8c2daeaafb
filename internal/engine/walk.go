package engine

import (
	"context"
	"io/fs"
	"iter"
	"path/filepath"
	"strings"

	"github.com/bianoble/img2webp/internal/pathmap"
)

// Walker enumerates candidate source files under Root.
type Walker struct {
	Root       string
	Extensions map[string]bool // lowercase, leading dot
	Exclude    []string        // directory-name glob patterns, matched case-insensitively
	Prune      []string        // directories skipped entirely
}

// NewWalker builds a Walker for inputRoot from opts. outputRoot is pruned
// so an output tree nested inside the input tree is never re-read.
func NewWalker(inputRoot, outputRoot string, opts Options) *Walker {
	exts := opts.Extensions
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	set := make(map[string]bool, len(exts))
	for _, e := range exts {
		set[pathmap.NormalizeExt(e)] = true
	}

	var prune []string
	if outputRoot != "" {
		if abs, err := filepath.Abs(outputRoot); err == nil {
			prune = append(prune, abs)
		}
	}

	return &Walker{
		Root:       inputRoot,
		Extensions: set,
		Exclude:    opts.Exclude,
		Prune:      prune,
	}
}

// Candidates returns a lazy, restartable sequence of matching file paths in
// lexical order. A directory that cannot be read is yielded once with its
// error, and the walk moves on. Iteration stops early when ctx is done.
func (w *Walker) Candidates(ctx context.Context) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		_ = filepath.WalkDir(w.Root, func(path string, d fs.DirEntry, err error) error {
			if ctx.Err() != nil {
				return filepath.SkipAll
			}
			if err != nil {
				if !yield(path, err) {
					return filepath.SkipAll
				}
				if d != nil && d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() {
				if path != w.Root && w.pruned(path, d.Name()) {
					return filepath.SkipDir
				}
				return nil
			}
			if !w.Match(path) {
				return nil
			}
			if !yield(path, nil) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

// Match reports whether path has a supported source extension.
func (w *Walker) Match(path string) bool {
	return w.Extensions[strings.ToLower(filepath.Ext(path))]
}

func (w *Walker) pruned(path, name string) bool {
	lower := strings.ToLower(name)
	for _, pattern := range w.Exclude {
		if ok, _ := filepath.Match(strings.ToLower(pattern), lower); ok {
			return true
		}
	}
	if len(w.Prune) == 0 {
		return false
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	for _, p := range w.Prune {
		if abs == p {
			return true
		}
	}
	return false
}
