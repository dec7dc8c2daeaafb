// Package pathmap maps source image paths onto their destination paths in
// the output tree.
package pathmap

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bianoble/img2webp/internal/sandbox"
)

// Mapper computes destination paths for a single target format.
type Mapper struct {
	extension string
}

// New returns a Mapper that rewrites file extensions to ext.
// The extension is normalized to lowercase with a leading dot.
func New(ext string) *Mapper {
	return &Mapper{extension: NormalizeExt(ext)}
}

// Extension returns the canonical output extension, e.g. ".webp".
func (m *Mapper) Extension() string {
	return m.extension
}

// Map returns the destination for sourcePath: the same relative position
// under outputRoot, with the extension replaced. The source must resolve
// to a location inside inputRoot and the destination inside outputRoot;
// otherwise the returned error wraps sandbox.ErrOutsideRoot.
func (m *Mapper) Map(inputRoot, outputRoot, sourcePath string) (string, error) {
	if _, err := sandbox.Contains(inputRoot, sourcePath); err != nil {
		return "", err
	}

	rel, err := Rel(inputRoot, sourcePath)
	if err != nil {
		return "", err
	}

	destRel := ReplaceExt(rel, m.extension)
	if _, err := sandbox.ValidatePath(outputRoot, destRel); err != nil {
		return "", err
	}
	return filepath.Join(outputRoot, destRel), nil
}

// EnsureParentDirs creates every missing directory above destinationPath.
// Pre-existing directories are not an error.
func (m *Mapper) EnsureParentDirs(destinationPath string) error {
	dir := filepath.Dir(destinationPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}
	return nil
}

// Rel returns the lexical path of path relative to root. Both are made
// absolute first so mixed relative and absolute inputs compare correctly.
func Rel(root, path string) (string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolving root %s: %w", root, err)
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path %s: %w", path, err)
	}
	rel, err := filepath.Rel(absRoot, absPath)
	if err != nil {
		return "", fmt.Errorf("relativizing %s: %w", path, err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("'%s' is not under '%s': %w", path, root, sandbox.ErrOutsideRoot)
	}
	return rel, nil
}

// ReplaceExt swaps the final extension of path for ext.
func ReplaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

// NormalizeExt lowercases ext and ensures a leading dot.
func NormalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
