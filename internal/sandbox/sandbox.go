package sandbox

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrOutsideRoot reports that a path resolves to a location outside the
// directory tree it was expected to live in.
var ErrOutsideRoot = errors.New("path is outside the root")

// Contains checks that path, after symlink resolution, lies within root.
// Neither root nor path need to exist; the longest existing prefix of each
// is resolved. Returns the resolved absolute path.
func Contains(root, path string) (string, error) {
	realRoot, err := resolveAbs(root)
	if err != nil {
		return "", fmt.Errorf("resolving root %s: %w", root, err)
	}
	resolved, err := resolveAbs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path %s: %w", path, err)
	}

	// Trailing separator keeps "photos2" from matching "photos".
	rootPrefix := realRoot + string(filepath.Separator)
	if resolved != realRoot && !strings.HasPrefix(resolved, rootPrefix) {
		return "", fmt.Errorf("'%s' resolves to '%s' which is outside '%s': %w", path, resolved, realRoot, ErrOutsideRoot)
	}
	return resolved, nil
}

// ValidatePath checks if relPath, joined onto root, stays within root.
func ValidatePath(root, relPath string) (string, error) {
	return Contains(root, filepath.Join(root, relPath))
}

func resolveAbs(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return resolveExistingPath(filepath.Clean(abs))
}

// resolveExistingPath resolves symlinks for the longest existing prefix of the path,
// then appends the non-existing suffix.
func resolveExistingPath(path string) (string, error) {
	resolved, err := filepath.EvalSymlinks(path)
	if err == nil {
		return resolved, nil
	}

	dir := filepath.Dir(path)
	base := filepath.Base(path)
	if dir == path {
		return path, nil
	}

	resolvedDir, err := resolveExistingPath(dir)
	if err != nil {
		return "", err
	}
	return filepath.Join(resolvedDir, base), nil
}

// SafeWrite atomically writes content to relPath under root. The file is
// written to a hidden temp file in the destination directory and renamed
// into place, so readers never observe a partially written file.
func SafeWrite(root, relPath string, content []byte, perm os.FileMode) error {
	resolved, err := ValidatePath(root, relPath)
	if err != nil {
		return err
	}

	dir := filepath.Dir(resolved)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".img2webp-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmpPath, resolved); err != nil {
		return fmt.Errorf("renaming temp file to %s: %w", resolved, err)
	}

	success = true
	return nil
}
