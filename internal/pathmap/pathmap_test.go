package pathmap

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/bianoble/img2webp/internal/sandbox"
)

func TestMapPreservesStructure(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	m := New("webp")

	tests := []struct {
		src  string
		want string
	}{
		{"a.jpg", "a.webp"},
		{"sub/b.png", "sub/b.webp"},
		{"deep/er/c.JPEG", "deep/er/c.webp"},
		{"dots.in.name.Png", "dots.in.name.webp"},
	}

	for _, tt := range tests {
		got, err := m.Map(in, out, filepath.Join(in, filepath.FromSlash(tt.src)))
		if err != nil {
			t.Errorf("Map(%q): %v", tt.src, err)
			continue
		}
		if want := filepath.Join(out, filepath.FromSlash(tt.want)); got != want {
			t.Errorf("Map(%q) = %q, want %q", tt.src, got, want)
		}
	}
}

func TestMapIsDeterministic(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	m := New(".webp")
	src := filepath.Join(in, "x", "y.jpg")

	first, err := m.Map(in, out, src)
	if err != nil {
		t.Fatal(err)
	}
	second, err := m.Map(in, out, src)
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Errorf("Map not deterministic: %q vs %q", first, second)
	}
}

func TestMapRejectsSourceOutsideRoot(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	m := New(".webp")

	_, err := m.Map(in, out, filepath.Join(t.TempDir(), "stray.jpg"))
	if !errors.Is(err, sandbox.ErrOutsideRoot) {
		t.Fatalf("expected ErrOutsideRoot, got %v", err)
	}
}

func TestMapRejectsSymlinkEscape(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink test not reliable on Windows")
	}

	in := t.TempDir()
	out := t.TempDir()
	target := filepath.Join(t.TempDir(), "real.jpg")
	if err := os.WriteFile(target, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(in, "link.jpg")
	if err := os.Symlink(target, link); err != nil {
		t.Fatal(err)
	}

	_, err := New(".webp").Map(in, out, link)
	if !errors.Is(err, sandbox.ErrOutsideRoot) {
		t.Fatalf("expected ErrOutsideRoot, got %v", err)
	}
}

func TestMapRelativeRoots(t *testing.T) {
	base := t.TempDir()
	if err := os.MkdirAll(filepath.Join(base, "photos", "sub"), 0755); err != nil {
		t.Fatal(err)
	}
	t.Chdir(base)

	got, err := New(".webp").Map("photos", "out", filepath.Join("photos", "sub", "b.png"))
	if err != nil {
		t.Fatalf("Map: %v", err)
	}
	if want := filepath.Join("out", "sub", "b.webp"); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestEnsureParentDirsIdempotent(t *testing.T) {
	out := t.TempDir()
	m := New(".webp")
	dest := filepath.Join(out, "a", "b", "c.webp")

	for i := 0; i < 2; i++ {
		if err := m.EnsureParentDirs(dest); err != nil {
			t.Fatalf("EnsureParentDirs pass %d: %v", i, err)
		}
	}
	if info, err := os.Stat(filepath.Join(out, "a", "b")); err != nil || !info.IsDir() {
		t.Fatalf("parent directory missing: %v", err)
	}
}

func TestEnsureParentDirsBlockedByFile(t *testing.T) {
	out := t.TempDir()
	if err := os.WriteFile(filepath.Join(out, "a"), []byte("not a dir"), 0644); err != nil {
		t.Fatal(err)
	}

	err := New(".webp").EnsureParentDirs(filepath.Join(out, "a", "b.webp"))
	if err == nil {
		t.Fatal("expected error when a file blocks the parent directory")
	}
}

func TestNormalizeExt(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"webp", ".webp"},
		{".WEBP", ".webp"},
		{" .Jpg ", ".jpg"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeExt(tt.in); got != tt.want {
			t.Errorf("NormalizeExt(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRelRejectsParent(t *testing.T) {
	root := t.TempDir()
	if _, err := Rel(filepath.Join(root, "a"), filepath.Join(root, "b.jpg")); !errors.Is(err, sandbox.ErrOutsideRoot) {
		t.Fatalf("expected ErrOutsideRoot, got %v", err)
	}
}
