package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestMergeScalarsOverlayWins(t *testing.T) {
	lossless := true
	base := &Config{
		Version: 1,
		Input:   "./base-in",
		Output:  "./base-out",
		Format:  "webp",
		Quality: intPtr(85),
		Workers: 2,
		Skip:    "exists",
	}
	overlay := &Config{
		Version:  1,
		Output:   "./overlay-out",
		Quality:  intPtr(60),
		Lossless: &lossless,
		Skip:     "newer",
	}

	merged, err := Merge(base, overlay)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if merged.Input != "./base-in" {
		t.Errorf("input = %q, want base value", merged.Input)
	}
	if merged.Output != "./overlay-out" {
		t.Errorf("output = %q, want overlay value", merged.Output)
	}
	if merged.QualityOrDefault() != 60 {
		t.Errorf("quality = %d, want 60", merged.QualityOrDefault())
	}
	if merged.Lossless == nil || !*merged.Lossless {
		t.Error("lossless should come from overlay")
	}
	if merged.Workers != 2 || merged.Format != "webp" || merged.Skip != "newer" {
		t.Errorf("workers/format/skip = %d/%q/%q", merged.Workers, merged.Format, merged.Skip)
	}
}

func TestMergeExplicitZeroQuality(t *testing.T) {
	merged, err := Merge(&Config{Version: 1, Quality: intPtr(85)}, &Config{Quality: intPtr(0)})
	if err != nil {
		t.Fatal(err)
	}
	if merged.QualityOrDefault() != 0 {
		t.Errorf("quality = %d, want explicit 0", merged.QualityOrDefault())
	}
}

func TestMergeDoesNotAliasInputs(t *testing.T) {
	base := &Config{Version: 1, Extensions: []string{".jpg"}}
	overlay := &Config{Quality: intPtr(70)}

	merged, err := Merge(base, overlay)
	if err != nil {
		t.Fatal(err)
	}
	merged.Extensions[0] = ".bmp"
	*merged.Quality = 10

	if base.Extensions[0] != ".jpg" {
		t.Error("base extensions mutated through merged config")
	}
	if *overlay.Quality != 70 {
		t.Error("overlay quality mutated through merged config")
	}
}

func TestMergeExtensionsReplace(t *testing.T) {
	base := &Config{Version: 1, Extensions: []string{".jpg", ".png"}}

	merged, err := Merge(base, &Config{Extensions: []string{".tiff"}})
	if err != nil {
		t.Fatal(err)
	}
	if len(merged.Extensions) != 1 || merged.Extensions[0] != ".tiff" {
		t.Errorf("extensions = %v, want [.tiff]", merged.Extensions)
	}

	merged, err = Merge(base, &Config{})
	if err != nil {
		t.Fatal(err)
	}
	if len(merged.Extensions) != 2 {
		t.Errorf("empty overlay should keep base extensions, got %v", merged.Extensions)
	}
}

func TestMergeExcludeConcatenates(t *testing.T) {
	base := &Config{Version: 1, Exclude: []string{".git", "tmp"}}
	overlay := &Config{Exclude: []string{"tmp", "*.cache"}}

	merged, err := Merge(base, overlay)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{".git", "tmp", "*.cache"}
	if strings.Join(merged.Exclude, ",") != strings.Join(want, ",") {
		t.Errorf("exclude = %v, want %v", merged.Exclude, want)
	}
}

func TestMergeVersionRules(t *testing.T) {
	tests := []struct {
		name    string
		base    int
		overlay int
		want    int
		wantErr bool
	}{
		{"both zero", 0, 0, 0, false},
		{"base only", 1, 0, 1, false},
		{"overlay only", 0, 1, 1, false},
		{"agree", 1, 1, 1, false},
		{"mismatch", 1, 2, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			merged, err := Merge(&Config{Version: tt.base}, &Config{Version: tt.overlay})
			if tt.wantErr {
				if err == nil || !strings.Contains(err.Error(), "version mismatch") {
					t.Fatalf("expected version mismatch, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if merged.Version != tt.want {
				t.Errorf("version = %d, want %d", merged.Version, tt.want)
			}
		})
	}
}

func TestMergeNil(t *testing.T) {
	cfg := &Config{Version: 1}
	if got, _ := Merge(nil, cfg); got != cfg {
		t.Error("Merge(nil, cfg) should return cfg")
	}
	if got, _ := Merge(cfg, nil); got != cfg {
		t.Error("Merge(cfg, nil) should return cfg")
	}
}

func TestMergeAllEmpty(t *testing.T) {
	if _, err := MergeAll(nil); err == nil {
		t.Error("expected error for empty MergeAll")
	}
}

func TestMergeAllPrecedence(t *testing.T) {
	merged, err := MergeAll([]*Config{
		{Version: 1, Quality: intPtr(50), Workers: 1},
		{Quality: intPtr(60)},
		{Quality: intPtr(70), Input: "./p"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if merged.QualityOrDefault() != 70 || merged.Workers != 1 || merged.Input != "./p" {
		t.Errorf("merged = %+v", merged)
	}
}

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadHierarchicalNoInherit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	writeConfig(t, path, exampleConfig)

	result, err := LoadHierarchical(HierarchicalOptions{
		ProjectPath: path,
		NoInherit:   true,
	})
	if err != nil {
		t.Fatalf("LoadHierarchical: %v", err)
	}

	if result.Config.Version != 1 {
		t.Errorf("version = %d, want 1", result.Config.Version)
	}
	if len(result.Layers) != 1 {
		t.Errorf("expected 1 layer with NoInherit, got %d", len(result.Layers))
	}
	if result.Layers[0].Level != LevelProject || !result.Layers[0].Loaded {
		t.Errorf("layer = %+v, want loaded project layer", result.Layers[0])
	}
}

func TestLoadHierarchicalMergesLayers(t *testing.T) {
	dir := t.TempDir()

	sysPath := filepath.Join(dir, "system", FileName)
	writeConfig(t, sysPath, `
version: 1
quality: 75
workers: 4
exclude: [.git]
`)

	projPath := filepath.Join(dir, FileName)
	writeConfig(t, projPath, `
version: 1
input: ./photos
output: ./web
exclude: [thumbs]
`)

	result, err := LoadHierarchical(HierarchicalOptions{
		ProjectPath:      projPath,
		SystemConfigPath: sysPath,
		UserConfigPath:   filepath.Join(dir, "nonexistent", FileName), // skip
	})
	if err != nil {
		t.Fatalf("LoadHierarchical: %v", err)
	}

	cfg := result.Config
	if cfg.QualityOrDefault() != 75 || cfg.Workers != 4 {
		t.Errorf("system values lost: quality=%d workers=%d", cfg.QualityOrDefault(), cfg.Workers)
	}
	if cfg.Input != "./photos" || cfg.Output != "./web" {
		t.Errorf("project values lost: %q/%q", cfg.Input, cfg.Output)
	}
	if len(cfg.Exclude) != 2 {
		t.Errorf("exclude = %v, want both layers", cfg.Exclude)
	}

	loadedCount := 0
	for _, l := range result.Layers {
		if l.Loaded {
			loadedCount++
		}
	}
	if loadedCount != 2 {
		t.Errorf("expected 2 loaded layers, got %d", loadedCount)
	}
}

func TestLoadHierarchicalNoFiles(t *testing.T) {
	dir := t.TempDir()
	result, err := LoadHierarchical(HierarchicalOptions{
		ProjectPath:      filepath.Join(dir, FileName),
		SystemConfigPath: filepath.Join(dir, "sys.yaml"),
		UserConfigPath:   filepath.Join(dir, "user.yaml"),
	})
	if err != nil {
		t.Fatalf("missing config files should not be an error: %v", err)
	}
	if result.Config == nil {
		t.Fatal("expected empty config")
	}
	for _, l := range result.Layers {
		if l.Loaded {
			t.Errorf("layer %s should not be loaded", l.Level)
		}
	}
}

func TestLoadHierarchicalVersionMismatch(t *testing.T) {
	dir := t.TempDir()
	sysPath := filepath.Join(dir, "system.yaml")
	writeConfig(t, sysPath, "version: 2\n")
	projPath := filepath.Join(dir, FileName)
	writeConfig(t, projPath, "version: 1\n")

	_, err := LoadHierarchical(HierarchicalOptions{
		ProjectPath:      projPath,
		SystemConfigPath: sysPath,
		UserConfigPath:   filepath.Join(dir, "none.yaml"),
	})
	if err == nil || !strings.Contains(err.Error(), "version mismatch") {
		t.Fatalf("expected version mismatch error, got %v", err)
	}
}

func TestLoadHierarchicalParseError(t *testing.T) {
	dir := t.TempDir()
	projPath := filepath.Join(dir, FileName)
	writeConfig(t, projPath, "quality: [\n")

	_, err := LoadHierarchical(HierarchicalOptions{ProjectPath: projPath, NoInherit: true})
	if err == nil || !strings.Contains(err.Error(), "parsing config") {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestLoadHierarchicalValidatesMerged(t *testing.T) {
	dir := t.TempDir()
	projPath := filepath.Join(dir, FileName)
	writeConfig(t, projPath, "version: 1\nskip: sometimes\n")

	_, err := LoadHierarchical(HierarchicalOptions{ProjectPath: projPath, NoInherit: true})
	if _, ok := err.(*ValidationError); !ok {
		t.Fatalf("expected *ValidationError, got %T: %v", err, err)
	}
}
