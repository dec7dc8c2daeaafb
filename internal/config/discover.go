package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// FileName is the default project config file name.
const FileName = "img2webp.yaml"

const configDirName = "img2webp"

// ConfigLevel names where a config layer came from.
type ConfigLevel string

const (
	LevelSystem  ConfigLevel = "system"
	LevelUser    ConfigLevel = "user"
	LevelProject ConfigLevel = "project"
)

// ConfigLayerInfo is one candidate config file and what happened when it was read.
type ConfigLayerInfo struct {
	Err    error
	Path   string
	Level  ConfigLevel
	Loaded bool
}

// DiscoverOptions overrides the locations checked by DiscoverPaths.
// Empty system or user paths fall back to the platform defaults; point
// them at a nonexistent file to disable a layer.
type DiscoverOptions struct {
	ProjectPath      string
	SystemConfigPath string
	UserConfigPath   string
}

// DiscoverPaths lists candidate config files from lowest to highest
// precedence: system, user, project. A file reachable through more than
// one level is listed once, at its lowest level.
func DiscoverPaths(opts DiscoverOptions) []ConfigLayerInfo {
	candidates := []ConfigLayerInfo{
		{Level: LevelSystem, Path: orDefault(opts.SystemConfigPath, defaultSystemConfigPath)},
		{Level: LevelUser, Path: orDefault(opts.UserConfigPath, defaultUserConfigPath)},
		{Level: LevelProject, Path: opts.ProjectPath},
	}

	seen := make(map[string]bool, len(candidates))
	layers := make([]ConfigLayerInfo, 0, len(candidates))
	for _, c := range candidates {
		if c.Path == "" {
			continue
		}
		key, err := filepath.Abs(c.Path)
		if err != nil {
			key = c.Path
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		layers = append(layers, c)
	}
	return layers
}

func orDefault(path string, def func() string) string {
	if path != "" {
		return path
	}
	return def()
}

// HierarchicalOptions controls LoadHierarchical.
type HierarchicalOptions struct {
	ProjectPath      string
	SystemConfigPath string
	UserConfigPath   string

	// NoInherit restricts loading to the project layer.
	NoInherit bool
}

// HierarchicalResult is the merged configuration plus per-layer metadata.
type HierarchicalResult struct {
	Config *Config
	Layers []ConfigLayerInfo
}

// LoadHierarchical loads every discovered layer that exists and merges them
// in precedence order. Missing layers are recorded but are not errors, so a
// run with no config files at all yields an empty Config.
func LoadHierarchical(opts HierarchicalOptions) (*HierarchicalResult, error) {
	var layers []ConfigLayerInfo
	if opts.NoInherit {
		layers = []ConfigLayerInfo{{Path: opts.ProjectPath, Level: LevelProject}}
	} else {
		layers = DiscoverPaths(DiscoverOptions{
			ProjectPath:      opts.ProjectPath,
			SystemConfigPath: opts.SystemConfigPath,
			UserConfigPath:   opts.UserConfigPath,
		})
	}

	var loaded []*Config
	for i := range layers {
		if layers[i].Path == "" {
			continue
		}
		cfg, err := parseFile(layers[i].Path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			layers[i].Err = err
			return nil, err
		}
		layers[i].Loaded = true
		loaded = append(loaded, cfg)
	}

	result := &HierarchicalResult{Config: &Config{}, Layers: layers}
	if len(loaded) == 0 {
		return result, nil
	}

	merged, err := MergeAll(loaded)
	if err != nil {
		return nil, err
	}
	if errs := Validate(merged); len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}
	result.Config = merged
	return result, nil
}

func defaultSystemConfigPath() string {
	if runtime.GOOS != "windows" {
		return filepath.Join("/etc", configDirName, FileName)
	}
	base := os.Getenv("ProgramData")
	if base == "" {
		base = `C:\ProgramData`
	}
	return filepath.Join(base, configDirName, FileName)
}

// defaultUserConfigPath is empty when the OS reports no config dir.
func defaultUserConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, configDirName, FileName)
}

// EnvNoInherit reports whether IMG2WEBP_NO_INHERIT asks for the project
// layer only ("1" or "true", any case).
func EnvNoInherit() bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("IMG2WEBP_NO_INHERIT"))) {
	case "1", "true":
		return true
	}
	return false
}
