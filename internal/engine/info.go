package engine

import (
	"github.com/bianoble/img2webp/internal/codec"
)

// ConfigLayerStatus describes a config layer's load status for display.
type ConfigLayerStatus struct {
	Level  string // "system", "user", "project"
	Path   string
	Loaded bool
}

// InfoResult holds tool information for the info command.
type InfoResult struct {
	Version     string
	ConfigPath  string
	Formats     []FormatInfo
	Extensions  []string
	ConfigChain []ConfigLayerStatus
	Quality     int
}

// FormatInfo describes a registered output codec.
type FormatInfo struct {
	Name      string
	Extension string
	IsDefault bool
}

// Info gathers tool information. opts supplies the effective extensions
// and quality; a nil registry lists no formats.
func Info(version string, reg *codec.Registry, defaultFormat, configPath string, opts Options) *InfoResult {
	r := &InfoResult{
		Version:    version,
		ConfigPath: configPath,
		Extensions: append([]string(nil), opts.Extensions...),
		Quality:    opts.Quality,
	}

	if reg != nil {
		for _, name := range reg.Names() {
			c, err := reg.Get(name)
			if err != nil {
				continue
			}
			r.Formats = append(r.Formats, FormatInfo{
				Name:      name,
				Extension: c.Extension(),
				IsDefault: name == defaultFormat,
			})
		}
	}

	return r
}
