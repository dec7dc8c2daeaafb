package config

// Config represents an img2webp.yaml configuration file, or the effective
// configuration after layers, environment, and flags have been applied.
// Pointer fields distinguish "unset" from an explicit zero.
type Config struct {
	Version    int      `yaml:"version"`
	Input      string   `yaml:"input,omitempty"`
	Output     string   `yaml:"output,omitempty"`
	Format     string   `yaml:"format,omitempty"` // "webp", "png", "jpeg"
	Quality    *int     `yaml:"quality,omitempty"`
	Lossless   *bool    `yaml:"lossless,omitempty"`
	Extensions []string `yaml:"extensions,omitempty"`
	Workers    int      `yaml:"workers,omitempty"`
	Skip       string   `yaml:"skip,omitempty"` // "exists", "newer"
	Exclude    []string `yaml:"exclude,omitempty"`
}

// Defaults applied by the CLI when neither a config layer nor a flag sets
// a value.
const (
	DefaultFormat  = "webp"
	DefaultQuality = 85
	DefaultSkip    = "exists"
)

// QualityOrDefault returns the configured quality, or DefaultQuality.
func (c *Config) QualityOrDefault() int {
	if c.Quality == nil {
		return DefaultQuality
	}
	return *c.Quality
}

// FormatOrDefault returns the configured target format, or DefaultFormat.
func (c *Config) FormatOrDefault() string {
	if c.Format == "" {
		return DefaultFormat
	}
	return c.Format
}
