package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads and validates an img2webp.yaml configuration file.
func Load(path string) (*Config, error) {
	cfg, err := parseFile(path)
	if err != nil {
		return nil, err
	}
	if errs := Validate(cfg); len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}
	return cfg, nil
}

func parseFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return &cfg, nil
}

// ValidationError holds multiple validation failures.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

// Validate checks a config file for semantic correctness.
// Returns a list of validation error messages (empty if valid).
func Validate(cfg *Config) []string {
	var errs []string
	if cfg.Version != 1 {
		errs = append(errs, fmt.Sprintf("unsupported version %d — only version 1 is supported", cfg.Version))
	}
	return append(errs, validateFields(cfg)...)
}

// ValidateRun checks the effective configuration of a conversion run.
// Input and output are required here but optional in individual files.
func ValidateRun(cfg *Config) []string {
	var errs []string
	if cfg.Input == "" {
		errs = append(errs, "'input' is required — pass --input or set 'input' in the config file")
	}
	if cfg.Output == "" {
		errs = append(errs, "'output' is required — pass --output or set 'output' in the config file")
	}
	return append(errs, validateFields(cfg)...)
}

func validateFields(cfg *Config) []string {
	var errs []string

	// The engine passes quality to the codec unchecked; bound it here.
	if cfg.Quality != nil && (*cfg.Quality < 0 || *cfg.Quality > 100) {
		errs = append(errs, fmt.Sprintf("quality %d is out of range — must be between 0 and 100", *cfg.Quality))
	}

	if cfg.Workers < 0 {
		errs = append(errs, fmt.Sprintf("workers %d is negative — use 0 or 1 for sequential processing", cfg.Workers))
	}

	switch cfg.Skip {
	case "", "exists", "newer":
		// valid
	default:
		errs = append(errs, fmt.Sprintf("invalid skip policy '%s' — must be one of: exists, newer", cfg.Skip))
	}

	for i, ext := range cfg.Extensions {
		trimmed := strings.TrimSpace(strings.TrimPrefix(ext, "."))
		switch {
		case trimmed == "":
			errs = append(errs, fmt.Sprintf("extensions[%d]: empty extension", i))
		case strings.ContainsAny(trimmed, `/\.`):
			errs = append(errs, fmt.Sprintf("extensions[%d]: invalid extension '%s' — use a single suffix like '.jpg'", i, ext))
		}
	}

	for i, pattern := range cfg.Exclude {
		if _, err := filepath.Match(pattern, ""); err != nil {
			errs = append(errs, fmt.Sprintf("exclude[%d]: invalid pattern '%s': %v", i, pattern, err))
		}
	}

	return errs
}

// Environment variables consulted by ApplyEnv.
const (
	EnvInput   = "IMG2WEBP_INPUT"
	EnvOutput  = "IMG2WEBP_OUTPUT"
	EnvQuality = "IMG2WEBP_QUALITY"
	EnvWorkers = "IMG2WEBP_WORKERS"
)

// ApplyEnv overlays environment variables onto cfg. Environment values
// take precedence over config files but not over explicit flags.
func ApplyEnv(cfg *Config) error {
	if v := strings.TrimSpace(os.Getenv(EnvInput)); v != "" {
		cfg.Input = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvOutput)); v != "" {
		cfg.Output = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvQuality)); v != "" {
		q, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: invalid quality %q: %w", EnvQuality, v, err)
		}
		cfg.Quality = &q
	}
	if v := strings.TrimSpace(os.Getenv(EnvWorkers)); v != "" {
		w, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: invalid worker count %q: %w", EnvWorkers, v, err)
		}
		cfg.Workers = w
	}
	return nil
}
