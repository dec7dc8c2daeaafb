package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/bianoble/img2webp/internal/codec"
	"github.com/bianoble/img2webp/internal/config"
	"github.com/bianoble/img2webp/internal/engine"
	"github.com/bianoble/img2webp/internal/pathmap"
)

// Output sinks; tests swap these out.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// runFlags are the per-run flags shared by convert and status.
type runFlags struct {
	input    string
	output   string
	format   string
	skip     string
	exts     []string
	exclude  []string
	quality  int
	workers  int
	lossless bool
}

// registerPaths adds the flags every run-shaped command accepts.
func (f *runFlags) registerPaths(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVarP(&f.input, "input", "i", "", "input directory containing images")
	fl.StringVarP(&f.output, "output", "o", "", "output directory for converted images")
	fl.StringVar(&f.format, "format", config.DefaultFormat, "target format: webp, png, jpeg")
	fl.StringSliceVar(&f.exts, "ext", nil, "source extensions to convert (default .jpg,.jpeg,.png)")
	fl.StringSliceVar(&f.exclude, "exclude", nil, "directory name patterns to skip")
}

// registerEncoding adds the flags that only matter when files are written.
func (f *runFlags) registerEncoding(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.IntVarP(&f.quality, "quality", "q", config.DefaultQuality, "encoder quality (0-100)")
	fl.BoolVar(&f.lossless, "lossless", false, "use lossless WebP encoding")
	fl.IntVar(&f.workers, "workers", 0, "parallel conversions (0 or 1 is sequential)")
	fl.StringVar(&f.skip, "skip", config.DefaultSkip, "when to skip an existing output: exists, newer")
}

// apply overlays explicitly set flags onto cfg.
func (f *runFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	fl := cmd.Flags()
	if fl.Changed("input") {
		cfg.Input = f.input
	}
	if fl.Changed("output") {
		cfg.Output = f.output
	}
	if fl.Changed("format") {
		cfg.Format = f.format
	}
	if fl.Changed("ext") {
		cfg.Extensions = append([]string(nil), f.exts...)
	}
	if fl.Changed("exclude") {
		cfg.Exclude = append(cfg.Exclude, f.exclude...)
	}
	if fl.Changed("quality") {
		q := f.quality
		cfg.Quality = &q
	}
	if fl.Changed("lossless") {
		l := f.lossless
		cfg.Lossless = &l
	}
	if fl.Changed("workers") {
		cfg.Workers = f.workers
	}
	if fl.Changed("skip") {
		cfg.Skip = f.skip
	}
}

// loadConfigHierarchical loads config from all layers (system, user, project).
func loadConfigHierarchical() (*config.HierarchicalResult, error) {
	return config.LoadHierarchical(config.HierarchicalOptions{
		ProjectPath: configPath,
		NoInherit:   config.EnvNoInherit(),
	})
}

// resolveConfig builds the effective run configuration: config layers,
// then environment, then explicitly set flags.
func resolveConfig(cmd *cobra.Command, f *runFlags) (*config.Config, error) {
	hr, err := loadConfigHierarchical()
	if err != nil {
		return nil, fmt.Errorf("loading config %s: %w", configPath, err)
	}
	cfg := hr.Config
	if err := config.ApplyEnv(cfg); err != nil {
		return nil, err
	}
	f.apply(cmd, cfg)

	if errs := config.ValidateRun(cfg); len(errs) > 0 {
		return nil, &config.ValidationError{Errors: errs}
	}
	return cfg, nil
}

// engineOptions converts an effective config into engine options.
func engineOptions(cfg *config.Config) engine.Options {
	opts := engine.DefaultOptions()
	if cfg == nil {
		return opts
	}
	opts.Quality = cfg.QualityOrDefault()
	if len(cfg.Extensions) > 0 {
		opts.Extensions = make([]string, 0, len(cfg.Extensions))
		for _, ext := range cfg.Extensions {
			opts.Extensions = append(opts.Extensions, pathmap.NormalizeExt(ext))
		}
	}
	if cfg.Workers > 0 {
		opts.Workers = cfg.Workers
	}
	if cfg.Skip != "" {
		opts.Skip = engine.SkipPolicy(cfg.Skip)
	}
	opts.Exclude = append([]string(nil), cfg.Exclude...)
	return opts
}

// newRegistry creates a codec registry honoring the lossless setting.
func newRegistry(cfg *config.Config) *codec.Registry {
	reg := codec.DefaultRegistry()
	if cfg != nil && cfg.Lossless != nil && *cfg.Lossless {
		reg.Register(&codec.WebP{Lossless: true})
	}
	return reg
}

// newConverter returns a converter for the configured target format.
func newConverter(cfg *config.Config) (*engine.Converter, error) {
	c, err := newRegistry(cfg).Get(cfg.FormatOrDefault())
	if err != nil {
		return nil, &config.ValidationError{Errors: []string{err.Error()}}
	}
	return &engine.Converter{Codec: c}, nil
}

// info prints a line unless quiet mode is active.
func info(format string, args ...any) {
	if !quiet {
		fmt.Fprintf(stdout, format+"\n", args...)
	}
}

// detail prints a line only in verbose mode.
func detail(format string, args ...any) {
	if verbose && !quiet {
		fmt.Fprintf(stdout, "  "+format+"\n", args...)
	}
}

// errorf prints an error message to stderr.
func errorf(format string, args ...any) {
	fmt.Fprintf(stderr, "error: "+format+"\n", args...)
}

func humanSize(bytes int64) string {
	if bytes == 0 {
		return "0 B"
	}
	units := []string{"B", "KB", "MB", "GB"}
	size := float64(bytes)
	i := 0
	for size >= 1024 && i < len(units)-1 {
		size /= 1024
		i++
	}
	if i == 0 {
		return fmt.Sprintf("%d B", bytes)
	}
	return fmt.Sprintf("%.1f %s", size, units[i])
}
