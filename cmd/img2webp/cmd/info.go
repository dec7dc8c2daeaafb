package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bianoble/img2webp/internal/config"
	"github.com/bianoble/img2webp/internal/engine"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show information about img2webp configuration and formats",
	Long: `Displays the img2webp version, the configuration chain, the effective
defaults, and the registered output formats.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Load config with hierarchy to capture layer metadata.
		hr, err := loadConfigHierarchical()
		if err != nil {
			errorf("%s", err)
		}
		cfg := &config.Config{}
		if hr != nil {
			cfg = hr.Config
		}

		result := engine.Info(version, newRegistry(cfg), cfg.FormatOrDefault(), configPath, engineOptions(cfg))

		if hr != nil {
			for _, l := range hr.Layers {
				result.ConfigChain = append(result.ConfigChain, engine.ConfigLayerStatus{
					Level:  string(l.Level),
					Path:   l.Path,
					Loaded: l.Loaded,
				})
			}
		}

		fmt.Fprintf(stdout, "img2webp %s\n", result.Version)

		if len(result.ConfigChain) > 1 {
			fmt.Fprintln(stdout, "  config chain:")
			for _, layer := range result.ConfigChain {
				status := "not found"
				if layer.Loaded {
					status = "loaded"
				}
				fmt.Fprintf(stdout, "    %-10s %s (%s)\n", layer.Level+":", layer.Path, status)
			}
		} else {
			fmt.Fprintf(stdout, "  config:        %s\n", result.ConfigPath)
		}

		fmt.Fprintf(stdout, "  quality:       %d\n", result.Quality)
		fmt.Fprintf(stdout, "  extensions:    %s\n", strings.Join(result.Extensions, ", "))

		if len(result.Formats) > 0 {
			fmt.Fprintln(stdout, "\nFormats:")
			for _, f := range result.Formats {
				def := ""
				if f.IsDefault {
					def = " (default)"
				}
				fmt.Fprintf(stdout, "  %-8s → %s%s\n", f.Name, f.Extension, def)
			}
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
