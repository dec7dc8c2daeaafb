package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var initForce bool

// initTemplate is the default img2webp.yaml scaffold.
const initTemplate = `# img2webp configuration
# Flags on the command line override every value here.
version: 1

# Directory to scan recursively, and where converted files are written.
input: ./images
output: ./images-webp

# Encoder quality, 0-100.
quality: 85

# Source extensions to convert (case-insensitive).
extensions: [.jpg, .jpeg, .png]

# Target format: webp (default), png, jpeg.
# format: webp

# Lossless WebP encoding ignores quality.
# lossless: false

# Parallel conversions; 0 or 1 converts one file at a time.
# workers: 4

# When an output already exists:
#   exists - skip it (default)
#   newer  - reconvert if it is empty or older than the source
# skip: exists

# Directory names (glob patterns) to leave out of the walk.
# exclude:
#   - .git
#   - "*.cache"
`

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a starter img2webp.yaml configuration",
	Long: `Creates an img2webp.yaml file at the --config path with a commented template
covering every setting.

Use --force to overwrite an existing configuration file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		outPath := configPath
		if !filepath.IsAbs(outPath) {
			abs, err := filepath.Abs(outPath)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			outPath = abs
		}

		if !initForce {
			if _, err := os.Stat(outPath); err == nil {
				return fmt.Errorf("%s already exists (use --force to overwrite)", outPath)
			}
		}

		if err := os.WriteFile(outPath, []byte(initTemplate), 0644); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}

		info("Created %s", outPath)
		info("")
		info("Next steps:")
		info("  1. Point 'input' and 'output' at your directories")
		info("  2. Run 'img2webp status' to preview the work")
		info("  3. Run 'img2webp convert' to convert")
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite existing config file")
	rootCmd.AddCommand(initCmd)
}
