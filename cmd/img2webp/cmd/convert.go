package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	convertFlags  runFlags
	convertReport string
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert every supported image under the input directory",
	Long: `Walks the input directory recursively and converts every JPG/PNG image into
the target format under the output directory, preserving relative paths.
Images whose output already exists are skipped. A file that cannot be decoded
or written is reported as failed and the batch continues; only an invalid
input directory or an output directory that cannot be created aborts the run.`,
	Example: `  img2webp convert -i ./photos -o ./web
  img2webp convert -i ./photos -o ./web -q 70 --workers 8
  img2webp convert -i ./photos -o ./web --skip newer --report json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		switch convertReport {
		case "text", "json":
		default:
			return fmt.Errorf("invalid report format '%s' — must be one of: text, json", convertReport)
		}

		cfg, err := resolveConfig(cmd, &convertFlags)
		if err != nil {
			return err
		}
		conv, err := newConverter(cfg)
		if err != nil {
			return err
		}
		opts := engineOptions(cfg)

		detail("input:    %s", cfg.Input)
		detail("output:   %s", cfg.Output)
		detail("format:   %s (quality %d, %d worker(s), skip %s)", conv.Codec.Name(), opts.Quality, opts.Workers, opts.Skip)

		report, runErr := conv.Run(cmd.Context(), cfg.Input, cfg.Output, opts)
		if report == nil {
			return runErr
		}

		if convertReport == "json" {
			if err := writeJSONReport(report, runErr != nil); err != nil {
				return fmt.Errorf("writing report: %w", err)
			}
		} else {
			printReport(report)
		}

		if runErr != nil {
			return fmt.Errorf("conversion interrupted after %d file(s): %w", len(report.Entries), runErr)
		}
		return nil
	},
}

func init() {
	convertFlags.registerPaths(convertCmd)
	convertFlags.registerEncoding(convertCmd)
	convertCmd.Flags().StringVar(&convertReport, "report", "text", "report format: text, json")
	rootCmd.AddCommand(convertCmd)
}
