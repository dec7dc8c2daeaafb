package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bianoble/img2webp/internal/engine"
)

var statusFlags runFlags

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which images are pending, converted, or stale",
	Long: `Walks the input directory without writing anything and reports, for every
image that convert would consider, whether its output is pending, already
converted, or stale (empty or older than the source).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd, &statusFlags)
		if err != nil {
			return err
		}
		conv, err := newConverter(cfg)
		if err != nil {
			return err
		}

		statuses, err := conv.Status(cmd.Context(), cfg.Input, cfg.Output, engineOptions(cfg))
		if err != nil {
			return err
		}

		if len(statuses) == 0 {
			info("No images found under %s.", cfg.Input)
			return nil
		}

		p := newPalette()
		if !quiet {
			fmt.Fprintf(stdout, "%-12s %s\n", "STATE", "SOURCE")
		}
		for _, s := range statuses {
			label := fmt.Sprintf("%-12s", s.State)
			switch s.State {
			case engine.StateConverted:
				label = p.converted.Render(label)
			case engine.StatePending, engine.StateStale:
				label = p.pending.Render(label)
			case engine.StateInvalid:
				label = p.failed.Render(label)
			}
			rel := s.Task.Rel
			if rel == "" {
				rel = s.Task.Source
			}
			info("%s %s", label, rel)
			if s.Err != nil {
				errorf("%s", s.Err)
			}
		}

		counts := engine.CountStates(statuses)
		info("")
		info("%d image(s): %d pending, %d stale, %d converted, %d invalid.",
			len(statuses), counts[engine.StatePending], counts[engine.StateStale],
			counts[engine.StateConverted], counts[engine.StateInvalid])
		return nil
	},
}

func init() {
	statusFlags.registerPaths(statusCmd)
	rootCmd.AddCommand(statusCmd)
}
