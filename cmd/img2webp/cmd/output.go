package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/bianoble/img2webp/internal/engine"
)

// palette styles outcome labels.
type palette struct {
	converted lipgloss.Style
	skipped   lipgloss.Style
	failed    lipgloss.Style
	pending   lipgloss.Style
	dim       lipgloss.Style
}

func newPalette() palette {
	if noColor || os.Getenv("NO_COLOR") != "" {
		plain := lipgloss.NewStyle()
		return palette{converted: plain, skipped: plain, failed: plain, pending: plain, dim: plain}
	}
	return palette{
		converted: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		skipped:   lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		failed:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		pending:   lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
		dim:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// entryLine renders the one-line outcome for a report entry.
func (p palette) entryLine(e engine.Entry, outputRoot string) string {
	switch e.Outcome.Status {
	case engine.StatusConverted:
		return fmt.Sprintf("%s %s -> %s", p.converted.Render("Converted"), e.Task.Rel, displayPath(outputRoot, e.Task.Destination))
	case engine.StatusSkipped:
		return fmt.Sprintf("%s %s", p.skipped.Render(fmt.Sprintf("Skipped (%s)", e.Outcome.Reason)), e.Task.Rel)
	default:
		rel := e.Task.Rel
		if rel == "" {
			rel = e.Task.Source
		}
		return fmt.Sprintf("%s %s: %s", p.failed.Render("Failed:"), rel, e.Outcome.Err)
	}
}

// displayPath shows dest relative to the output root's parent when possible.
func displayPath(outputRoot, dest string) string {
	if dest == "" {
		return ""
	}
	rel, err := filepath.Rel(filepath.Dir(outputRoot), dest)
	if err != nil {
		return dest
	}
	return rel
}

// printReport writes per-file lines and the summary in text form.
// Failures are printed even in quiet mode.
func printReport(r *engine.Report) {
	p := newPalette()
	for _, e := range r.Entries {
		line := p.entryLine(e, r.OutputRoot)
		switch e.Outcome.Status {
		case engine.StatusFailed:
			fmt.Fprintln(stdout, line)
		case engine.StatusSkipped:
			info("%s", line)
		default:
			info("%s", line)
			detail("%s", p.dim.Render(fmt.Sprintf("%s -> %s in %s",
				humanSize(e.Outcome.SourceBytes), humanSize(e.Outcome.OutputBytes), e.Outcome.Duration.Round(time.Millisecond))))
		}
	}

	s := r.Summary()
	info("")
	info("Conversion complete: %d converted, %d skipped, %d failed.", s.Converted, s.Skipped, s.Failed)
	if s.Converted > 0 {
		saved := s.SpaceSaved()
		if saved >= 0 {
			info("Saved %s (%s -> %s).", humanSize(saved), humanSize(s.TotalInputBytes), humanSize(s.TotalOutputBytes))
		} else {
			info("Output grew by %s (%s -> %s).", humanSize(-saved), humanSize(s.TotalInputBytes), humanSize(s.TotalOutputBytes))
		}
	}
}

type jsonEntry struct {
	Source      string `json:"source"`
	Destination string `json:"destination,omitempty"`
	Rel         string `json:"rel,omitempty"`
	Status      string `json:"status"`
	Reason      string `json:"reason,omitempty"`
	Error       string `json:"error,omitempty"`
	SourceBytes int64  `json:"source_bytes,omitempty"`
	OutputBytes int64  `json:"output_bytes,omitempty"`
	DurationMS  int64  `json:"duration_ms,omitempty"`
}

type jsonSummary struct {
	Total       int   `json:"total"`
	Converted   int   `json:"converted"`
	Skipped     int   `json:"skipped"`
	Failed      int   `json:"failed"`
	InputBytes  int64 `json:"input_bytes"`
	OutputBytes int64 `json:"output_bytes"`
	SpaceSaved  int64 `json:"space_saved"`
}

type jsonReport struct {
	InputRoot   string      `json:"input_root"`
	OutputRoot  string      `json:"output_root"`
	Summary     jsonSummary `json:"summary"`
	Entries     []jsonEntry `json:"entries"`
	Interrupted bool        `json:"interrupted,omitempty"`
}

// writeJSONReport writes the report as a single indented JSON document.
func writeJSONReport(r *engine.Report, interrupted bool) error {
	s := r.Summary()
	out := jsonReport{
		InputRoot:  r.InputRoot,
		OutputRoot: r.OutputRoot,
		Summary: jsonSummary{
			Total:       s.Total,
			Converted:   s.Converted,
			Skipped:     s.Skipped,
			Failed:      s.Failed,
			InputBytes:  s.TotalInputBytes,
			OutputBytes: s.TotalOutputBytes,
			SpaceSaved:  s.SpaceSaved(),
		},
		Entries:     make([]jsonEntry, 0, len(r.Entries)),
		Interrupted: interrupted,
	}
	for _, e := range r.Entries {
		je := jsonEntry{
			Source:      e.Task.Source,
			Destination: e.Task.Destination,
			Rel:         e.Task.Rel,
			Status:      string(e.Outcome.Status),
			Reason:      string(e.Outcome.Reason),
			SourceBytes: e.Outcome.SourceBytes,
			OutputBytes: e.Outcome.OutputBytes,
			DurationMS:  e.Outcome.Duration.Milliseconds(),
		}
		if e.Outcome.Err != nil {
			je.Error = e.Outcome.Err.Error()
		}
		out.Entries = append(out.Entries, je)
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
