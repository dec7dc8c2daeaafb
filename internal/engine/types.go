package engine

import (
	"time"
)

// Status is the terminal state of a conversion task.
type Status string

const (
	StatusConverted Status = "converted"
	StatusSkipped   Status = "skipped"
	StatusFailed    Status = "failed"
)

// SkipReason explains why a task was not converted.
type SkipReason string

const (
	// SkipAlreadyExists means the destination file is already present.
	SkipAlreadyExists SkipReason = "already_exists"
	// SkipUpToDate means the destination is non-empty and not older than the source.
	SkipUpToDate SkipReason = "up_to_date"
	// SkipDuplicate means an earlier source in the same run maps to the same destination.
	SkipDuplicate SkipReason = "duplicate_destination"
)

// SkipPolicy decides when an existing destination counts as done.
type SkipPolicy string

const (
	// SkipIfExists treats any existing destination as converted.
	SkipIfExists SkipPolicy = "exists"
	// SkipIfNewer reconverts when the destination is empty or older than the source.
	SkipIfNewer SkipPolicy = "newer"
)

// Task is one candidate conversion.
type Task struct {
	Source      string
	Destination string
	Rel         string // source path relative to the input root
}

// Outcome is produced exactly once per Task.
type Outcome struct {
	Status      Status
	Reason      SkipReason // skipped only
	Err         error      // failed only
	SourceBytes int64
	OutputBytes int64
	Duration    time.Duration
}

// Entry pairs a task with its outcome.
type Entry struct {
	Task    Task
	Outcome Outcome
}

// Report is the ordered result of one Run, in discovery order.
type Report struct {
	InputRoot  string
	OutputRoot string
	Entries    []Entry
}

// Summary aggregates a Report.
type Summary struct {
	Total            int
	Converted        int
	Skipped          int
	Failed           int
	TotalInputBytes  int64
	TotalOutputBytes int64
}

// SpaceSaved returns the bytes saved by converted files. Negative when
// the output grew.
func (s Summary) SpaceSaved() int64 {
	return s.TotalInputBytes - s.TotalOutputBytes
}

// Summary counts outcomes by status.
func (r *Report) Summary() Summary {
	var s Summary
	for _, e := range r.Entries {
		s.Total++
		switch e.Outcome.Status {
		case StatusConverted:
			s.Converted++
			s.TotalInputBytes += e.Outcome.SourceBytes
			s.TotalOutputBytes += e.Outcome.OutputBytes
		case StatusSkipped:
			s.Skipped++
		case StatusFailed:
			s.Failed++
		}
	}
	return s
}

// Failures returns the failed entries in report order.
func (r *Report) Failures() []Entry {
	var out []Entry
	for _, e := range r.Entries {
		if e.Outcome.Status == StatusFailed {
			out = append(out, e)
		}
	}
	return out
}

// Options configures a Run. The zero value is not useful; start from
// DefaultOptions.
type Options struct {
	Quality    int
	Extensions []string // lowercase, leading dot
	Workers    int      // <=1 runs sequentially
	Skip       SkipPolicy
	Exclude    []string // directory-name glob patterns pruned from the walk
}

// DefaultQuality is the encoder quality used when none is configured.
const DefaultQuality = 85

// DefaultExtensions are the source formats converted when none are configured.
var DefaultExtensions = []string{".jpg", ".jpeg", ".png"}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Quality:    DefaultQuality,
		Extensions: append([]string(nil), DefaultExtensions...),
		Workers:    1,
		Skip:       SkipIfExists,
	}
}
