package img2webp

import (
	"github.com/bianoble/img2webp/internal/codec"
	"github.com/bianoble/img2webp/internal/engine"
)

// Type aliases re-export engine types as the public API.
// Users import "github.com/bianoble/img2webp/pkg/img2webp" and use
// img2webp.Report, img2webp.Outcome, etc.

type Codec = codec.Codec
type Task = engine.Task
type Outcome = engine.Outcome
type Entry = engine.Entry
type Report = engine.Report
type Summary = engine.Summary
type RunOptions = engine.Options
type Status = engine.Status
type SkipReason = engine.SkipReason
type SkipPolicy = engine.SkipPolicy
type TaskState = engine.TaskState
type TaskStatus = engine.TaskStatus

// Error types carried by failed outcomes and fatal run errors.
type ConfigError = engine.ConfigError
type IOError = engine.IOError
type PathError = engine.PathError
type DecodeError = engine.DecodeError
type EncodeError = engine.EncodeError

const (
	StatusConverted = engine.StatusConverted
	StatusSkipped   = engine.StatusSkipped
	StatusFailed    = engine.StatusFailed

	SkipAlreadyExists = engine.SkipAlreadyExists
	SkipUpToDate      = engine.SkipUpToDate
	SkipDuplicate     = engine.SkipDuplicate

	SkipIfExists = engine.SkipIfExists
	SkipIfNewer  = engine.SkipIfNewer

	StatePending   = engine.StatePending
	StateConverted = engine.StateConverted
	StateStale     = engine.StateStale
	StateInvalid   = engine.StateInvalid
)

// DefaultRunOptions returns quality 85, .jpg/.jpeg/.png, sequential, skip if exists.
func DefaultRunOptions() RunOptions {
	return engine.DefaultOptions()
}
