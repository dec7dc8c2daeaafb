package engine

import (
	"context"
	"errors"
	"io/fs"
	"os"
)

// TaskState describes where a candidate stands relative to the output tree.
type TaskState string

const (
	StatePending   TaskState = "pending"   // no destination yet
	StateConverted TaskState = "converted" // destination present and not older than source
	StateStale     TaskState = "stale"     // destination empty or older than source
	StateInvalid   TaskState = "invalid"   // unreadable or outside the input root
)

// TaskStatus is one row of a Status listing.
type TaskStatus struct {
	Task  Task
	State TaskState
	Err   error // invalid only
}

// Status reports the state of every candidate without decoding, encoding,
// or creating anything. The output root does not need to exist.
func (c *Converter) Status(ctx context.Context, inputRoot, outputRoot string, opts Options) ([]TaskStatus, error) {
	if c.Codec == nil && c.Mapper == nil {
		return nil, errors.New("converter has no codec")
	}
	if err := checkInputRoot(inputRoot); err != nil {
		return nil, err
	}

	r := &run{mapper: c.mapper(), inputRoot: inputRoot, outputRoot: outputRoot, opts: opts}

	var statuses []TaskStatus
	for path, walkErr := range NewWalker(inputRoot, outputRoot, opts).Candidates(ctx) {
		if walkErr != nil {
			statuses = append(statuses, TaskStatus{
				Task:  Task{Source: path},
				State: StateInvalid,
				Err:   &IOError{Op: "reading", Path: path, Err: walkErr},
			})
			continue
		}

		task, err := r.task(path)
		if err != nil {
			statuses = append(statuses, TaskStatus{Task: task, State: StateInvalid, Err: err})
			continue
		}

		state, err := destinationState(task)
		statuses = append(statuses, TaskStatus{Task: task, State: state, Err: err})
	}

	return statuses, ctx.Err()
}

func destinationState(t Task) (TaskState, error) {
	dst, err := os.Stat(t.Destination)
	if errors.Is(err, fs.ErrNotExist) {
		return StatePending, nil
	}
	if err != nil {
		return StateInvalid, &IOError{Op: "checking", Path: t.Destination, Err: err}
	}
	src, err := os.Stat(t.Source)
	if err != nil {
		return StateInvalid, &IOError{Op: "checking", Path: t.Source, Err: err}
	}
	if dst.Size() == 0 || dst.ModTime().Before(src.ModTime()) {
		return StateStale, nil
	}
	return StateConverted, nil
}

// CountStates tallies statuses by state.
func CountStates(statuses []TaskStatus) map[TaskState]int {
	counts := make(map[TaskState]int)
	for _, s := range statuses {
		counts[s.State]++
	}
	return counts
}
