package engine

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io/fs"
	"os"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/bianoble/img2webp/internal/codec"
	"github.com/bianoble/img2webp/internal/pathmap"
	"github.com/bianoble/img2webp/internal/sandbox"
)

// Converter walks a source tree and converts every supported image into
// the codec's target format under a mirrored destination tree.
type Converter struct {
	Codec codec.Codec

	// Mapper defaults to one built from Codec.Extension().
	Mapper *pathmap.Mapper
}

// Run converts every candidate under inputRoot into outputRoot.
//
// Only two conditions are fatal and return a nil report: an input root that
// is missing or not a directory (*ConfigError), and an output root that
// cannot be created (*IOError). Every per-file problem is recorded as a
// failed entry and the batch continues.
//
// When ctx is cancelled no further files are enumerated, in-flight
// conversions finish, and the partial report is returned with ctx.Err().
func (c *Converter) Run(ctx context.Context, inputRoot, outputRoot string, opts Options) (*Report, error) {
	if c.Codec == nil {
		return nil, fmt.Errorf("converter has no codec")
	}
	if err := checkInputRoot(inputRoot); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(outputRoot, 0755); err != nil {
		return nil, &IOError{Op: "creating output directory", Path: outputRoot, Err: err}
	}

	r := &run{
		codec:      c.Codec,
		mapper:     c.mapper(),
		inputRoot:  inputRoot,
		outputRoot: outputRoot,
		opts:       opts,
	}

	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	var g errgroup.Group
	g.SetLimit(workers)

	claims := make(map[string]*claim)
	seq := 0
	for path, walkErr := range NewWalker(inputRoot, outputRoot, opts).Candidates(ctx) {
		idx := seq
		seq++

		if walkErr != nil {
			r.record(idx, failed(Task{Source: path}, &IOError{Op: "reading", Path: path, Err: walkErr}))
			continue
		}

		task, err := r.task(path)
		if err != nil {
			r.record(idx, failed(task, err))
			continue
		}

		// Sources sharing a destination run in discovery order. A later one
		// is skipped only when an earlier one left the destination in place.
		prev := claims[task.Destination]
		c := &claim{done: make(chan struct{})}
		claims[task.Destination] = c

		g.Go(func() error {
			defer close(c.done)
			if prev != nil {
				<-prev.done
				if prev.outcome.Status != StatusFailed {
					c.outcome = Outcome{Status: StatusSkipped, Reason: SkipDuplicate}
					r.record(idx, Entry{Task: task, Outcome: c.outcome})
					return nil
				}
			}
			c.outcome = r.process(task)
			r.record(idx, Entry{Task: task, Outcome: c.outcome})
			return nil
		})
	}
	_ = g.Wait()

	return r.report(), ctx.Err()
}

func (c *Converter) mapper() *pathmap.Mapper {
	if c.Mapper != nil {
		return c.Mapper
	}
	return pathmap.New(c.Codec.Extension())
}

func checkInputRoot(inputRoot string) error {
	info, err := os.Stat(inputRoot)
	if err != nil {
		return &ConfigError{Path: inputRoot, Err: err}
	}
	if !info.IsDir() {
		return &ConfigError{Path: inputRoot, Err: fmt.Errorf("not a directory")}
	}
	return nil
}

// claim tracks the latest task bound for a destination. outcome is set
// before done is closed.
type claim struct {
	done    chan struct{}
	outcome Outcome
}

type indexedEntry struct {
	idx   int
	entry Entry
}

// run holds the state of one Run invocation.
type run struct {
	codec      codec.Codec
	mapper     *pathmap.Mapper
	inputRoot  string
	outputRoot string
	opts       Options

	mu      sync.Mutex
	entries []indexedEntry
}

func (r *run) record(idx int, e Entry) {
	r.mu.Lock()
	r.entries = append(r.entries, indexedEntry{idx: idx, entry: e})
	r.mu.Unlock()
}

// report returns entries in discovery order regardless of completion order.
func (r *run) report() *Report {
	r.mu.Lock()
	defer r.mu.Unlock()

	sort.Slice(r.entries, func(i, j int) bool { return r.entries[i].idx < r.entries[j].idx })
	out := &Report{InputRoot: r.inputRoot, OutputRoot: r.outputRoot, Entries: make([]Entry, len(r.entries))}
	for i, ie := range r.entries {
		out.Entries[i] = ie.entry
	}
	return out
}

// task maps a discovered path to its destination.
func (r *run) task(path string) (Task, error) {
	t := Task{Source: path}
	rel, err := pathmap.Rel(r.inputRoot, path)
	if err != nil {
		return t, &PathError{Path: path, Err: err}
	}
	t.Rel = rel

	dest, err := r.mapper.Map(r.inputRoot, r.outputRoot, path)
	if err != nil {
		if errors.Is(err, sandbox.ErrOutsideRoot) {
			return t, &PathError{Path: path, Err: err}
		}
		return t, &IOError{Op: "resolving", Path: path, Err: err}
	}
	t.Destination = dest
	return t, nil
}

// process drives one task from Discovered to a terminal state.
func (r *run) process(t Task) Outcome {
	start := time.Now()
	fail := func(err error) Outcome {
		return Outcome{Status: StatusFailed, Err: err, Duration: time.Since(start)}
	}

	if err := r.mapper.EnsureParentDirs(t.Destination); err != nil {
		return fail(&IOError{Op: "creating directory for", Path: t.Destination, Err: err})
	}

	reason, skip, err := r.shouldSkip(t)
	if err != nil {
		return fail(err)
	}
	if skip {
		return Outcome{Status: StatusSkipped, Reason: reason, Duration: time.Since(start)}
	}

	data, err := os.ReadFile(t.Source)
	if err != nil {
		return fail(&IOError{Op: "reading", Path: t.Source, Err: err})
	}

	img, err := decode(r.codec, data)
	if err != nil {
		return fail(&DecodeError{Path: t.Source, Err: err})
	}

	out, err := encode(r.codec, img, r.opts.Quality)
	if err != nil {
		return fail(&EncodeError{Path: t.Source, Err: err})
	}

	destRel := pathmap.ReplaceExt(t.Rel, r.mapper.Extension())
	if err := sandbox.SafeWrite(r.outputRoot, destRel, out, 0644); err != nil {
		if errors.Is(err, sandbox.ErrOutsideRoot) {
			return fail(&PathError{Path: t.Destination, Err: err})
		}
		return fail(&IOError{Op: "writing", Path: t.Destination, Err: err})
	}

	return Outcome{
		Status:      StatusConverted,
		SourceBytes: int64(len(data)),
		OutputBytes: int64(len(out)),
		Duration:    time.Since(start),
	}
}

func (r *run) shouldSkip(t Task) (SkipReason, bool, error) {
	dst, err := os.Stat(t.Destination)
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, &IOError{Op: "checking", Path: t.Destination, Err: err}
	}

	if r.opts.Skip != SkipIfNewer {
		return SkipAlreadyExists, true, nil
	}

	src, err := os.Stat(t.Source)
	if err != nil {
		return "", false, &IOError{Op: "checking", Path: t.Source, Err: err}
	}
	if dst.Size() > 0 && !dst.ModTime().Before(src.ModTime()) {
		return SkipUpToDate, true, nil
	}
	return "", false, nil
}

func failed(t Task, err error) Entry {
	return Entry{Task: t, Outcome: Outcome{Status: StatusFailed, Err: err}}
}

// decode and encode report codec panics as errors.
func decode(c codec.Codec, data []byte) (img image.Image, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("decoder panic: %v", p)
		}
	}()
	return c.Decode(data)
}

func encode(c codec.Codec, img image.Image, quality int) (out []byte, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("encoder panic: %v", p)
		}
	}()
	return c.Encode(img, quality)
}
