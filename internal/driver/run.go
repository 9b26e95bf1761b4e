package driver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"sniper/internal/change"
	"sniper/internal/edit"
	"sniper/internal/format"
	"sniper/internal/javafront"
	"sniper/internal/observ"
	"sniper/internal/sniper"
	"sniper/internal/source"
	"sniper/internal/trace"
)

// ErrRoundTrip is reported by ModeCheck for a file that does not reprint
// byte for byte.
var ErrRoundTrip = errors.New("round trip changed the file")

// Mode selects what Run does with each file.
type Mode uint8

const (
	// ModePrint reprints every file without edits.
	ModePrint Mode = iota
	// ModeCheck reprints without edits and fails files that change.
	ModeCheck
	// ModeEdit applies Options.Script before printing.
	ModeEdit
)

func (m Mode) String() string {
	switch m {
	case ModeCheck:
		return "check"
	case ModeEdit:
		return "edit"
	default:
		return "print"
	}
}

// Options configures a run.
type Options struct {
	Mode   Mode
	Jobs   int
	Format format.Options
	Script *edit.Script
	Strict bool

	// Write stores changed output back to the input file.
	Write    bool
	Cache    *DiskCache
	Progress ProgressSink

	// Timer, when set, accumulates the time spent in each stage.
	Timer *observ.Timer
}

// FileResult is the outcome for one file. Err holds per-file failures; they
// do not stop the other files.
type FileResult struct {
	Path      string
	Output    []byte
	Changed   bool
	Written   bool
	Cached    bool
	Fragments int
	Applied   []edit.AppliedEdit
	Skipped   []edit.SkippedEdit
	Elapsed   time.Duration
	Err       error
}

// Run processes files in parallel. Results are in input order. The returned
// error is only set when the run itself was cancelled.
func Run(ctx context.Context, files []string, opts Options) ([]FileResult, error) {
	if len(files) == 0 {
		return nil, ErrNoFiles
	}
	if opts.Mode == ModeEdit && opts.Script == nil {
		return nil, fmt.Errorf("driver: edit mode needs a script")
	}
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeDriver, "run", trace.CurrentSpan(ctx).SpanID).
		WithExtra("files", fmt.Sprint(len(files))).
		WithExtra("mode", opts.Mode.String())
	defer span.End("")
	ctx = trace.WithSpan(ctx, span)

	EmitQueued(opts.Progress, files)

	// Each goroutine owns its slot, no mutex needed.
	results := make([]FileResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				results[i] = FileResult{Path: path, Err: gctx.Err()}
				return gctx.Err()
			default:
			}
			results[i] = ProcessFile(gctx, path, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// ProcessFile runs the load, parse, edit, print and write stages for path.
func ProcessFile(ctx context.Context, path string, opts Options) (res FileResult) {
	res.Path = path
	began := time.Now()
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeFile, "file", trace.CurrentSpan(ctx).SpanID).WithExtra("path", path)
	ctx = trace.WithSpan(ctx, span)

	stage, stageStart := StageLoad, began
	defer func() {
		opts.Timer.Add(string(stage), time.Since(stageStart))
		res.Elapsed = time.Since(began)
		if res.Err != nil {
			emit(opts.Progress, Event{File: path, Stage: stage, Status: StatusError, Err: res.Err, Elapsed: res.Elapsed})
			span.End(res.Err.Error())
			return
		}
		emit(opts.Progress, Event{File: path, Stage: stage, Status: StatusDone, Elapsed: res.Elapsed})
		span.End("")
	}()
	enter := func(s Stage) {
		if s != stage {
			opts.Timer.Add(string(stage), time.Since(stageStart))
			stage, stageStart = s, time.Now()
		}
		emit(opts.Progress, Event{File: path, Stage: s, Status: StatusWorking})
	}

	enter(StageLoad)
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		res.Err = err
		return res
	}
	file := fs.Get(id)

	var key Digest
	if opts.Mode == ModeCheck && opts.Cache != nil {
		key = CacheKey(file.Content, opts.Format)
		var hit CachePayload
		if ok, err := opts.Cache.Get(key, &hit); err == nil && ok && hit.Identical {
			res.Cached = true
			res.Fragments = hit.Fragments
			res.Output = file.Restore(bytes.Clone(file.Content))
			return res
		}
	}

	enter(StageParse)
	unit, err := javafront.Parse(ctx, file)
	if err != nil {
		res.Err = err
		return res
	}
	res.Fragments = unit.Fragments.Len()
	collector := change.NewCollector().Attach(unit.Factory)

	if opts.Mode == ModeEdit {
		enter(StageEdit)
		applied, err := edit.Apply(unit.Root, opts.Script, edit.ApplyOptions{Strict: opts.Strict})
		if applied != nil {
			res.Applied, res.Skipped = applied.Applied, applied.Skipped
		}
		if err != nil && !errors.Is(err, edit.ErrNoEdits) {
			res.Err = fmt.Errorf("%s: %w", path, err)
			return res
		}
	}

	enter(StagePrint)
	p := sniper.NewPrinter(unit.Fragments, change.NewResolver(collector), opts.Format)
	out, err := p.PrintUnit(ctx, unit.Root)
	if err != nil {
		res.Err = fmt.Errorf("%s: %w", path, err)
		return res
	}
	res.Changed = !bytes.Equal(out, file.Content)
	res.Output = file.Restore(out)

	if opts.Mode == ModeCheck {
		if res.Changed {
			res.Err = fmt.Errorf("%w: %s", ErrRoundTrip, path)
			return res
		}
		if opts.Cache != nil {
			payload := &CachePayload{Path: path, Identical: true, Fragments: res.Fragments, CheckedAt: time.Now()}
			if err := opts.Cache.Put(key, payload); err != nil {
				trace.Point(tracer, trace.ScopeFile, "cache:put", fmt.Sprintf("%s: %v", path, err))
			}
		}
	}

	if opts.Write && res.Changed {
		enter(StageWrite)
		mode := os.FileMode(0o644)
		if info, err := os.Stat(path); err == nil {
			mode = info.Mode()
		}
		if err := os.WriteFile(path, res.Output, mode); err != nil {
			res.Err = fmt.Errorf("write %s: %w", path, err)
			return res
		}
		res.Written = true
	}
	return res
}
