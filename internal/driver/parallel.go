package driver

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"nut/internal/diag"
	"nut/internal/source"
	"nut/internal/trace"
)

// Summary aggregates a CheckFiles run.
type Summary struct {
	Files    int
	Failed   int
	Cached   int
	Errors   int
	Warnings int
}

func (s Summary) String() string {
	return fmt.Sprintf("%d files, %d failed, %d errors, %d warnings (%d cached)",
		s.Files, s.Failed, s.Errors, s.Warnings, s.Cached)
}

// Summarize counts results; warningsAsErrors counts warning-only files as failed.
func Summarize(results []*Result, warningsAsErrors bool) Summary {
	s := Summary{Files: len(results)}
	for _, r := range results {
		if r.Failed(warningsAsErrors) {
			s.Failed++
		}
		if r.Cached {
			s.Cached++
		}
		s.Errors += r.Bag.Count(diag.SevError)
		s.Warnings += r.Bag.Count(diag.SevWarning)
	}
	return s
}

// CheckFiles checks every path concurrently. Files are loaded up front in
// the calling goroutine, each worker then owns its tree and bag; the shared
// FileSet is only read. Results keep the order of paths. A file that cannot
// be loaded gets an IO diagnostic instead of aborting the run; the returned
// error is reserved for cancellation.
func CheckFiles(ctx context.Context, paths []string, opts Options) (*source.FileSet, []*Result, error) {
	ctx, span := trace.Start(ctx, trace.ScopeDriver, "check")
	defer span.End("")
	span.WithExtra("files", fmt.Sprint(len(paths)))

	fs := source.NewFileSet()
	results := make([]*Result, len(paths))
	if len(paths) == 0 {
		return fs, results, nil
	}

	for _, p := range paths {
		emit(opts.Progress, Event{File: p, Stage: StageLoad, Status: StatusQueued})
	}

	ids := make([]source.FileID, len(paths))
	loaded := make([]bool, len(paths))
	for i, p := range paths {
		id, err := fs.Load(p)
		if err != nil {
			results[i] = loadFailure(fs, p, err, opts.maxDiagnostics())
			emit(opts.Progress, Event{File: p, Stage: StageLoad, Status: StatusError, Err: err})
			continue
		}
		ids[i], loaded[i] = id, true
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	var active, peak atomic.Int32

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))
	for i := range paths {
		if !loaded[i] {
			continue
		}
		g.Go(func() error {
			n := active.Add(1)
			defer active.Add(-1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			// индекс i уникален для горутины, мьютекс не нужен
			res, err := checkLoaded(gctx, fs, ids[i], opts)
			if err != nil {
				return err
			}
			res.Path = paths[i]
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fs, results, err
	}
	span.WithExtra("peak_workers", fmt.Sprint(peak.Load()))
	return fs, results, nil
}

func loadFailure(fs *source.FileSet, path string, err error, maxDiagnostics int) *Result {
	// an empty stand-in file gives the diagnostic a path to point at
	id := fs.AddVirtual(path, nil)
	res := &Result{
		Path:    path,
		FileSet: fs,
		FileID:  id,
		Bag:     diag.NewBag(maxDiagnostics),
		Err:     fmt.Errorf("load %s: %w", path, err),
	}
	res.Bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{File: id}, "failed to load file: "+err.Error()))
	return res
}
