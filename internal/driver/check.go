package driver

import (
	"context"
	"fmt"
	"time"

	"nut/internal/ast"
	"nut/internal/diag"
	"nut/internal/observ"
	"nut/internal/parser"
	"nut/internal/project"
	"nut/internal/sema"
	"nut/internal/source"
	"nut/internal/symbols"
	"nut/internal/trace"
	"nut/internal/version"
)

// Options configure a check run.
type Options struct {
	// Config supplies resolver choice, warning filters and the diagnostic cap.
	Config project.Config
	// Jobs limits CheckFiles concurrency; 0 means GOMAXPROCS.
	Jobs     int
	Cache    *DiskCache // nil disables caching
	Progress ProgressSink
	Timer    *observ.Timer
	// StopAfter set to StageParse skips semantic analysis. Cached results
	// are used only for full runs.
	StopAfter Stage
}

// Result is the outcome of checking one file.
type Result struct {
	Path    string
	FileSet *source.FileSet
	FileID  source.FileID
	Tree    *ast.Tree // nil when answered from the cache
	Root    ast.NodeID
	Bag     *diag.Bag
	Sema    *sema.Result
	// Err is the fatal error that stopped the file: *parser.Error,
	// *sema.SemanticError, *sema.InternalError or a load error.
	Err    error
	Cached bool
}

// Failed reports whether the file should make `nut check` exit non-zero.
func (r *Result) Failed(warningsAsErrors bool) bool {
	return r.Err != nil || r.Bag.Blocking(warningsAsErrors)
}

func (o *Options) maxDiagnostics() int {
	if o.Config.Check.MaxDiagnostics > 0 {
		return o.Config.Check.MaxDiagnostics
	}
	return 100
}

func (o *Options) full() bool {
	return o.StopAfter == "" || o.StopAfter == StageAnalyze
}

// CheckSource checks in-memory text registered under name.
func CheckSource(ctx context.Context, name string, src []byte, opts Options) (*Result, error) {
	fs := source.NewFileSet()
	id := fs.AddVirtual(name, src)
	return checkLoaded(ctx, fs, id, opts)
}

// CheckFile loads path into fs and checks it. The returned error is reserved
// for load failures and cancellation; rejected programs are reported through
// Result.Err and Result.Bag.
func CheckFile(ctx context.Context, fs *source.FileSet, path string, opts Options) (*Result, error) {
	emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusWorking})
	id, err := fs.Load(path)
	if err != nil {
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusError, Err: err})
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return checkLoaded(ctx, fs, id, opts)
}

func checkLoaded(ctx context.Context, fs *source.FileSet, id source.FileID, opts Options) (*Result, error) {
	file := fs.Get(id)
	path := file.Path
	ctx, span := trace.Start(ctx, trace.ScopeFile, path)
	defer span.End("")
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()

	res := &Result{
		Path:    path,
		FileSet: fs,
		FileID:  id,
		Bag:     diag.NewBag(opts.maxDiagnostics()),
	}

	var key project.Digest
	useCache := opts.Cache != nil && opts.full()
	if useCache {
		key = cacheKey(file, &opts.Config)
		var payload DiskPayload
		if ok, err := opts.Cache.Get(key, &payload); err == nil && ok {
			payload.restore(res, id)
			res.Cached = true
			span.WithExtra("cache", "hit")
			emit(opts.Progress, Event{File: path, Stage: StageAnalyze, Status: StatusCached, Elapsed: time.Since(start)})
			return res, nil
		}
	}

	if err := run(ctx, res, file, opts); err != nil {
		return nil, err
	}

	if useCache {
		// a failed write only costs the next run a re-check
		_ = opts.Cache.Put(key, newPayload(res))
	}
	status := StatusDone
	if res.Failed(false) {
		status = StatusError
	}
	if res.Err != nil {
		span.WithExtra("error", res.Err.Error())
	}
	emit(opts.Progress, Event{File: path, Stage: StageAnalyze, Status: status, Err: res.Err, Elapsed: time.Since(start)})
	return res, nil
}

// run parses and analyzes file into res. Only cancellation is returned.
func run(ctx context.Context, res *Result, file *source.File, opts Options) error {
	emit(opts.Progress, Event{File: res.Path, Stage: StageParse, Status: StatusWorking})
	done := opts.Timer.Track("parse " + res.Path)
	res.Tree = ast.NewTree(uint(len(file.Content) / 4))
	root, err := parser.ParseFile(ctx, file, res.Tree, parser.Options{Reporter: diag.BagReporter{Bag: res.Bag}})
	done(fmt.Sprintf("%d nodes", res.Tree.Len()))
	if err != nil {
		res.Err = err
		return nil
	}
	res.Root = root
	if !opts.full() {
		return nil
	}

	emit(opts.Progress, Event{File: res.Path, Stage: StageAnalyze, Status: StatusWorking})
	done = opts.Timer.Track("sema " + res.Path)
	resolver, _ := symbols.ParseKind(opts.Config.Check.Resolver)
	sres, err := sema.Analyze(ctx, res.Tree, root, sema.Options{
		Resolver:        resolver,
		DisableWarnings: opts.Config.DisabledWarnings(),
		MaxDiagnostics:  opts.maxDiagnostics(),
		Timer:           opts.Timer,
	})
	done("")
	if sres != nil {
		res.Sema = sres
		res.Bag.Merge(sres.Bag)
	}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		res.Err = err
	}
	return nil
}

func cacheKey(file *source.File, cfg *project.Config) project.Digest {
	return project.Combine(project.Digest(file.Hash), cfg.Fingerprint(), project.Sum([]byte(version.Version)))
}
