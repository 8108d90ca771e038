package driver

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"hop/internal/buildpipeline"
	"hop/internal/diag"
	"hop/internal/observ"
	"hop/internal/source"
	"hop/internal/trace"
)

// CheckOptions configures CheckFiles.
type CheckOptions struct {
	Jobs           int // <= 0 means GOMAXPROCS
	MaxDiagnostics int
	BaseDir        string
	Cache          *DiskCache
	Progress       buildpipeline.ProgressSink
	Timer          *observ.Timer
}

// FileCheck is the outcome for one script.
type FileCheck struct {
	Path    string
	Display string
	FileID  source.FileID
	Bag     *diag.Bag
	Cached  bool
	Err     error
	Timings buildpipeline.Timings
}

// CheckResult aggregates a CheckFiles run. Files keeps the input order.
type CheckResult struct {
	FileSet *source.FileSet
	Files   []FileCheck
}

// ErrorCount sums errors over every file.
func (r *CheckResult) ErrorCount() int {
	n := 0
	for i := range r.Files {
		n += r.Files[i].Bag.ErrorCount()
	}
	return n
}

// Failed reports whether any file failed to load or compile.
func (r *CheckResult) Failed() bool {
	for i := range r.Files {
		if r.Files[i].Err != nil {
			return true
		}
	}
	return false
}

// Diagnostics merges every file's bag, sorted by position.
func (r *CheckResult) Diagnostics(max int) *diag.Bag {
	out := diag.NewBag(max)
	for i := range r.Files {
		out.Merge(r.Files[i].Bag)
	}
	out.Sort()
	return out
}

// CheckFiles compiles every path without running it. Files are loaded into
// one FileSet up front, then compiled in parallel. The returned error is
// non-nil only for cancellation; per-file failures are in the result.
func CheckFiles(ctx context.Context, paths []string, opts CheckOptions) (*CheckResult, error) {
	fs := source.NewFileSetWithBase(opts.BaseDir)
	res := &CheckResult{FileSet: fs, Files: make([]FileCheck, len(paths))}
	if len(paths) == 0 {
		return res, nil
	}

	displays := buildpipeline.DisplayPaths(paths, opts.BaseDir)
	buildpipeline.EmitQueued(opts.Progress, displays)

	// FileSet не потокобезопасен на запись, поэтому загрузка последовательная
	idx := opts.Timer.Begin("load_files")
	for i, path := range paths {
		fc := &res.Files[i]
		fc.Path = path
		fc.Display = displays[i]
		fc.Bag = diag.NewBag(opts.MaxDiagnostics)

		start := time.Now()
		buildpipeline.Emit(opts.Progress, fc.Display, buildpipeline.StageLoad, buildpipeline.StatusWorking, nil, 0)
		id, err := fs.Load(path)
		fc.Timings.Add(buildpipeline.StageLoad, time.Since(start))
		if err != nil {
			// плейсхолдер, чтобы у диагностики был файл
			id = fs.AddVirtual(path, nil)
			fc.Bag.Add(diag.NewError(diag.IOReadFailed, source.Span{File: id},
				fmt.Sprintf("Không đọc được tệp: %v", err)))
			fc.Err = fmt.Errorf("%s: %w", fc.Display, err)
			buildpipeline.Emit(opts.Progress, fc.Display, buildpipeline.StageLoad, buildpipeline.StatusError, err, time.Since(start))
		}
		fc.FileID = id
	}
	opts.Timer.End(idx, fmt.Sprintf("%d files", len(paths)))

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	tr := trace.FromContext(ctx)
	parent := trace.CurrentSpan(ctx).SpanID
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))

	idx = opts.Timer.Begin("compile_files")
	for i := range res.Files {
		fc := &res.Files[i]
		if fc.Err != nil {
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			span := trace.Begin(tr, trace.ScopeFile, fc.Display, parent)
			fctx := trace.WithSpan(gctx, span)

			// индекс уникален для горутины, мьютекс не нужен
			cr, err := CompileFile(fctx, fs, fs.Get(fc.FileID), CompileOptions{
				MaxDiagnostics: opts.MaxDiagnostics,
				BaseDir:        opts.BaseDir,
				Cache:          opts.Cache,
				Progress:       opts.Progress,
				DisplayPath:    fc.Display,
			})
			fc.Bag.Merge(cr.Bag)
			fc.Cached = cr.Cached
			for _, st := range []buildpipeline.Stage{buildpipeline.StageCache, buildpipeline.StageCompile} {
				if cr.Timings.Has(st) {
					fc.Timings.Add(st, cr.Timings.Duration(st))
				}
			}
			if err != nil {
				fc.Err = err
				span.End("error")
				if errors.Is(err, ErrCompile) {
					return nil
				}
				return err
			}
			span.End("")
			return nil
		})
	}
	err := g.Wait()
	opts.Timer.End(idx, "")
	return res, err
}
