package driver

import (
	"context"
	"fmt"
	"time"

	"hop/internal/buildpipeline"
	"hop/internal/bytecode"
	"hop/internal/compiler"
	"hop/internal/diag"
	"hop/internal/observ"
	"hop/internal/source"
	"hop/internal/trace"
)

// CompileOptions configures Compile and CompileFile.
type CompileOptions struct {
	MaxDiagnostics int
	BaseDir        string        // for relative display paths
	Cache          *DiskCache    // nil disables the bytecode cache
	Timer          *observ.Timer // nil disables phase timings
	Progress       buildpipeline.ProgressSink
	DisplayPath    string // name used in progress events; defaults to the file path
}

// CompileResult holds everything a caller needs to report or run a script.
type CompileResult struct {
	FileSet *source.FileSet
	File    *source.File
	Script  *bytecode.Function // nil when compilation failed
	Bag     *diag.Bag
	Cached  bool
	Timings buildpipeline.Timings
}

// Compile loads the script at path and compiles it.
func Compile(ctx context.Context, path string, opts CompileOptions) (*CompileResult, error) {
	fs := source.NewFileSetWithBase(opts.BaseDir)
	idx := opts.Timer.Begin("load_file")
	fileID, err := fs.Load(path)
	opts.Timer.End(idx, "")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return CompileFile(ctx, fs, fs.Get(fileID), opts)
}

// CompileFile compiles a file already present in fs. The returned error
// wraps ErrCompile when the script has errors; the diagnostics are in the
// result's Bag either way.
func CompileFile(ctx context.Context, fs *source.FileSet, file *source.File, opts CompileOptions) (*CompileResult, error) {
	tr := trace.FromContext(ctx)
	span := trace.Begin(tr, trace.ScopePhase, "compile", trace.CurrentSpan(ctx).SpanID)

	display := opts.DisplayPath
	if display == "" {
		display = file.Path
	}
	res := &CompileResult{
		FileSet: fs,
		File:    file,
		Bag:     diag.NewBag(opts.MaxDiagnostics),
	}

	if opts.Cache != nil {
		start := time.Now()
		idx := opts.Timer.Begin("cache_lookup")
		fn, warnings, ok, err := opts.Cache.Load(file)
		opts.Timer.End(idx, hitNote(ok))
		res.Timings.Add(buildpipeline.StageCache, time.Since(start))
		if err != nil {
			res.cacheWarning(err)
		}
		if ok {
			res.Script = fn
			res.Cached = true
			for _, w := range warnings {
				res.Bag.Add(w)
			}
			buildpipeline.Emit(opts.Progress, display, buildpipeline.StageCache, buildpipeline.StatusCached, nil, time.Since(start))
			span.End("cached")
			return res, nil
		}
	}

	buildpipeline.Emit(opts.Progress, display, buildpipeline.StageCompile, buildpipeline.StatusWorking, nil, 0)
	start := time.Now()
	idx := opts.Timer.Begin("compile")
	fn, err := compiler.Compile(file, compiler.Options{Reporter: diag.BagReporter{Bag: res.Bag}})
	elapsed := time.Since(start)
	res.Timings.Add(buildpipeline.StageCompile, elapsed)
	if err != nil {
		opts.Timer.End(idx, "error")
		buildpipeline.Emit(opts.Progress, display, buildpipeline.StageCompile, buildpipeline.StatusError, err, elapsed)
		span.End("error")
		return res, fmt.Errorf("%s: %w", display, err)
	}
	functions := 0
	fn.Walk(func(f *bytecode.Function) {
		functions++
		trace.Point(tr, trace.ScopeFunction, "function", span.ID(),
			fmt.Sprintf("%s %d bytes, %d constants", f.DisplayName(), f.Chunk.Len(), len(f.Chunk.Constants)))
	})
	opts.Timer.End(idx, fmt.Sprintf("%d functions", functions))
	res.Script = fn

	if opts.Cache != nil {
		if err := opts.Cache.Store(file, fn, res.Bag.Items()); err != nil {
			res.cacheWarning(err)
		}
	}
	buildpipeline.Emit(opts.Progress, display, buildpipeline.StageCompile, buildpipeline.StatusDone, nil, elapsed)
	span.WithExtra("functions", fmt.Sprint(functions)).End("")
	return res, nil
}

// cacheWarning records a cache failure without failing the compile.
func (r *CompileResult) cacheWarning(err error) {
	r.Bag.Add(diag.New(diag.SevWarning, diag.IOCacheFailed,
		source.Span{File: r.File.ID},
		fmt.Sprintf("Không dùng được bộ nhớ đệm: %v", err)))
}

func hitNote(ok bool) string {
	if ok {
		return "hit"
	}
	return "miss"
}
