package driver

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"hop/internal/bytecode"
	"hop/internal/observ"
	"hop/internal/trace"
	"hop/internal/vm"
)

// RunOptions configures Run.
type RunOptions struct {
	VM    vm.Options
	Timer *observ.Timer
	// CrashDump receives the trace ring buffer when the script fails,
	// if the tracer keeps one.
	CrashDump io.Writer
}

// RunResult describes one execution.
type RunResult struct {
	RunID   string
	Status  vm.Status
	Err     *vm.RuntimeError
	Elapsed time.Duration
}

// Run executes a compiled script on a fresh VM. Runtime errors are printed
// to opts.VM.ErrOut in the interpreter's format and returned wrapped in
// ErrRuntime.
func Run(ctx context.Context, script *bytecode.Function, opts RunOptions) (RunResult, error) {
	return RunOn(ctx, vm.New(opts.VM), script, opts)
}

// RunOn executes script on an existing VM, keeping its globals.
func RunOn(ctx context.Context, machine *vm.VM, script *bytecode.Function, opts RunOptions) (RunResult, error) {
	tr := trace.FromContext(ctx)
	res := RunResult{RunID: uuid.NewString()}
	span := trace.Begin(tr, trace.ScopePhase, "run", trace.CurrentSpan(ctx).SpanID).
		WithExtra("run_id", res.RunID)

	idx := opts.Timer.Begin("run")
	start := time.Now()
	res.Status = machine.Interpret(script)
	res.Elapsed = time.Since(start)

	if res.Status == vm.StatusOK {
		opts.Timer.End(idx, "")
		span.End("ok")
		return res, nil
	}

	res.Err = machine.LastError()
	opts.Timer.End(idx, res.Err.Code.String())
	span.WithExtra("code", res.Err.Code.String()).End(res.Err.Message)
	if ring := trace.RingOf(tr); ring != nil && opts.CrashDump != nil {
		fmt.Fprintf(opts.CrashDump, "trace (run %s):\n", res.RunID)
		_ = ring.Dump(opts.CrashDump, trace.FormatText)
	}
	return res, fmt.Errorf("%w: %w", ErrRuntime, res.Err)
}
