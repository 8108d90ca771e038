package vm

import (
	"errors"
	"io"
	"os"

	"hop/internal/bytecode"
)

const (
	// DefaultMaxFrames is the call-frame capacity.
	DefaultMaxFrames = 64
	// DefaultFrameSlots is the value-stack budget per frame.
	DefaultFrameSlots = 256
)

// Options configures a VM.
type Options struct {
	MaxFrames  int       // 0 means DefaultMaxFrames
	FrameSlots int       // 0 means DefaultFrameSlots
	Out        io.Writer // PRINT output; nil means os.Stdout
	ErrOut     io.Writer // runtime error text; nil means Out
	Trace      *Tracer   // per-instruction trace, optional
	Runtime    Runtime   // nil means DefaultRuntime
}

// Status is the outcome of Interpret.
type Status int

const (
	StatusOK Status = iota
	StatusCompileError
	StatusRuntimeError
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusCompileError:
		return "compile error"
	case StatusRuntimeError:
		return "runtime error"
	default:
		return "unknown"
	}
}

// VM executes compiled functions on one value stack. Globals survive
// between runs, so a REPL can feed it one line at a time. A VM must not be
// used from several goroutines at once.
type VM struct {
	stack  []bytecode.Value
	sp     int
	frames []Frame // len is the live depth, cap the limit

	globals map[string]bytecode.Value

	out    io.Writer
	errOut io.Writer
	Trace  *Tracer
	RT     Runtime

	eb      *errorBuilder
	lastErr *RuntimeError
}

// New creates a VM with the built-in natives registered.
func New(opts Options) *VM {
	if opts.MaxFrames <= 0 {
		opts.MaxFrames = DefaultMaxFrames
	}
	if opts.FrameSlots <= 0 {
		opts.FrameSlots = DefaultFrameSlots
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.ErrOut == nil {
		opts.ErrOut = opts.Out
	}
	if opts.Runtime == nil {
		opts.Runtime = NewDefaultRuntime()
	}
	vm := &VM{
		stack:   make([]bytecode.Value, opts.MaxFrames*opts.FrameSlots),
		frames:  make([]Frame, 0, opts.MaxFrames),
		globals: make(map[string]bytecode.Value),
		out:     opts.Out,
		errOut:  opts.ErrOut,
		Trace:   opts.Trace,
		RT:      opts.Runtime,
	}
	vm.eb = &errorBuilder{vm: vm}
	vm.defineBuiltins()
	return vm
}

// Interpret runs fn to completion. A runtime error is written to the error
// output in the language's own format; the VM is reset and stays usable.
func (vm *VM) Interpret(fn *bytecode.Function) Status {
	err := vm.Run(fn)
	if err == nil {
		return StatusOK
	}
	var rtErr *RuntimeError
	if errors.As(err, &rtErr) {
		_, _ = io.WriteString(vm.errOut, rtErr.Text())
	}
	return StatusRuntimeError
}

// Run is Interpret without printing: it returns the *RuntimeError, if any.
func (vm *VM) Run(fn *bytecode.Function) error {
	vm.lastErr = nil
	vm.push(bytecode.FuncValue(fn))
	if rtErr := vm.callValue(vm.peek(0), 0); rtErr != nil {
		return vm.fail(rtErr)
	}
	if rtErr := vm.execute(); rtErr != nil {
		return vm.fail(rtErr)
	}
	return nil
}

// LastError returns the error of the most recent failed run.
func (vm *VM) LastError() *RuntimeError { return vm.lastErr }

func (vm *VM) fail(err *RuntimeError) error {
	vm.lastErr = err
	vm.resetStack()
	return err
}

func (vm *VM) resetStack() {
	clear(vm.stack[:vm.sp])
	vm.sp = 0
	vm.frames = vm.frames[:0]
}

// Depth returns the number of live call frames.
func (vm *VM) Depth() int { return len(vm.frames) }

// Global reads a global by name, folding it like the compiler does.
func (vm *VM) Global(name string) (bytecode.Value, bool) {
	v, ok := vm.globals[foldName(name)]
	return v, ok
}

// SetGlobal binds a global.
func (vm *VM) SetGlobal(name string, v bytecode.Value) {
	vm.globals[foldName(name)] = v
}

func (vm *VM) push(v bytecode.Value) {
	vm.stack[vm.sp] = v
	vm.sp++
}

func (vm *VM) pop() bytecode.Value {
	vm.sp--
	return vm.stack[vm.sp]
}

func (vm *VM) peek(distance int) bytecode.Value {
	return vm.stack[vm.sp-1-distance]
}
