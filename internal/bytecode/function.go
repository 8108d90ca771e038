package bytecode

// MaxArity is the largest number of parameters or call arguments.
const MaxArity = 32

// Function is a compiled unit. It is immutable once the compiler finishes
// it and may be shared freely.
type Function struct {
	Name  string // empty for the top-level script
	Arity int
	Chunk Chunk
}

// IsScript reports whether f is the top-level script.
func (f *Function) IsScript() bool { return f.Name == "" }

// DisplayName returns the name used in stack traces: "script." or "hàm NAME().".
func (f *Function) DisplayName() string {
	if f.IsScript() {
		return "script."
	}
	return "hàm " + f.Name + "()."
}

// Walk calls visit for f and every function nested in its constant pools,
// depth first.
func (f *Function) Walk(visit func(*Function)) {
	visit(f)
	for _, c := range f.Chunk.Constants {
		if c.Kind == VKFunc && c.Fn != nil {
			c.Fn.Walk(visit)
		}
	}
}

// NativeFunc is the Go signature of a host function.
type NativeFunc func(args []Value) (Value, error)

// Native is a host-provided callable. Arity < 0 accepts any argument count.
type Native struct {
	Name  string
	Arity int
	Fn    NativeFunc
}
