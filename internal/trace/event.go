package trace

import "time"

// Kind represents the type of trace event.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
	KindHeartbeat // periodic liveness signal
)

func (k Kind) String() string {
	switch k {
	case KindSpanBegin:
		return "begin"
	case KindSpanEnd:
		return "end"
	case KindPoint:
		return "point"
	case KindHeartbeat:
		return "heartbeat"
	default:
		return "unknown"
	}
}

// Scope indicates the granularity of an event.
// Lower values are coarser.
type Scope uint8

const (
	ScopeCommand  Scope = iota + 1 // one CLI invocation
	ScopePhase                     // lex, compile, run
	ScopeFile                      // one script inside a multi-file command
	ScopeFunction                  // one compiled function
)

func (s Scope) String() string {
	switch s {
	case ScopeCommand:
		return "command"
	case ScopePhase:
		return "phase"
	case ScopeFile:
		return "file"
	case ScopeFunction:
		return "function"
	default:
		return "unknown"
	}
}

// Event is a single trace record.
type Event struct {
	Time     time.Time
	Seq      uint64 // assigned by the tracer that stores it
	RunID    string
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64 // 0 for roots
	GID      uint64
	Name     string // "compile", "file:examples/fib.hop"
	Detail   string
	Extra    map[string]string
}
