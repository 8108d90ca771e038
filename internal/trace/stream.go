package trace

import (
	"io"
	"sync"
)

// StreamTracer writes events immediately to an io.Writer.
type StreamTracer struct {
	mu     sync.Mutex
	w      io.Writer
	level  Level
	format Format
	runID  string
	wrote  bool // chrome: at least one event written
}

// NewStreamTracer creates a StreamTracer. FormatAuto falls back to text.
func NewStreamTracer(w io.Writer, level Level, format Format, runID string) *StreamTracer {
	if format == FormatAuto {
		format = FormatText
	}
	st := &StreamTracer{w: w, level: level, format: format, runID: runID}
	if format == FormatChrome {
		_, _ = io.WriteString(w, "{\"traceEvents\":[\n") //nolint:errcheck
	}
	return st
}

// Emit writes ev. Write errors are dropped so that tracing never fails a run.
func (t *StreamTracer) Emit(ev *Event) {
	if !t.level.ShouldEmit(ev.Scope) && ev.Kind != KindHeartbeat {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	ev.Seq = NextSeq()
	if ev.RunID == "" {
		ev.RunID = t.runID
	}
	if t.format == FormatChrome && t.wrote {
		_, _ = io.WriteString(t.w, ",\n") //nolint:errcheck
	}
	t.wrote = true
	_, _ = t.w.Write(FormatEvent(ev, t.format)) //nolint:errcheck
}

// Flush calls Flush on the writer when it has one.
func (t *StreamTracer) Flush() error {
	if flusher, ok := t.w.(interface{ Flush() error }); ok {
		return flusher.Flush()
	}
	return nil
}

// Close terminates the chrome array and closes the writer if it is an io.Closer.
func (t *StreamTracer) Close() error {
	t.mu.Lock()
	if t.format == FormatChrome {
		_, _ = io.WriteString(t.w, "\n]}\n") //nolint:errcheck
	}
	t.mu.Unlock()

	if err := t.Flush(); err != nil {
		return err
	}
	if closer, ok := t.w.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

func (t *StreamTracer) Level() Level  { return t.level }
func (t *StreamTracer) Enabled() bool { return t.level > LevelOff }
