package vm

import (
	"fmt"
	"io"
	"strings"

	"hop/internal/bytecode"
)

// Tracer outputs execution traces for debugging.
type Tracer struct {
	w         io.Writer
	showStack bool
}

// NewTracer creates a tracer that writes to w. With showStack each line
// also lists the current frame's slots.
func NewTracer(w io.Writer, showStack bool) *Tracer {
	return &Tracer{w: w, showStack: showStack}
}

// TraceInstr traces execution of an instruction.
// Format: [depth=N] <func> <offset> <line:col> <instr> [| slots]
func (t *Tracer) TraceInstr(vm *VM, frame *Frame) {
	if t == nil || t.w == nil {
		return
	}
	text, _ := bytecode.DisassembleInstruction(&frame.Func.Chunk, frame.PC)
	name := frame.Func.Name
	if frame.Func.IsScript() {
		name = "<script>"
	}
	fmt.Fprintf(t.w, "[depth=%d] %s %s", len(vm.frames), name, text)
	if t.showStack {
		fmt.Fprintf(t.w, " | %s", t.formatSlots(vm.stack[frame.Base:vm.sp]))
	}
	fmt.Fprintln(t.w)
}

func (t *Tracer) formatSlots(slots []bytecode.Value) string {
	parts := make([]string, len(slots))
	for i, v := range slots {
		parts[i] = t.formatValue(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (t *Tracer) formatValue(v bytecode.Value) string {
	const maxLen = 32
	s := v.String()
	if v.Kind == bytecode.VKString {
		s = fmt.Sprintf("%q", s)
	}
	if r := []rune(s); len(r) > maxLen {
		s = string(r[:maxLen-3]) + "..."
	}
	return s
}
