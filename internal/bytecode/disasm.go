package bytecode

import (
	"fmt"
	"io"
)

// Disassemble writes a listing of fn and, after it, every nested function.
func Disassemble(w io.Writer, fn *Function) error {
	var err error
	fn.Walk(func(f *Function) {
		if err != nil {
			return
		}
		err = disassembleOne(w, f)
	})
	return err
}

func disassembleOne(w io.Writer, fn *Function) error {
	name := fn.Name
	if fn.IsScript() {
		name = "<script>"
	}
	if _, err := fmt.Fprintf(w, "== %s (tham số: %d, hằng: %d) ==\n", name, fn.Arity, len(fn.Chunk.Constants)); err != nil {
		return err
	}
	for offset := 0; offset < len(fn.Chunk.Code); {
		line, next := DisassembleInstruction(&fn.Chunk, offset)
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
		offset = next
	}
	return nil
}

// DisassembleInstruction renders the instruction at offset and returns the
// offset of the next one.
func DisassembleInstruction(c *Chunk, offset int) (string, int) {
	line, col := c.Position(offset)
	prefix := fmt.Sprintf("%04d %4d:%-3d ", offset, line, col)
	if offset > 0 && c.Lines[offset-1] == line {
		prefix = fmt.Sprintf("%04d %8s ", offset, "|")
	}

	op := Opcode(c.Code[offset])
	info, ok := op.Info()
	if !ok {
		return prefix + fmt.Sprintf("??? %d", c.Code[offset]), offset + 1
	}
	end := offset + op.Width()
	if end > len(c.Code) {
		return prefix + info.Name + " <truncated>", len(c.Code)
	}

	switch op {
	case OpConst, OpDef, OpGetGlobal, OpSetGlobal, OpGet, OpSet:
		idx := int(c.Code[offset+1])
		rendered := "<?>"
		if idx < len(c.Constants) {
			rendered = c.Constants[idx].String()
			if c.Constants[idx].Kind == VKString {
				rendered = "'" + rendered + "'"
			}
		}
		return prefix + fmt.Sprintf("%-6s %4d %s", info.Name, idx, rendered), end
	case OpGetLocal, OpSetLocal, OpCall, OpBox:
		return prefix + fmt.Sprintf("%-6s %4d", info.Name, c.Code[offset+1]), end
	case OpJump, OpJumpIfFalse:
		jump := int(c.ReadUint16(offset + 1))
		return prefix + fmt.Sprintf("%-6s %4d -> %d", info.Name, offset, end+jump), end
	case OpLoop:
		jump := int(c.ReadUint16(offset + 1))
		return prefix + fmt.Sprintf("%-6s %4d -> %d", info.Name, offset, end-jump), end
	}
	return prefix + info.Name, end
}
