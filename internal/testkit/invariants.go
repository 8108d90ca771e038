package testkit

import (
	"fmt"

	"hop/internal/bytecode"
)

// CheckStackBalance verifies the compiled code of fn and every nested
// function by walking all control-flow paths:
// 1) every jump lands on an instruction boundary inside the chunk
// 2) each instruction sees the same stack height on every path reaching it
// 3) the height never drops below the frame's own slots
// 4) local slots referenced by LD/ST exist at that point
// 5) every path ends in RET or EXIT
func CheckStackBalance(fn *bytecode.Function) error {
	var err error
	fn.Walk(func(f *bytecode.Function) {
		if err != nil {
			return
		}
		if e := checkFunction(f); e != nil {
			err = fmt.Errorf("%s: %w", f.DisplayName(), e)
		}
	})
	return err
}

func checkFunction(fn *bytecode.Function) error {
	code := fn.Chunk.Code
	if len(code) == 0 {
		return fmt.Errorf("empty chunk")
	}
	boundaries := make(map[int]bool, len(code))
	for off := 0; off < len(code); {
		boundaries[off] = true
		op := bytecode.Opcode(code[off])
		if _, ok := op.Info(); !ok {
			return fmt.Errorf("unknown opcode %d at %d", code[off], off)
		}
		off += op.Width()
		if off > len(code) {
			return fmt.Errorf("truncated %s", op)
		}
	}

	// slot 0 and the parameters live below everything else
	base := 1 + fn.Arity
	heights := make(map[int]int, len(code))
	type item struct{ off, height int }
	work := []item{{0, base}}

	visit := func(off, height int) error {
		if !boundaries[off] {
			return fmt.Errorf("jump into the middle of an instruction: %d", off)
		}
		if h, seen := heights[off]; seen {
			if h != height {
				return fmt.Errorf("stack height mismatch at %d: %d vs %d", off, h, height)
			}
			return nil
		}
		heights[off] = height
		work = append(work, item{off, height})
		return nil
	}
	heights[0] = base

	for len(work) > 0 {
		it := work[len(work)-1]
		work = work[:len(work)-1]
		op := bytecode.Opcode(code[it.off])
		next := it.off + op.Width()

		operand := 0
		if op.Width() == 2 {
			operand = int(code[it.off+1])
		}
		info, _ := op.Info()
		pops := info.Pops
		if op == bytecode.OpCall || op == bytecode.OpBox {
			pops += operand
		}
		if it.height-pops < 1 {
			return fmt.Errorf("%s at %d underflows the frame (height %d)", op, it.off, it.height)
		}
		if (op == bytecode.OpGetLocal || op == bytecode.OpSetLocal) && operand >= it.height {
			return fmt.Errorf("%s at %d reads slot %d of %d", op, it.off, operand, it.height)
		}
		height := it.height + bytecode.StackEffect(op, operand)

		switch op {
		case bytecode.OpReturn, bytecode.OpExit:
			continue
		case bytecode.OpJump:
			target := next + int(fn.Chunk.ReadUint16(it.off+1))
			if err := visit(target, height); err != nil {
				return err
			}
			continue
		case bytecode.OpJumpIfFalse:
			target := next + int(fn.Chunk.ReadUint16(it.off+1))
			if err := visit(target, height); err != nil {
				return err
			}
		case bytecode.OpLoop:
			target := next - int(fn.Chunk.ReadUint16(it.off+1))
			if err := visit(target, height); err != nil {
				return err
			}
			continue
		}
		if next >= len(code) {
			return fmt.Errorf("%s at %d falls off the end of the chunk", op, it.off)
		}
		if err := visit(next, height); err != nil {
			return err
		}
	}
	return nil
}
