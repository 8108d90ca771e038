package compiler

import (
	"math"

	"fortio.org/safecast"

	"hop/internal/bytecode"
	"hop/internal/diag"
)

const (
	msgTooManyConstants = "Có quá nhiều hằng số trong một bó lệnh."
	msgJumpTooLarge     = "Đoạn mã cần nhảy qua quá dài."
	msgLoopTooLarge     = "Thân vòng lặp quá lớn."
)

func (c *Compiler) chunk() *bytecode.Chunk {
	return &c.ctx().fn.Chunk
}

// emitByte tags the byte with the position of the token just consumed.
func (c *Compiler) emitByte(b byte) {
	c.chunk().Write(b, c.previous.Line, c.previous.Col)
}

func (c *Compiler) emitOp(op bytecode.Opcode) {
	c.emitByte(byte(op))
}

func (c *Compiler) emitOps(ops ...bytecode.Opcode) {
	for _, op := range ops {
		c.emitOp(op)
	}
}

func (c *Compiler) emitOpByte(op bytecode.Opcode, operand byte) {
	c.emitOp(op)
	c.emitByte(operand)
}

func (c *Compiler) emitReturn() {
	c.emitOps(bytecode.OpNil, bytecode.OpReturn)
}

func (c *Compiler) makeConstant(v bytecode.Value) byte {
	idx, err := c.chunk().AddConstant(v)
	if err != nil {
		c.error(diag.SynTooManyConstants, msgTooManyConstants)
		return 0
	}
	return idx
}

func (c *Compiler) emitConstant(v bytecode.Value) {
	c.emitOpByte(bytecode.OpConst, c.makeConstant(v))
}

// emitJump writes op with a placeholder operand and returns the operand offset.
func (c *Compiler) emitJump(op bytecode.Opcode) int {
	c.emitOp(op)
	c.emitByte(0xff)
	c.emitByte(0xff)
	return c.chunk().Len() - 2
}

func (c *Compiler) patchJump(offset int) {
	code := c.chunk().Code
	jump := len(code) - offset - 2
	if jump > math.MaxUint16 {
		c.error(diag.SynJumpTooLarge, msgJumpTooLarge)
		return
	}
	code[offset] = byte(jump >> 8)
	code[offset+1] = byte(jump)
}

// emitLoop jumps back to loopStart; the distance includes LOOP's own operand.
func (c *Compiler) emitLoop(loopStart int) {
	c.emitOp(bytecode.OpLoop)
	offset := c.chunk().Len() - loopStart + 2
	if offset > math.MaxUint16 {
		c.error(diag.SynLoopTooLarge, msgLoopTooLarge)
		offset = 0
	}
	c.emitByte(byte(offset >> 8))
	c.emitByte(byte(offset))
}

// countOperand converts a counted list length into a one-byte operand.
// Callers check their own limits first, so a failure here is a bug.
func countOperand(n int) byte {
	b, err := safecast.Conv[byte](n)
	if err != nil {
		panic(err)
	}
	return b
}
