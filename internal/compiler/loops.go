package compiler

import (
	"hop/internal/bytecode"
	"hop/internal/diag"
	"hop/internal/token"
)

const (
	msgBreakOutside  = "Không thể sử dụng 'dừng' ở ngoài vòng lặp."
	msgExpectLoopEnd = "Cần có từ khóa 'xong' hoặc 'thôi' để kết thúc khối lệnh."
)

func (c *Compiler) whileStatement() {
	fc := c.ctx()
	loop := &loopContext{enclosing: fc.loop, scopeDepth: fc.scopeDepth}
	fc.loop = loop
	defer func() { fc.loop = loop.enclosing }()

	loopStart := c.chunk().Len()
	c.condition()
	c.consume(token.KwThen, diag.SynExpectThen, msgExpectThen)

	exitJump := c.emitJump(bytecode.OpJumpIfFalse)
	c.emitOp(bytecode.OpPop)
	if c.branch(token.KwEnd) {
		c.consume(token.KwEnd, diag.SynExpectEnd, msgExpectLoopEnd)
	}
	c.emitLoop(loopStart)

	c.patchJump(exitJump)
	c.emitOp(bytecode.OpPop)
	for _, b := range loop.breaks {
		c.patchJump(b)
	}
}

// breakStatement pops the locals declared inside the loop and jumps past it.
// The compile-time scope is left untouched: code after 'dừng' in the same
// block still sees those locals.
func (c *Compiler) breakStatement() {
	fc := c.ctx()
	loop := fc.loop
	if loop == nil {
		c.error(diag.SemaBreakOutsideLoop, msgBreakOutside)
		return
	}
	for i := len(fc.locals) - 1; i >= 0 && fc.locals[i].depth > loop.scopeDepth; i-- {
		c.emitOp(bytecode.OpPop)
	}
	loop.breaks = append(loop.breaks, c.emitJump(bytecode.OpJump))
}
