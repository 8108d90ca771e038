package compiler

import (
	"hop/internal/bytecode"
	"hop/internal/diag"
	"hop/internal/token"
)

// maxLocals is the number of slots a frame can address, slot 0 included.
const maxLocals = 256

const (
	msgTooManyLocals  = "Có quá nhiều biến trong một hàm."
	msgDuplicateLocal = "Biến cục bộ trong scope này đã được khai báo trước đó."
	msgSelfInit       = "Không thể đọc biến khi đang khai báo chính nó."
)

type funcKind uint8

const (
	funcScript funcKind = iota
	funcFunction
)

type local struct {
	name  string // folded
	depth int    // -1 while the initializer is being compiled
}

type loopContext struct {
	enclosing  *loopContext
	scopeDepth int
	breaks     []int
}

// funcContext is the per-function compile state.
type funcContext struct {
	fn         *bytecode.Function
	kind       funcKind
	locals     []local
	scopeDepth int
	loop       *loopContext
}

func (c *Compiler) ctx() *funcContext {
	return c.contexts[len(c.contexts)-1]
}

func (c *Compiler) pushContext(kind funcKind, name string) {
	fc := &funcContext{
		fn:   &bytecode.Function{Name: name},
		kind: kind,
	}
	// slot 0 holds the running function itself
	fc.locals = append(fc.locals, local{name: "", depth: 0})
	c.contexts = append(c.contexts, fc)
}

// endFunction closes the current function and pops its context.
func (c *Compiler) endFunction() *bytecode.Function {
	c.emitReturn()
	fn := c.ctx().fn
	c.contexts = c.contexts[:len(c.contexts)-1]
	return fn
}

func (c *Compiler) beginScope() {
	c.ctx().scopeDepth++
}

func (c *Compiler) endScope() {
	fc := c.ctx()
	fc.scopeDepth--
	for len(fc.locals) > 0 && fc.locals[len(fc.locals)-1].depth > fc.scopeDepth {
		c.emitOp(bytecode.OpPop)
		fc.locals = fc.locals[:len(fc.locals)-1]
	}
}

func (c *Compiler) addLocal(name string) {
	fc := c.ctx()
	if len(fc.locals) == maxLocals {
		c.error(diag.SynTooManyLocals, msgTooManyLocals)
		return
	}
	fc.locals = append(fc.locals, local{name: name, depth: -1})
}

func (c *Compiler) declareVariable() {
	fc := c.ctx()
	if fc.scopeDepth == 0 {
		return
	}
	name := token.Fold(c.previous.Text)
	for i := len(fc.locals) - 1; i >= 0; i-- {
		l := fc.locals[i]
		if l.depth != -1 && l.depth < fc.scopeDepth {
			break
		}
		if l.name == name {
			c.error(diag.SemaDuplicateLocal, msgDuplicateLocal)
		}
	}
	c.addLocal(name)
}

func (c *Compiler) resolveLocal(name string) (int, bool) {
	fc := c.ctx()
	for i := len(fc.locals) - 1; i >= 0; i-- {
		if fc.locals[i].name != name {
			continue
		}
		if fc.locals[i].depth == -1 {
			c.error(diag.SemaSelfInitializer, msgSelfInit)
		}
		return i, true
	}
	return 0, false
}

func (c *Compiler) markInitialized() {
	fc := c.ctx()
	if fc.scopeDepth == 0 {
		return
	}
	fc.locals[len(fc.locals)-1].depth = fc.scopeDepth
}

func (c *Compiler) identifierConstant(tok token.Token) byte {
	return c.makeConstant(bytecode.StringValue(token.Fold(tok.Text)))
}

// parseVariable consumes a name and returns its global constant index,
// or 0 for locals.
func (c *Compiler) parseVariable(code diag.Code, msg string) byte {
	c.consume(token.Ident, code, msg)
	c.declareVariable()
	if c.ctx().scopeDepth > 0 {
		return 0
	}
	return c.identifierConstant(c.previous)
}

func (c *Compiler) defineVariable(global byte) {
	if c.ctx().scopeDepth > 0 {
		c.markInitialized()
		return
	}
	c.emitOpByte(bytecode.OpDef, global)
}
