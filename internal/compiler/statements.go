package compiler

import (
	"hop/internal/bytecode"
	"hop/internal/diag"
	"hop/internal/token"
)

const (
	msgExpectVarName    = "Thiếu tên biến."
	msgExpectFnName     = "Thiếu tên hàm."
	msgExpectParamName  = "Thiếu tên tham số."
	msgExpectFnLParen   = "Thiếu mở ngoặc '(' sau tên hàm."
	msgExpectParamClose = "Thiếu đóng ngoặc ')' sau tham số."
	msgTooManyParams    = "Không thể có nhiều hơn 32 tham số."
	msgExpectFnBrace    = "Cần có đóng ngoặc '}' để kết thúc hàm."
	msgExpectFnEnd      = "Cần có từ khóa 'xong' hoặc 'thôi' để kết thúc hàm."
	msgFnNotAllowed     = "Hàm phải được khai báo trong thân chương trình."
	msgExpectBlockClose = "Thiếu đóng ngoặc '}' sau khối lệnh."
	msgExpectThen       = "Thiếu từ khóa 'thì' sau điều kiện."
	msgExpectIfEnd      = "Cần có từ khóa 'xong' sau khối lệnh để kết thúc mệnh đề 'nếu'."
	msgReturnOutside    = "Không thể đặt câu lệnh trả về ngoài hàm."
	msgInvalidExprStmt  = "Biểu thức không hợp lệ."
	msgUnreachable      = "Câu lệnh này sẽ không bao giờ được thực hiện."
)

// declarations compiles declarations until one of stops or EOF.
// It warns once when something follows a statement that never falls through.
func (c *Compiler) declarations(stops ...token.Kind) {
	terminated, warned := false, false
	for !c.check(token.EOF) && !c.checkAny(stops) {
		if terminated && !warned {
			c.warnAt(c.current, diag.SemaUnreachableAfterExit, msgUnreachable)
			warned = true
		}
		if c.declaration() {
			terminated = true
		}
	}
}

func (c *Compiler) checkAny(kinds []token.Kind) bool {
	for _, k := range kinds {
		if c.check(k) {
			return true
		}
	}
	return false
}

// declaration reports whether control never continues past it.
func (c *Compiler) declaration() bool {
	switch {
	case c.check(token.KwFun) && c.lx.Peek().Kind == token.Ident:
		c.advance()
		c.funDeclaration()
	case c.match(token.KwVar):
		c.varDeclaration()
	default:
		return c.statement()
	}
	return false
}

func (c *Compiler) funDeclaration() {
	fc := c.ctx()
	if fc.kind != funcScript || fc.scopeDepth > 0 {
		c.error(diag.SynFnNotAllowed, msgFnNotAllowed)
	}
	global := c.parseVariable(diag.SynExpectFnName, msgExpectFnName)
	c.markInitialized()
	c.function()
	c.defineVariable(global)
}

// function compiles parameters and body; the name is the previous token.
func (c *Compiler) function() {
	c.pushContext(funcFunction, c.previous.Text)
	c.beginScope()
	fn := c.ctx().fn

	c.consume(token.LParen, diag.SynExpectLParen, msgExpectFnLParen)
	if !c.check(token.RParen) {
		for {
			fn.Arity++
			if fn.Arity > bytecode.MaxArity {
				c.errorAtCurrent(diag.SynTooManyParams, msgTooManyParams)
			}
			global := c.parseVariable(diag.SynExpectParamName, msgExpectParamName)
			c.defineVariable(global)
			if !c.match(token.Comma) {
				break
			}
		}
	}
	c.consume(token.RParen, diag.SynExpectRParen, msgExpectParamClose)

	if c.match(token.LBrace) {
		c.declarations(token.RBrace)
		c.consume(token.RBrace, diag.SynExpectRBrace, msgExpectFnBrace)
	} else {
		c.declarations(token.KwEnd)
		c.consume(token.KwEnd, diag.SynExpectEnd, msgExpectFnEnd)
	}

	fn = c.endFunction()
	c.emitConstant(bytecode.FuncValue(fn))
}

func (c *Compiler) varDeclaration() {
	global := c.parseVariable(diag.SynExpectVarName, msgExpectVarName)
	if c.match(token.Assign) || c.match(token.KwEqual) {
		c.expression()
	} else {
		c.emitOp(bytecode.OpNil)
	}
	c.defineVariable(global)
}

// statement reports whether control never continues past it.
func (c *Compiler) statement() bool {
	terminal := false
	switch {
	case c.match(token.KwPrint):
		c.expression()
		c.emitOp(bytecode.OpPrint)
	case c.match(token.KwIf):
		c.ifStatement()
	case c.match(token.KwReturn):
		c.returnStatement()
		terminal = true
	case c.match(token.KwExit):
		c.emitOp(bytecode.OpExit)
		terminal = true
	case c.match(token.KwBreak):
		c.breakStatement()
		terminal = true
	case c.match(token.KwWhile):
		c.whileStatement()
	case c.match(token.LBrace):
		c.beginScope()
		c.declarations(token.RBrace)
		c.consume(token.RBrace, diag.SynExpectRBrace, msgExpectBlockClose)
		c.endScope()
	case c.match(token.Semicolon):
		return false
	default:
		c.expressionStatement()
	}
	c.match(token.Semicolon)
	return terminal
}

// expressionStatement rejects expressions whose value would only be
// discarded: something in them must call or assign.
func (c *Compiler) expressionStatement() {
	c.hadCall, c.hadAssign, c.subExprs = false, false, 0
	c.expression()
	c.emitOp(bytecode.OpPop)
	if (c.subExprs <= 1 && !c.hadCall) || (c.subExprs > 1 && !c.hadCall && !c.hadAssign) {
		c.error(diag.SynInvalidExprStmt, msgInvalidExprStmt)
	}
}

// branch compiles the body after 'thì' or 'hay'. A body that starts on the
// same line is a single statement; otherwise it is a scoped block running
// to one of stops. It reports whether the block form was used.
func (c *Compiler) branch(stops ...token.Kind) bool {
	if !c.onNewLine() {
		c.statement()
		return false
	}
	c.beginScope()
	c.declarations(stops...)
	c.endScope()
	return true
}

func (c *Compiler) ifStatement() {
	c.condition()
	c.consume(token.KwThen, diag.SynExpectThen, msgExpectThen)

	thenJump := c.emitJump(bytecode.OpJumpIfFalse)
	c.emitOp(bytecode.OpPop)
	needEnd := c.branch(token.KwElse, token.KwEnd)

	elseJump := c.emitJump(bytecode.OpJump)
	c.patchJump(thenJump)
	c.emitOp(bytecode.OpPop)

	if c.match(token.KwElse) {
		if c.match(token.KwIf) {
			// the nested 'nếu' owns the closing 'xong'
			c.ifStatement()
			needEnd = false
		} else {
			needEnd = c.branch(token.KwEnd)
		}
	}
	c.patchJump(elseJump)

	if needEnd {
		c.consume(token.KwEnd, diag.SynExpectEnd, msgExpectIfEnd)
	}
}

func (c *Compiler) returnStatement() {
	if c.ctx().kind == funcScript {
		c.error(diag.SemaReturnOutsideFunc, msgReturnOutside)
	}
	if c.match(token.Semicolon) || c.bareReturn() {
		c.emitReturn()
		return
	}
	c.expression()
	c.emitOp(bytecode.OpReturn)
}

// bareReturn reports whether 'trả' has no value after it.
func (c *Compiler) bareReturn() bool {
	switch c.current.Kind {
	case token.KwEnd, token.KwElse, token.RBrace, token.EOF:
		return true
	}
	return c.onNewLine()
}
