package compiler

import (
	"strconv"

	"hop/internal/bytecode"
	"hop/internal/diag"
	"hop/internal/token"
)

const (
	msgExpectGroupClose = "Thiếu dấu ngoặc ')' sau biểu thức."
	msgExpectArgsClose  = "Thiếu dấu ngoặc ')' sau tham số."
	msgTooManyArgs      = "Không thể vượt quá 32 tham số."
	msgExpectRBracket   = "Thiếu đóng ngoặc ']'."
	msgExpectProperty   = "Thiếu tên thuộc tính sau dấu chấm '.'."
	msgExpectKeyString  = "Thiếu chuỗi tên thuộc tính."
	msgExpectKeyAssign  = "Thiếu từ khóa 'bằng' hoặc dấu '=' sau chuỗi tên thuộc tính."
	msgEmptyBox         = "Hộp phải chứa ít nhất một giá trị."
	msgBoxTooLarge      = "Hộp có quá nhiều phần tử."
)

// maxBoxItems bounds the BOX operand.
const maxBoxItems = 255

func (c *Compiler) number(bool) {
	n, err := strconv.ParseFloat(c.previous.Text, 64)
	if err != nil {
		// the lexer only produces digits with an optional fraction
		c.error(diag.SynExpectExpression, msgExpectExpression)
		return
	}
	c.emitConstant(bytecode.NumberValue(n))
}

func (c *Compiler) stringLiteral(bool) {
	c.emitConstant(bytecode.StringValue(c.previous.StringValue()))
}

func (c *Compiler) literal(bool) {
	switch c.previous.Kind {
	case token.KwNil:
		c.emitOp(bytecode.OpNil)
	case token.KwTrue:
		c.emitOp(bytecode.OpTrue)
	case token.KwFalse:
		c.emitOp(bytecode.OpFalse)
	case token.KwFun:
		// 'hàm' inside an expression is the running function
		c.emitOpByte(bytecode.OpGetLocal, 0)
	}
}

func (c *Compiler) grouping(bool) {
	if c.match(token.RParen) {
		c.emitOp(bytecode.OpNil)
		return
	}
	c.expression()
	c.consume(token.RParen, diag.SynExpectRParen, msgExpectGroupClose)
}

func (c *Compiler) unary(bool) {
	op := c.previous.Kind
	c.parsePrecedence(PrecUnary)
	switch op {
	case token.Minus:
		c.emitOp(bytecode.OpNeg)
	case token.Bang, token.KwNot:
		c.emitOp(bytecode.OpNot)
	}
}

func (c *Compiler) binary(bool) {
	op := c.previous.Kind
	c.parsePrecedence(ruleFor(op).prec + 1)
	switch op {
	case token.Plus:
		c.emitOp(bytecode.OpAdd)
	case token.Minus:
		c.emitOp(bytecode.OpSub)
	case token.Star:
		c.emitOp(bytecode.OpMul)
	case token.Slash:
		c.emitOp(bytecode.OpDiv)
	case token.Lt:
		c.emitOp(bytecode.OpLt)
	case token.LtEq:
		c.emitOp(bytecode.OpLe)
	case token.Gt:
		c.emitOp(bytecode.OpGt)
	case token.GtEq:
		c.emitOp(bytecode.OpGe)
	case token.EqEq, token.KwEqual:
		c.emitOp(bytecode.OpEq)
	case token.BangEq:
		c.emitOps(bytecode.OpEq, bytecode.OpNot)
	}
}

// and leaves the left operand when it is falsy.
func (c *Compiler) and(bool) {
	end := c.emitJump(bytecode.OpJumpIfFalse)
	c.emitOp(bytecode.OpPop)
	c.parsePrecedence(PrecAnd)
	c.patchJump(end)
}

// or leaves the left operand when it is truthy.
func (c *Compiler) or(bool) {
	elseJump := c.emitJump(bytecode.OpJumpIfFalse)
	end := c.emitJump(bytecode.OpJump)
	c.patchJump(elseJump)
	c.emitOp(bytecode.OpPop)
	c.parsePrecedence(PrecOr)
	c.patchJump(end)
}

func (c *Compiler) variable(canAssign bool) {
	c.namedVariable(c.previous, canAssign)
}

func (c *Compiler) namedVariable(name token.Token, canAssign bool) {
	var getOp, setOp bytecode.Opcode
	var arg byte
	if slot, ok := c.resolveLocal(token.Fold(name.Text)); ok {
		getOp, setOp = bytecode.OpGetLocal, bytecode.OpSetLocal
		arg = countOperand(slot)
	} else {
		getOp, setOp = bytecode.OpGetGlobal, bytecode.OpSetGlobal
		arg = c.identifierConstant(name)
	}

	if canAssign && c.matchAssign() {
		c.expression()
		c.emitOpByte(setOp, arg)
		c.hadAssign = true
		return
	}
	c.emitOpByte(getOp, arg)
}

// argumentList parses a comma-separated list of at least one argument.
func (c *Compiler) argumentList() int {
	argc := 0
	for {
		c.expression()
		argc++
		if argc > bytecode.MaxArity {
			c.error(diag.SynTooManyArgs, msgTooManyArgs)
		}
		if !c.match(token.Comma) {
			break
		}
	}
	return min(argc, bytecode.MaxArity)
}

func (c *Compiler) call(bool) {
	argc := 0
	if !c.check(token.RParen) {
		argc = c.argumentList()
	}
	c.consume(token.RParen, diag.SynExpectRParen, msgExpectArgsClose)
	c.emitOpByte(bytecode.OpCall, countOperand(argc))
	c.hadCall = true
}

// callKeyword compiles 'gọi f' and 'gọi f với a, b'.
func (c *Compiler) callKeyword(bool) {
	c.parsePrecedence(PrecCall)
	argc := 0
	if c.match(token.KwWith) {
		argc = c.argumentList()
	}
	c.emitOpByte(bytecode.OpCall, countOperand(argc))
	c.hadCall = true
}

func (c *Compiler) dot(canAssign bool) {
	c.consume(token.Ident, diag.SynExpectPropertyName, msgExpectProperty)
	name := c.identifierConstant(c.previous)
	if canAssign && c.matchAssign() {
		c.expression()
		c.emitOpByte(bytecode.OpSet, name)
		c.hadAssign = true
		return
	}
	c.emitOpByte(bytecode.OpGet, name)
}

func (c *Compiler) index(canAssign bool) {
	c.expression()
	c.consume(token.RBracket, diag.SynExpectRBracket, msgExpectRBracket)
	if canAssign && c.matchAssign() {
		c.expression()
		c.emitOp(bytecode.OpSetIndex)
		c.hadAssign = true
		return
	}
	c.emitOp(bytecode.OpGetIndex)
}

// have compiles `box có "key" là value`, a keyed write.
func (c *Compiler) have(bool) {
	c.consume(token.String, diag.SynExpectKeyString, msgExpectKeyString)
	c.emitConstant(bytecode.StringValue(c.previous.StringValue()))
	if !c.match(token.Assign) && !c.match(token.KwEqual) {
		c.errorAtCurrent(diag.SynExpectKeyAssign, msgExpectKeyAssign)
	}
	c.expression()
	c.emitOp(bytecode.OpSetIndex)
	c.hadAssign = true
}

// of compiles `key của box`. The key is already on the stack.
func (c *Compiler) of(bool) {
	c.parsePrecedence(PrecCall)
	c.emitOp(bytecode.OpOf)
}

func (c *Compiler) boxItems(code diag.Code, missing string) int {
	count := 0
	for {
		c.parsePrecedenceOr(PrecAssignment, code, missing)
		count++
		if count > maxBoxItems {
			c.error(diag.SynBoxTooLarge, msgBoxTooLarge)
		}
		if !c.match(token.Comma) {
			break
		}
	}
	return min(count, maxBoxItems)
}

func (c *Compiler) boxLiteral(bool) {
	count := 0
	if !c.check(token.RBracket) {
		count = c.boxItems(diag.SynExpectExpression, msgExpectExpression)
	}
	c.consume(token.RBracket, diag.SynExpectRBracket, msgExpectRBracket)
	c.emitOpByte(bytecode.OpBox, countOperand(count))
}

// boxKeyword compiles 'hộp' (an empty box) and 'hộp có a, b, c'.
func (c *Compiler) boxKeyword(bool) {
	count := 0
	if c.match(token.KwHave) {
		count = c.boxItems(diag.SynEmptyBox, msgEmptyBox)
	}
	c.emitOpByte(bytecode.OpBox, countOperand(count))
}
