package compiler

import (
	"hop/internal/diag"
	"hop/internal/token"
)

// Precedence orders binary operators from loosest to tightest.
type Precedence uint8

const (
	PrecNone Precedence = iota
	PrecAssignment
	PrecOr
	PrecAnd
	PrecEquality   // == != là bằng
	PrecComparison // < > <= >=
	PrecTerm       // + -
	PrecFactor     // * /
	PrecUnary      // ! - không
	PrecCall       // . () [] có của
	PrecPrimary
)

const (
	msgExpectExpression  = "Thiếu biểu thức."
	msgInvalidAssignment = "Phép gán không hợp lệ."
)

type parseFn func(c *Compiler, canAssign bool)

type parseRule struct {
	prefix parseFn
	infix  parseFn
	prec   Precedence
}

// rules is filled in init: the handlers refer back to parsePrecedence,
// which reads the table.
var rules [256]parseRule

func init() {
	rules[token.LParen] = parseRule{(*Compiler).grouping, (*Compiler).call, PrecCall}
	rules[token.LBracket] = parseRule{(*Compiler).boxLiteral, (*Compiler).index, PrecCall}
	rules[token.Dot] = parseRule{nil, (*Compiler).dot, PrecCall}
	rules[token.Minus] = parseRule{(*Compiler).unary, (*Compiler).binary, PrecTerm}
	rules[token.Plus] = parseRule{nil, (*Compiler).binary, PrecTerm}
	rules[token.Slash] = parseRule{nil, (*Compiler).binary, PrecFactor}
	rules[token.Star] = parseRule{nil, (*Compiler).binary, PrecFactor}
	rules[token.Bang] = parseRule{(*Compiler).unary, nil, PrecNone}
	rules[token.BangEq] = parseRule{nil, (*Compiler).binary, PrecEquality}
	rules[token.EqEq] = parseRule{nil, (*Compiler).binary, PrecEquality}
	rules[token.Gt] = parseRule{nil, (*Compiler).binary, PrecComparison}
	rules[token.GtEq] = parseRule{nil, (*Compiler).binary, PrecComparison}
	rules[token.Lt] = parseRule{nil, (*Compiler).binary, PrecComparison}
	rules[token.LtEq] = parseRule{nil, (*Compiler).binary, PrecComparison}
	rules[token.Ident] = parseRule{(*Compiler).variable, nil, PrecNone}
	rules[token.String] = parseRule{(*Compiler).stringLiteral, nil, PrecNone}
	rules[token.Number] = parseRule{(*Compiler).number, nil, PrecNone}
	rules[token.KwAnd] = parseRule{nil, (*Compiler).and, PrecAnd}
	rules[token.KwOr] = parseRule{nil, (*Compiler).or, PrecOr}
	rules[token.KwNot] = parseRule{(*Compiler).unary, nil, PrecNone}
	rules[token.KwFalse] = parseRule{(*Compiler).literal, nil, PrecNone}
	rules[token.KwTrue] = parseRule{(*Compiler).literal, nil, PrecNone}
	rules[token.KwNil] = parseRule{(*Compiler).literal, nil, PrecNone}
	rules[token.KwFun] = parseRule{(*Compiler).literal, nil, PrecNone}
	rules[token.KwEqual] = parseRule{nil, (*Compiler).binary, PrecEquality}
	rules[token.KwHave] = parseRule{nil, (*Compiler).have, PrecCall}
	rules[token.KwOf] = parseRule{nil, (*Compiler).of, PrecCall}
	rules[token.KwBox] = parseRule{(*Compiler).boxKeyword, nil, PrecNone}
	rules[token.KwCall] = parseRule{(*Compiler).callKeyword, nil, PrecNone}
}

func ruleFor(k token.Kind) *parseRule {
	return &rules[k]
}

func (c *Compiler) expression() {
	c.parsePrecedence(PrecAssignment)
}

func (c *Compiler) parsePrecedence(prec Precedence) {
	c.parsePrecedenceOr(prec, diag.SynExpectExpression, msgExpectExpression)
}

// parsePrecedenceOr parses an expression whose operators bind at least as
// tightly as prec, reporting code/missing when no expression starts here.
// An infix operator must start on the same line as its left operand.
func (c *Compiler) parsePrecedenceOr(prec Precedence, code diag.Code, missing string) {
	c.advance()
	prefix := ruleFor(c.previous.Kind).prefix
	if prefix == nil {
		c.error(code, missing)
		return
	}

	canAssign := prec <= PrecAssignment
	prefix(c, canAssign)
	c.subExprs++

	for prec <= ruleFor(c.current.Kind).prec {
		if c.onNewLine() {
			break
		}
		c.advance()
		ruleFor(c.previous.Kind).infix(c, canAssign)
	}

	if canAssign && c.match(token.Assign) {
		c.error(diag.SynInvalidAssignment, msgInvalidAssignment)
	}
}

// matchAssign consumes '=' or, outside conditions, 'là'/'bằng'.
func (c *Compiler) matchAssign() bool {
	if c.match(token.Assign) {
		return true
	}
	return !c.noKeywordAssign && c.match(token.KwEqual)
}

// condition compiles an if/while condition, where 'là' compares.
func (c *Compiler) condition() {
	saved := c.noKeywordAssign
	c.noKeywordAssign = true
	c.expression()
	c.noKeywordAssign = saved
}
