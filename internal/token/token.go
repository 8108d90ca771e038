package token

import (
	"hop/internal/source"
)

// Token is one lexeme together with its position.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
	Line uint32 // 1-based
	Col  uint32 // 1-based, in runes
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	return t.Kind >= KwAnd && t.Kind < kindCount
}

// IsPunctOrOp reports whether the token is punctuation or an operator.
func (t Token) IsPunctOrOp() bool {
	return t.Kind >= LParen && t.Kind <= LtEq
}

// IsLiteral reports whether the token is a literal value.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case String, Number, KwTrue, KwFalse, KwNil:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// StringValue returns the contents of a String token without its quotes.
func (t Token) StringValue() string {
	if t.Kind != String || len(t.Text) < 2 {
		return t.Text
	}
	return t.Text[1 : len(t.Text)-1]
}
