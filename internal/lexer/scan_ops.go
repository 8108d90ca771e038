package lexer

import (
	"hop/internal/diag"
	"hop/internal/token"
)

// Жадность: сначала двухсимвольные операторы, затем односимвольные.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()

	switch {
	case lx.try2('!', '='):
		return lx.emit(token.BangEq, start)
	case lx.try2('=', '='):
		return lx.emit(token.EqEq, start)
	case lx.try2('<', '='):
		return lx.emit(token.LtEq, start)
	case lx.try2('>', '='):
		return lx.emit(token.GtEq, start)
	}

	ch := lx.cursor.Bump()
	switch ch {
	case '(':
		return lx.emit(token.LParen, start)
	case ')':
		return lx.emit(token.RParen, start)
	case '{':
		return lx.emit(token.LBrace, start)
	case '}':
		return lx.emit(token.RBrace, start)
	case '[':
		return lx.emit(token.LBracket, start)
	case ']':
		return lx.emit(token.RBracket, start)
	case ',':
		return lx.emit(token.Comma, start)
	case '.':
		return lx.emit(token.Dot, start)
	case '-':
		return lx.emit(token.Minus, start)
	case '+':
		return lx.emit(token.Plus, start)
	case ';':
		return lx.emit(token.Semicolon, start)
	case '/':
		return lx.emit(token.Slash, start)
	case '*':
		return lx.emit(token.Star, start)
	case '!':
		return lx.emit(token.Bang, start)
	case '=':
		return lx.emit(token.Assign, start)
	case '<':
		return lx.emit(token.Lt, start)
	case '>':
		return lx.emit(token.Gt, start)
	default:
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnknownChar, sp, msgUnknownChar)
		return token.Token{Kind: token.Invalid, Span: sp, Text: msgUnknownChar}
	}
}
