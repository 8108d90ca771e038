package lexer

import (
	"hop/internal/diag"
	"hop/internal/token"
)

// Строка в одинарных или двойных кавычках, без escape-последовательностей.
// Перевод строки внутри литерала разрешён.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	quote := lx.cursor.Bump()
	for !lx.cursor.EOF() {
		if lx.cursor.Bump() == quote {
			return lx.emit(token.String, start)
		}
	}

	sp := lx.cursor.SpanFrom(start)
	msg := msgUnterminatedDouble
	if quote == '\'' {
		msg = msgUnterminatedSingle
	}
	lx.errLex(diag.LexUnterminatedString, sp, msg)
	return token.Token{Kind: token.Invalid, Span: sp, Text: msg}
}
