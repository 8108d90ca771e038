package lexer

import (
	"hop/internal/diag"
	"hop/internal/token"
)

const utf8RuneSelf = 0x80

// scanIdentOrKeyword сканирует идентификатор и проверяет его через LookupKeyword.
// Token.Text: ровно исходный срез; сравнение ключевых слов регистронезависимое.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()

	r, _ := lx.peekRune()
	if !isIdentStartRune(r) {
		lx.bumpRune()
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnknownChar, sp, msgUnknownChar)
		return token.Token{Kind: token.Invalid, Span: sp, Text: msgUnknownChar}
	}

	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b < utf8RuneSelf {
			if !isIdentContinueByte(b) {
				break
			}
			lx.cursor.Bump()
			continue
		}
		r, sz := lx.peekRune()
		if sz == 0 || !isIdentContinueRune(r) {
			break
		}
		lx.bumpRune()
	}

	tok := lx.emit(token.Ident, start)
	if k, ok := token.LookupKeyword(tok.Text); ok {
		tok.Kind = k
	}
	return tok
}
