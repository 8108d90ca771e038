package lexer

import (
	"hop/internal/token"
)

// Числа: цифры, затем необязательно '.' и ещё цифры. Без экспоненты и без hex.
// "1.": это Number("1") и Dot.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '.' && isDec(b1) {
		lx.cursor.Bump()
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}
	return lx.emit(token.Number, start)
}
