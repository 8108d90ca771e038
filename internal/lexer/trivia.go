package lexer

// skipTrivia пропускает пробелы, переводы строк и комментарии "//" до конца строки.
// Line breaks are not tokens: the compiler compares token lines instead.
func (lx *Lexer) skipTrivia() {
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case ' ', '\t', '\r', '\n':
			lx.cursor.Bump()
		case '/':
			b0, b1, ok := lx.cursor.Peek2()
			if !ok || b0 != '/' || b1 != '/' {
				return
			}
			for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
				lx.cursor.Bump()
			}
		default:
			return
		}
	}
}
