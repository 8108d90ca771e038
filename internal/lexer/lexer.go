package lexer

import (
	"hop/internal/source"
	"hop/internal/token"
)

// Lexer produces tokens on demand. It keeps no state beyond the scan
// position and a one-token lookahead buffer.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token // 1 элементный буфер для токена
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Next returns the next significant token. After the end of input it keeps
// returning EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.skipTrivia()

	if lx.cursor.EOF() {
		return lx.finish(token.Token{Kind: token.EOF, Span: lx.emptySpan()})
	}

	ch := lx.cursor.Peek()
	var tok token.Token

	switch {
	case isIdentStartByte(ch):
		tok = lx.scanIdentOrKeyword()
	case ch >= utf8RuneSelf:
		// scanIdentOrKeyword отличает буквы от прочих символов
		tok = lx.scanIdentOrKeyword()
	case isDec(ch):
		tok = lx.scanNumber()
	case ch == '"' || ch == '\'':
		tok = lx.scanString()
	default:
		tok = lx.scanOperatorOrPunct()
	}
	return lx.finish(tok)
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// Reset rewinds the lexer to the start of the file.
func (lx *Lexer) Reset() {
	lx.cursor = NewCursor(lx.file)
	lx.look = nil
}

// All drains the lexer and returns every token including the final EOF.
func (lx *Lexer) All() []token.Token {
	var out []token.Token
	for {
		tok := lx.Next()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

// File returns the file being scanned.
func (lx *Lexer) File() *source.File { return lx.file }

func (lx *Lexer) finish(tok token.Token) token.Token {
	lc := lx.file.LineCol(tok.Span.Start)
	tok.Line, tok.Col = lc.Line, lc.Col
	return tok
}

func (lx *Lexer) emit(k token.Kind, start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: k, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}
