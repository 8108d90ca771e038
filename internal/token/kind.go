package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid carries a lexical error; Token.Text holds the message.
	Invalid Kind = iota
	// EOF marks the end of input. The lexer keeps returning it.
	EOF

	// LParen represents '('.
	LParen
	// RParen represents ')'.
	RParen
	// LBrace represents '{'.
	LBrace
	// RBrace represents '}'.
	RBrace
	// LBracket represents '['.
	LBracket
	// RBracket represents ']'.
	RBracket
	// Comma represents ','.
	Comma
	// Dot represents '.'.
	Dot
	// Minus represents '-'.
	Minus
	// Plus represents '+'.
	Plus
	// Semicolon represents ';'.
	Semicolon
	// Slash represents '/'.
	Slash
	// Star represents '*'.
	Star

	// Bang represents '!'.
	Bang
	// BangEq represents '!='.
	BangEq
	// Assign represents '='.
	Assign
	// EqEq represents '=='.
	EqEq
	// Gt represents '>'.
	Gt
	// GtEq represents '>='.
	GtEq
	// Lt represents '<'.
	Lt
	// LtEq represents '<='.
	LtEq

	// Ident represents an identifier.
	Ident
	// String represents a quoted string literal; Text includes the quotes.
	String
	// Number represents a decimal number literal.
	Number

	// KwAnd is 'và'.
	KwAnd
	// KwOr is 'hoặc'.
	KwOr
	// KwNot is 'không'.
	KwNot
	// KwBreak is 'dừng'.
	KwBreak
	// KwElse is 'hay'.
	KwElse
	// KwEnd is 'xong' or 'thôi'.
	KwEnd
	// KwExit is 'thoát'.
	KwExit
	// KwFalse is 'sai'.
	KwFalse
	// KwTrue is 'đúng'.
	KwTrue
	// KwNil is 'rỗng'.
	KwNil
	// KwFor is 'cho'. Reserved, no statement uses it yet.
	KwFor
	// KwFun is 'hàm'.
	KwFun
	// KwIf is 'nếu'.
	KwIf
	// KwThen is 'thì'.
	KwThen
	// KwPrint is 'in'.
	KwPrint
	// KwReturn is 'trả'.
	KwReturn
	// KwVar is 'biến'.
	KwVar
	// KwWhile is 'khi'.
	KwWhile
	// KwEqual is 'bằng' or 'là'.
	KwEqual
	// KwHave is 'có' or 'chứa'.
	KwHave
	// KwOf is 'của' or 'trong'.
	KwOf
	// KwBox is 'hộp'.
	KwBox
	// KwCall is 'gọi'.
	KwCall
	// KwWith is 'với'.
	KwWith

	kindCount
)
