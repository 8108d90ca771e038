package token

import "strconv"

var kindNames = [...]string{
	Invalid:   "Invalid",
	EOF:       "EOF",
	LParen:    "LParen",
	RParen:    "RParen",
	LBrace:    "LBrace",
	RBrace:    "RBrace",
	LBracket:  "LBracket",
	RBracket:  "RBracket",
	Comma:     "Comma",
	Dot:       "Dot",
	Minus:     "Minus",
	Plus:      "Plus",
	Semicolon: "Semicolon",
	Slash:     "Slash",
	Star:      "Star",
	Bang:      "Bang",
	BangEq:    "BangEq",
	Assign:    "Assign",
	EqEq:      "EqEq",
	Gt:        "Gt",
	GtEq:      "GtEq",
	Lt:        "Lt",
	LtEq:      "LtEq",
	Ident:     "Ident",
	String:    "String",
	Number:    "Number",
	KwAnd:     "KwAnd",
	KwOr:      "KwOr",
	KwNot:     "KwNot",
	KwBreak:   "KwBreak",
	KwElse:    "KwElse",
	KwEnd:     "KwEnd",
	KwExit:    "KwExit",
	KwFalse:   "KwFalse",
	KwTrue:    "KwTrue",
	KwNil:     "KwNil",
	KwFor:     "KwFor",
	KwFun:     "KwFun",
	KwIf:      "KwIf",
	KwThen:    "KwThen",
	KwPrint:   "KwPrint",
	KwReturn:  "KwReturn",
	KwVar:     "KwVar",
	KwWhile:   "KwWhile",
	KwEqual:   "KwEqual",
	KwHave:    "KwHave",
	KwOf:      "KwOf",
	KwBox:     "KwBox",
	KwCall:    "KwCall",
	KwWith:    "KwWith",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}
