package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Лексические
	LexInfo               Code = 1000
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002

	// Синтаксические
	SynInfo               Code = 2000
	SynExpectExpression   Code = 2001
	SynInvalidAssignment  Code = 2002
	SynInvalidExprStmt    Code = 2003
	SynExpectRParen       Code = 2004
	SynExpectRBracket     Code = 2005
	SynExpectRBrace       Code = 2006
	SynExpectPropertyName Code = 2007
	SynExpectKeyString    Code = 2008
	SynExpectKeyAssign    Code = 2009
	SynEmptyBox           Code = 2010
	SynExpectLParen       Code = 2011
	SynExpectParamName    Code = 2012
	SynExpectFnName       Code = 2013
	SynExpectVarName      Code = 2014
	SynExpectThen         Code = 2015
	SynExpectEnd          Code = 2016
	SynFnNotAllowed       Code = 2017

	// limits of the bytecode format
	SynTooManyConstants Code = 2100
	SynTooManyLocals    Code = 2101
	SynTooManyParams    Code = 2102
	SynTooManyArgs      Code = 2103
	SynJumpTooLarge     Code = 2104
	SynLoopTooLarge     Code = 2105
	SynBoxTooLarge      Code = 2106

	// Семантические
	SemaInfo                 Code = 3000
	SemaDuplicateLocal       Code = 3001
	SemaSelfInitializer      Code = 3002
	SemaBreakOutsideLoop     Code = 3003
	SemaReturnOutsideFunc    Code = 3004
	SemaUnreachableAfterExit Code = 3005

	// Ввод-вывод
	IOInfo        Code = 4000
	IOReadFailed  Code = 4001
	IOCacheFailed Code = 4002

	// Проект
	ProjInfo            Code = 5000
	ProjManifestInvalid Code = 5001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:              "Unknown error",
		LexInfo:                  "Lexical information",
		LexUnknownChar:           "Unknown character",
		LexUnterminatedString:    "Unterminated string literal",
		SynInfo:                  "Syntax information",
		SynExpectExpression:      "Expected expression",
		SynInvalidAssignment:     "Invalid assignment target",
		SynInvalidExprStmt:       "Expression statement has no effect",
		SynExpectRParen:          "Expected ')'",
		SynExpectRBracket:        "Expected ']'",
		SynExpectRBrace:          "Expected '}'",
		SynExpectPropertyName:    "Expected property name after '.'",
		SynExpectKeyString:       "Expected string key",
		SynExpectKeyAssign:       "Expected '=' or 'là' after key",
		SynEmptyBox:              "Box literal needs at least one value",
		SynExpectLParen:          "Expected '(' after function name",
		SynExpectParamName:       "Expected parameter name",
		SynExpectFnName:          "Expected function name",
		SynExpectVarName:         "Expected variable name",
		SynExpectThen:            "Expected 'thì' after condition",
		SynExpectEnd:             "Expected 'xong' or 'thôi'",
		SynFnNotAllowed:          "Function declaration is not allowed here",
		SynTooManyConstants:      "Too many constants in one chunk",
		SynTooManyLocals:         "Too many local variables in function",
		SynTooManyParams:         "Too many parameters",
		SynTooManyArgs:           "Too many arguments",
		SynJumpTooLarge:          "Jump target too far",
		SynLoopTooLarge:          "Loop body too large",
		SynBoxTooLarge:           "Too many values in box literal",
		SemaInfo:                 "Semantic information",
		SemaDuplicateLocal:       "Local already declared in this scope",
		SemaSelfInitializer:      "Local read in its own initializer",
		SemaBreakOutsideLoop:     "'dừng' outside of a loop",
		SemaReturnOutsideFunc:    "'trả' outside of a function",
		SemaUnreachableAfterExit: "Unreachable code after 'thoát'",
		IOInfo:                   "I/O information",
		IOReadFailed:             "Failed to read source file",
		IOCacheFailed:            "Bytecode cache unavailable",
		ProjInfo:                 "Project information",
		ProjManifestInvalid:      "Invalid hop.toml",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

// IsLexical reports whether the code belongs to the lexer range.
func (c Code) IsLexical() bool {
	return c >= LexInfo && c < SynInfo
}

// IsHost reports whether the code comes from the host (I/O, project) rather
// than from the script text.
func (c Code) IsHost() bool {
	return c >= IOInfo
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
