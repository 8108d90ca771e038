// Package compiler turns Hộp source into bytecode in a single pass.
//
// There is no syntax tree: a recursive-descent statement parser sits on top
// of a Pratt expression parser (rules.go) and both emit instructions straight
// into the chunk of the function being compiled. Nested functions get their
// own funcContext on an explicit stack.
package compiler

import (
	"errors"

	"hop/internal/bytecode"
	"hop/internal/diag"
	"hop/internal/lexer"
	"hop/internal/source"
	"hop/internal/token"
)

// ErrCompile is returned when at least one error was reported.
var ErrCompile = errors.New("compile error")

// Options configures a compilation.
type Options struct {
	// Reporter receives diagnostics. Only the first error is forwarded;
	// warnings before it pass through.
	Reporter diag.Reporter
}

// Compiler holds the state of one compilation. It is not reusable.
type Compiler struct {
	file     *source.File
	lx       *lexer.Lexer
	reporter *diag.FirstErrorReporter
	lexCodes lexCodes

	current  token.Token
	previous token.Token

	contexts []*funcContext

	// expression-statement bookkeeping
	hadCall   bool
	hadAssign bool
	subExprs  int

	// inside if/while conditions 'là'/'bằng' compare instead of assigning
	noKeywordAssign bool
}

// Compile compiles file into the top-level script function.
// On failure it returns ErrCompile; the diagnostic went to opts.Reporter.
func Compile(file *source.File, opts Options) (*bytecode.Function, error) {
	c := newCompiler(file, opts)
	fn := c.compileScript()
	if c.reporter.HadError() {
		return nil, ErrCompile
	}
	return fn, nil
}

func newCompiler(file *source.File, opts Options) *Compiler {
	next := opts.Reporter
	if next == nil {
		next = diag.NopReporter{}
	}
	c := &Compiler{
		file:     file,
		reporter: diag.NewFirstErrorReporter(next),
		lexCodes: make(lexCodes),
	}
	c.lx = lexer.New(file, lexer.Options{Reporter: c.lexCodes})
	return c
}

func (c *Compiler) compileScript() *bytecode.Function {
	c.pushContext(funcScript, "")
	c.advance()
	c.declarations()
	return c.endFunction()
}

// lexCodes remembers the code of each lexical error by its start offset so
// the error can be reported when the parser actually reaches the token.
type lexCodes map[uint32]diag.Code

func (m lexCodes) Report(code diag.Code, _ diag.Severity, sp source.Span, _ string, _ []diag.Note) {
	m[sp.Start] = code
}

// ===== token stream =====

func (c *Compiler) advance() {
	c.previous = c.current
	for {
		c.current = c.lx.Next()
		if c.current.Kind != token.Invalid {
			return
		}
		code, ok := c.lexCodes[c.current.Span.Start]
		if !ok {
			code = diag.LexUnknownChar
		}
		c.errorAt(c.current, code, c.current.Text)
	}
}

func (c *Compiler) check(k token.Kind) bool {
	return c.current.Kind == k
}

func (c *Compiler) match(k token.Kind) bool {
	if !c.check(k) {
		return false
	}
	c.advance()
	return true
}

func (c *Compiler) consume(k token.Kind, code diag.Code, msg string) {
	if c.check(k) {
		c.advance()
		return
	}
	c.errorAtCurrent(code, msg)
}

// onNewLine reports whether the current token starts on a later line than
// the previous token ends.
func (c *Compiler) onNewLine() bool {
	return c.current.Line > c.endLine(c.previous)
}

func (c *Compiler) endLine(tok token.Token) uint32 {
	if tok.Kind != token.String || tok.Span.Empty() {
		return tok.Line
	}
	return c.file.LineCol(tok.Span.End - 1).Line
}

// ===== diagnostics =====

func (c *Compiler) error(code diag.Code, msg string) {
	c.errorAt(c.previous, code, msg)
}

func (c *Compiler) errorAtCurrent(code diag.Code, msg string) {
	c.errorAt(c.current, code, msg)
}

func (c *Compiler) errorAt(tok token.Token, code diag.Code, msg string) {
	c.reporter.Report(code, diag.SevError, tok.Span, msg, nil)
}

func (c *Compiler) warnAt(tok token.Token, code diag.Code, msg string) {
	c.reporter.Report(code, diag.SevWarning, tok.Span, msg, nil)
}

func (c *Compiler) failed() bool {
	return c.reporter.HadError()
}
