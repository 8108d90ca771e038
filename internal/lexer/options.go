package lexer

import (
	"hop/internal/diag"
	"hop/internal/source"
)

type Options struct {
	// Reporter receives lexical errors. May be nil: the error token itself
	// still carries the message, so the caller can report it later.
	Reporter diag.Reporter
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, diag.SevError, sp, msg, nil)
	}
}
