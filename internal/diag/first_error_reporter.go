package diag

import "hop/internal/source"

// FirstErrorReporter forwards the first error it sees and swallows every
// later one. Warnings and infos pass through until that first error.
// Compilation keeps running after an error so the token stream is fully
// consumed; this wrapper is what keeps the output to a single message.
type FirstErrorReporter struct {
	next       Reporter
	hadError   bool
	suppressed int
}

func NewFirstErrorReporter(next Reporter) *FirstErrorReporter {
	return &FirstErrorReporter{next: next}
}

func (r *FirstErrorReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note) {
	if r.hadError {
		r.suppressed++
		return
	}
	if sev >= SevError {
		r.hadError = true
	}
	if r.next != nil {
		r.next.Report(code, sev, primary, msg, notes)
	}
}

// HadError reports whether an error has been forwarded.
func (r *FirstErrorReporter) HadError() bool { return r.hadError }

// Suppressed counts diagnostics dropped after the first error.
func (r *FirstErrorReporter) Suppressed() int { return r.suppressed }
