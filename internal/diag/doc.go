// Package diag defines the diagnostic model shared by the lexer, the compiler
// and the driver.
//
// A Diagnostic is plain data: severity, a stable numeric Code (see codes.go),
// a human-oriented message (Vietnamese, as the language itself), the primary
// source.Span and optional notes. Producers emit through a Reporter so that
// storage and filtering stay outside the phases:
//
//   - BagReporter collects into a Bag (limit, sort, merge).
//   - FirstErrorReporter keeps only the first error of a compilation.
//   - MultiReporter fans out.
//
// Rendering lives in internal/diagfmt. Runtime failures of the VM are not
// diagnostics; they are vm.RuntimeError values.
package diag
