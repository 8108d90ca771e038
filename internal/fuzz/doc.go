// Package fuzztests houses Go fuzz harnesses for the front end
// (source -> lexer -> compiler). They guard against panics and runaway
// allocation on arbitrary input and check that whatever compiles keeps the
// operand stack balanced.
//
// Зависимости: internal/source, internal/lexer, internal/compiler,
// internal/diag, internal/testkit.
package fuzztests
