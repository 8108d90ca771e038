// Package token defines the lexical vocabulary of the Hộp language.
// Invariants:
//   - Token.Text is the lexeme as written in the source, except for Invalid
//     tokens where it carries the lexer's error message.
//   - Token.Span covers the lexeme bytes; Line and Col locate its first rune.
//   - Keywords are matched after NFC normalisation and lower-casing, and
//     several kinds have two spellings (e.g. "xong" and "thôi" both close a block).
package token
