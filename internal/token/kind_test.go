package token_test

import (
	"testing"

	"hop/internal/token"
)

func tok(k token.Kind) token.Token {
	return token.Token{Kind: k}
}

func TestClassification(t *testing.T) {
	for _, k := range []token.Kind{token.KwVar, token.KwWith, token.KwAnd, token.KwEqual} {
		if !tok(k).IsKeyword() {
			t.Errorf("%v should be a keyword", k)
		}
	}
	for _, k := range []token.Kind{token.Ident, token.Number, token.Plus, token.EOF, token.Invalid} {
		if tok(k).IsKeyword() {
			t.Errorf("%v must not be a keyword", k)
		}
	}
	for _, k := range []token.Kind{token.LParen, token.LtEq, token.Semicolon} {
		if !tok(k).IsPunctOrOp() {
			t.Errorf("%v should be punctuation", k)
		}
	}
	for _, k := range []token.Kind{token.String, token.Number, token.KwNil, token.KwTrue} {
		if !tok(k).IsLiteral() {
			t.Errorf("%v should be a literal", k)
		}
	}
}

func TestKindString(t *testing.T) {
	if token.KwBox.String() != "KwBox" || token.EOF.String() != "EOF" {
		t.Fatalf("unexpected names %s %s", token.KwBox, token.EOF)
	}
	if s := token.Kind(250).String(); s != "Kind(250)" {
		t.Fatalf("out-of-range = %q", s)
	}
}

func TestStringValue(t *testing.T) {
	tk := token.Token{Kind: token.String, Text: `"xin chào"`}
	if tk.StringValue() != "xin chào" {
		t.Fatalf("StringValue = %q", tk.StringValue())
	}
}
