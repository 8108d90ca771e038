package lexer

import (
	"testing"

	"hop/internal/source"
)

func createFile(content string) *source.File {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.hop", []byte(content))
	return fs.Get(id)
}

func TestCursorSequentialReading(t *testing.T) {
	cursor := NewCursor(createFile("a\nb"))

	for _, want := range []byte{'a', '\n', 'b'} {
		if cursor.EOF() {
			t.Fatalf("unexpected EOF before %q", want)
		}
		if got := cursor.Bump(); got != want {
			t.Fatalf("Bump = %q, want %q", got, want)
		}
	}
	if !cursor.EOF() || cursor.Peek() != 0 || cursor.Bump() != 0 {
		t.Fatalf("cursor should be exhausted")
	}
}

func TestCursorMarkResetAndSpan(t *testing.T) {
	file := createFile("hộp có")
	cursor := NewCursor(file)
	m := cursor.Mark()
	for i := 0; i < len("hộp"); i++ {
		cursor.Bump()
	}
	sp := cursor.SpanFrom(m)
	if string(file.Content[sp.Start:sp.End]) != "hộp" {
		t.Fatalf("span text = %q", file.Content[sp.Start:sp.End])
	}
	cursor.Reset(m)
	if cursor.Off != 0 {
		t.Fatalf("Reset left Off = %d", cursor.Off)
	}
	if cursor.Eat('x') || !cursor.Eat('h') {
		t.Fatalf("Eat mismatch")
	}
}

func TestCursorPeek2AtEnd(t *testing.T) {
	cursor := NewCursor(createFile("="))
	if _, _, ok := cursor.Peek2(); ok {
		t.Fatalf("Peek2 must fail with one byte left")
	}
}
