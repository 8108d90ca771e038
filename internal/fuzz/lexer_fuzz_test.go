package fuzztests

import (
	"testing"

	"hop/internal/diag"
	"hop/internal/lexer"
	"hop/internal/source"
	"hop/internal/token"
)

const maxFuzzInput = 1 << 16 // 64 KiB

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		input = input[:maxFuzzInput]
	}
	return append([]byte(nil), input...)
}

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.hop", input))

		bag := diag.NewBag(64)
		lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
		var prevEnd uint32
		// каждый токен продвигает курсор, иначе лексер зациклится
		for n := 0; ; n++ {
			tok := lx.Next()
			if tok.Span.Start < prevEnd || tok.Span.End < tok.Span.Start {
				t.Fatalf("token %d span %v goes backwards (prev end %d)", n, tok.Span, prevEnd)
			}
			prevEnd = tok.Span.End
			if tok.Kind == token.EOF {
				break
			}
			if n > len(file.Content)+1 {
				t.Fatalf("lexer produced more tokens than bytes")
			}
		}
	})
}
