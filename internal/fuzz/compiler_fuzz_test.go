package fuzztests

import (
	"testing"

	"hop/internal/compiler"
	"hop/internal/diag"
	"hop/internal/source"
	"hop/internal/testkit"
)

func FuzzCompile(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.hop", input))

		bag := diag.NewBag(8)
		fn, err := compiler.Compile(file, compiler.Options{Reporter: diag.BagReporter{Bag: bag}})
		if err != nil {
			if !bag.HasErrors() {
				t.Fatalf("compile failed without a diagnostic: %v", err)
			}
			return
		}
		if bag.HasErrors() {
			t.Fatalf("compile succeeded with errors: %v", bag.Items())
		}
		if err := testkit.CheckStackBalance(fn); err != nil {
			t.Fatalf("unbalanced bytecode for %q: %v", input, err)
		}
	})
}
