package diag

import (
	"testing"

	"hop/internal/source"
)

func TestFormatGoldenDiagnostics(t *testing.T) {
	fs := source.NewFileSetWithBase("/workspace")
	file := fs.Add("/workspace/scripts/sample.hop", []byte("biến a\nin a +\n"), 0)

	diags := []Diagnostic{
		{
			Severity: SevWarning,
			Code:     SemaUnreachableAfterExit,
			Message:  "another",
			Primary:  source.Span{File: file, Start: 9, End: 11},
		},
		{
			Severity: SevError,
			Code:     SynExpectExpression,
			Message:  "Thiếu\nbiểu thức.",
			Primary:  source.Span{File: file, Start: 0, End: 5},
			Notes: []Note{
				{Span: source.Span{File: file, Start: 14, End: 15}, Msg: "here"},
			},
		},
	}

	expected := "error SYN2001 scripts/sample.hop:1:1 Thiếu biểu thức.\n" +
		"warning SEM3005 scripts/sample.hop:2:1 another\n" +
		"note SYN2001 scripts/sample.hop:2:6 here"

	if got := FormatGoldenDiagnostics(diags, fs, true); got != expected {
		t.Fatalf("unexpected golden diagnostics:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
}

func TestFormatGoldenDiagnosticsSkipsUnknownFiles(t *testing.T) {
	fs := source.NewFileSet()
	diags := []Diagnostic{{Severity: SevError, Code: IOReadFailed, Primary: source.Span{File: 3}}}
	if got := FormatGoldenDiagnostics(diags, fs, false); got != "" {
		t.Fatalf("got %q", got)
	}
}
