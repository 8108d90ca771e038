package diag

import (
	"testing"

	"hop/internal/source"
)

func TestFirstErrorReporterKeepsOnlyFirstError(t *testing.T) {
	bag := NewBag(0)
	r := NewFirstErrorReporter(BagReporter{Bag: bag})

	r.Report(SemaUnreachableAfterExit, SevWarning, source.Span{Start: 0}, "w", nil)
	r.Report(SynExpectExpression, SevError, source.Span{Start: 1}, "first", nil)
	r.Report(SynExpectRParen, SevError, source.Span{Start: 2}, "second", nil)
	r.Report(SemaUnreachableAfterExit, SevWarning, source.Span{Start: 3}, "late warning", nil)

	if !r.HadError() {
		t.Fatalf("HadError = false")
	}
	if bag.Len() != 2 {
		t.Fatalf("bag has %d items, want 2", bag.Len())
	}
	if bag.Items()[1].Message != "first" {
		t.Fatalf("forwarded %q", bag.Items()[1].Message)
	}
	if r.Suppressed() != 2 {
		t.Fatalf("Suppressed = %d, want 2", r.Suppressed())
	}
}

func TestBagLimitSortAndCount(t *testing.T) {
	bag := NewBag(2)
	if !bag.Add(NewError(SynExpectRParen, source.Span{Start: 9}, "b")) {
		t.Fatal("first Add rejected")
	}
	bag.Add(New(SevWarning, SemaUnreachableAfterExit, source.Span{Start: 1}, "a"))
	if bag.Add(NewError(SynExpectRParen, source.Span{Start: 0}, "c")) {
		t.Fatal("Add past the limit accepted")
	}
	if bag.Dropped() != 1 {
		t.Fatalf("Dropped = %d, want 1", bag.Dropped())
	}
	bag.Sort()
	if bag.Items()[0].Message != "a" {
		t.Fatalf("Sort order = %v", bag.Items())
	}
	if bag.ErrorCount() != 1 || !bag.HasErrors() || !bag.HasWarnings() {
		t.Fatalf("counts wrong: %d", bag.ErrorCount())
	}
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	bag := NewBag(0)
	b := ReportError(BagReporter{Bag: bag}, SemaDuplicateLocal, source.Span{}, "dup").
		WithNote(source.Span{Start: 2}, "declared here")
	b.Emit()
	b.Emit()
	if bag.Len() != 1 || len(bag.Items()[0].Notes) != 1 {
		t.Fatalf("bag = %+v", bag.Items())
	}
}

func TestCodeID(t *testing.T) {
	cases := map[Code]string{
		LexUnknownChar:      "LEX1001",
		SynTooManyArgs:      "SYN2103",
		SemaDuplicateLocal:  "SEM3001",
		IOReadFailed:        "IO4001",
		ProjManifestInvalid: "PRJ5001",
		UnknownCode:         "E0000",
	}
	for c, want := range cases {
		if c.ID() != want {
			t.Errorf("%d.ID() = %s, want %s", c, c.ID(), want)
		}
	}
	if !LexUnterminatedString.IsLexical() || SynEmptyBox.IsLexical() {
		t.Errorf("IsLexical mismatch")
	}
}

func TestBagMergeGrowsLimit(t *testing.T) {
	a := NewBag(1)
	a.Add(NewError(SynExpectRParen, source.Span{Start: 3}, "a"))
	b := NewBag(1)
	b.Add(NewError(SynExpectRParen, source.Span{Start: 1}, "b"))
	b.Add(NewError(SynExpectRParen, source.Span{Start: 2}, "dropped"))
	a.Merge(b)
	if a.Len() != 2 || a.Dropped() != 1 {
		t.Fatalf("len %d dropped %d", a.Len(), a.Dropped())
	}
	a.Merge(nil)
	if a.Len() != 2 {
		t.Fatal("merging nil changed the bag")
	}
}

func TestSeverityWord(t *testing.T) {
	cases := map[Severity]string{SevError: "Lỗi", SevWarning: "Cảnh báo", SevInfo: "Ghi chú"}
	for sev, want := range cases {
		if got := sev.Word(); got != want {
			t.Errorf("%s.Word() = %q, want %q", sev, got, want)
		}
	}
}
