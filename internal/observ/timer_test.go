package observ

import (
	"strings"
	"testing"
	"time"
)

func fakeClock(step time.Duration) func() time.Time {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	n := 0
	return func() time.Time {
		n++
		return base.Add(time.Duration(n) * step)
	}
}

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	tm.now = fakeClock(2 * time.Millisecond)

	lex := tm.Begin("lex")
	tm.End(lex, "40 tokens")
	tm.Track("compile", func() string { return "" })

	r := tm.Report()
	if len(r.Phases) != 2 {
		t.Fatalf("expected 2 phases, got %d", len(r.Phases))
	}
	if r.Phases[0].Name != "lex" || r.Phases[0].DurationMS != 2 || r.Phases[0].Note != "40 tokens" {
		t.Errorf("unexpected lex phase: %+v", r.Phases[0])
	}
	if r.TotalMS != 4 {
		t.Errorf("total = %v, want 4", r.TotalMS)
	}

	s := tm.Summary()
	for _, want := range []string{"timings:", "lex", "// 40 tokens", "compile", "total"} {
		if !strings.Contains(s, want) {
			t.Errorf("summary missing %q:\n%s", want, s)
		}
	}
}

func TestNilTimerIsInert(t *testing.T) {
	var tm *Timer
	idx := tm.Begin("x")
	tm.End(idx, "")
	tm.Track("y", func() string { return "" })
	if idx != -1 || len(tm.Report().Phases) != 0 {
		t.Fatal("nil timer must record nothing")
	}
}

func TestEndIgnoresBadIndex(t *testing.T) {
	tm := NewTimer()
	tm.End(3, "nope")
	if len(tm.Report().Phases) != 0 {
		t.Fatal("unexpected phase")
	}
}
