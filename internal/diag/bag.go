package diag

import (
	"cmp"
	"math"
	"slices"
)

// Bag collects diagnostics up to a limit. Diagnostics past the limit are
// counted, not stored.
type Bag struct {
	items   []Diagnostic
	max     uint16
	dropped int
}

// NewBag creates a Bag holding at most max diagnostics; max <= 0 means unlimited.
func NewBag(max int) *Bag {
	if max <= 0 || max > math.MaxUint16 {
		max = math.MaxUint16
	}
	return &Bag{
		items: make([]Diagnostic, 0, min(max, 16)),
		max:   uint16(max),
	}
}

// Add добавляет диагностику, учитывая лимит.
// Возвращает false, если диагностика не добавлена (достигнут лимит).
func (b *Bag) Add(d Diagnostic) bool {
	if len(b.items) >= int(b.max) {
		b.dropped++
		return false
	}
	b.items = append(b.items, d)
	return true
}

// Dropped is the number of diagnostics rejected by the limit.
func (b *Bag) Dropped() int { return b.dropped }

func (b *Bag) count(atLeast Severity) int {
	n := 0
	for i := range b.items {
		if b.items[i].Severity >= atLeast {
			n++
		}
	}
	return n
}

// HasErrors reports whether any diagnostic is an error.
func (b *Bag) HasErrors() bool { return b.count(SevError) > 0 }

// ErrorCount returns the number of error-level diagnostics.
func (b *Bag) ErrorCount() int { return b.count(SevError) }

// HasWarnings reports whether any diagnostic is a warning or worse.
func (b *Bag) HasWarnings() bool { return b.count(SevWarning) > 0 }

func (b *Bag) Len() int { return len(b.items) }

// Items возвращает read-only slice диагностик.
// ВАЖНО: не модифицируйте возвращаемый срез! (он указывает на внутренний массив Bag)
func (b *Bag) Items() []Diagnostic { return b.items }

// Merge appends every diagnostic of other, raising the limit if needed.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	if total := min(len(b.items)+len(other.items), math.MaxUint16); total > int(b.max) {
		b.max = uint16(total)
	}
	b.items = append(b.items, other.items...)
	b.dropped += other.dropped
}

// Sort orders by file, start, end, severity (errors first) and code, so
// output is deterministic.
func (b *Bag) Sort() {
	slices.SortStableFunc(b.items, func(x, y Diagnostic) int {
		return cmp.Or(
			cmp.Compare(x.Primary.File, y.Primary.File),
			cmp.Compare(x.Primary.Start, y.Primary.Start),
			cmp.Compare(x.Primary.End, y.Primary.End),
			cmp.Compare(y.Severity, x.Severity),
			cmp.Compare(x.Code, y.Code),
		)
	})
}
