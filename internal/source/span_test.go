package source

import "testing"

func TestSpanCover(t *testing.T) {
	tests := []struct {
		name string
		a, b Span
		want Span
	}{
		{"disjoint", Span{File: 1, Start: 2, End: 4}, Span{File: 1, Start: 8, End: 9}, Span{File: 1, Start: 2, End: 9}},
		{"nested", Span{File: 1, Start: 2, End: 10}, Span{File: 1, Start: 4, End: 5}, Span{File: 1, Start: 2, End: 10}},
		{"other file ignored", Span{File: 1, Start: 2, End: 4}, Span{File: 2, Start: 0, End: 9}, Span{File: 1, Start: 2, End: 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Cover(tt.b); got != tt.want {
				t.Errorf("Cover = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSpanLen(t *testing.T) {
	s := Span{Start: 3, End: 7}
	if s.Len() != 4 || s.Empty() {
		t.Errorf("Len = %d, Empty = %v", s.Len(), s.Empty())
	}
	if !(Span{Start: 5, End: 5}).Empty() {
		t.Errorf("zero-width span must be empty")
	}
}
